// Package diag collects recoverable schema problems. Nothing reported here
// stops a run; the generator keeps producing whatever output it still can.
package diag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// LevelTrace sits below slog.LevelDebug and traces row-by-row parsing.
const LevelTrace = slog.Level(-8)

type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return "info"
}

func (s Severity) level() slog.Level {
	switch s {
	case Warning:
		return slog.LevelWarn
	case Error:
		return slog.LevelError
	}
	return slog.LevelInfo
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Diagnostic is one reported problem.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Source   string   `json:"source"`        // reporting component: "parser", "resolver", "cpp", ...
	Row      int      `json:"row,omitempty"` // 1-based schema row, 0 when unknown
	Object   string   `json:"object,omitempty"`
	Field    string   `json:"field,omitempty"`
	Message  string   `json:"message"`
}

func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(d.Severity.String())
	if d.Source != "" {
		b.WriteString(" [")
		b.WriteString(d.Source)
		b.WriteString("]")
	}
	if d.Row > 0 {
		fmt.Fprintf(&b, " row %d", d.Row)
	}
	if d.Object != "" {
		b.WriteString(" ")
		b.WriteString(d.Object)
		if d.Field != "" {
			b.WriteString(".")
			b.WriteString(d.Field)
		}
	}
	b.WriteString(": ")
	b.WriteString(d.Message)
	return b.String()
}

// Sink receives diagnostics as they are discovered.
type Sink interface {
	Report(d Diagnostic)
}

// Discard drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Report(Diagnostic) {}

// Collector logs each diagnostic immediately and keeps it for later inspection.
type Collector struct {
	log   *slog.Logger
	items []Diagnostic
}

// NewCollector returns a Collector logging to l. A nil l only collects.
func NewCollector(l *slog.Logger) *Collector {
	return &Collector{log: l}
}

func (c *Collector) Report(d Diagnostic) {
	c.items = append(c.items, d)
	if c.log == nil {
		return
	}
	attrs := []slog.Attr{slog.String("source", d.Source)}
	if d.Row > 0 {
		attrs = append(attrs, slog.Int("row", d.Row))
	}
	if d.Object != "" {
		attrs = append(attrs, slog.String("object", d.Object))
	}
	if d.Field != "" {
		attrs = append(attrs, slog.String("field", d.Field))
	}
	c.log.LogAttrs(context.Background(), d.Severity.level(), d.Message, attrs...)
}

// All returns every diagnostic reported so far.
func (c *Collector) All() []Diagnostic {
	return c.items
}

// Count returns the number of diagnostics at or above sev.
func (c *Collector) Count(sev Severity) int {
	n := 0
	for _, d := range c.items {
		if d.Severity >= sev {
			n++
		}
	}
	return n
}

// Reporter stamps a fixed Source onto every diagnostic.
type Reporter struct {
	Sink   Sink
	Source string
}

func (r Reporter) Warnf(object, field, format string, args ...any) {
	r.report(Warning, object, field, format, args...)
}

func (r Reporter) Errorf(object, field, format string, args ...any) {
	r.report(Error, object, field, format, args...)
}

func (r Reporter) Infof(object, field, format string, args ...any) {
	r.report(Info, object, field, format, args...)
}

func (r Reporter) report(sev Severity, object, field, format string, args ...any) {
	if r.Sink == nil {
		return
	}
	r.Sink.Report(Diagnostic{
		Severity: sev,
		Source:   r.Source,
		Object:   object,
		Field:    field,
		Message:  fmt.Sprintf(format, args...),
	})
}
