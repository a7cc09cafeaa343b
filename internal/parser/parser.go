// Package parser builds the schema DOM from CSV input: the row tokenizer, the
// row-classifying Builder and the multi-pass resolver.
package parser

import (
	"context"
	"log/slog"

	"github.com/cmmoran/createdom/internal/diag"
	"github.com/cmmoran/createdom/internal/model"
)

// Parse tokenizes buf, builds the model row by row, resolves it and reports
// schema problems to sink. It always returns a model, even for partially
// broken input.
func Parse(buf []byte, sink diag.Sink) *model.Model {
	return ParseWithLogger(buf, sink, nil)
}

// ParseWithLogger is Parse, tracing the classification of every row to l.
func ParseWithLogger(buf []byte, sink diag.Sink, l *slog.Logger) *model.Model {
	b := NewBuilder(sink)
	s := NewScanner(buf)
	for s.Scan() {
		kind := b.AddRow(s.Row())
		if l != nil {
			l.Log(context.Background(), diag.LevelTrace, "row classified", "line", s.Line(), "kind", kind.String())
		}
	}
	m := b.Finish()
	if sink != nil {
		Validate(m, sink)
	}
	return m
}
