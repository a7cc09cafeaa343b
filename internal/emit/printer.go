package emit

import (
	"bytes"
	"fmt"
	"strings"
)

// Printer accumulates indented source text in memory.
type Printer struct {
	buf    bytes.Buffer
	indent string
}

// NewPrinter returns a Printer that indents with unit per level.
func NewPrinter(unit string) *Printer {
	return &Printer{indent: unit}
}

// Line writes one line at the given indentation level. An empty format writes
// an empty line without trailing whitespace.
func (p *Printer) Line(level int, format string, args ...any) {
	if format == "" {
		p.buf.WriteByte('\n')
		return
	}
	p.buf.WriteString(strings.Repeat(p.indent, level))
	if len(args) > 0 {
		fmt.Fprintf(&p.buf, format, args...)
	} else {
		p.buf.WriteString(format)
	}
	p.buf.WriteByte('\n')
}

// Commented writes a line followed by a trailing comment, when comment is set.
func (p *Printer) Commented(level int, marker, comment, format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if comment != "" {
		line += " " + marker + " " + comment
	}
	p.Line(level, "%s", line)
}

// Blank writes an empty line unless the output already ends with one.
func (p *Printer) Blank() {
	if p.buf.Len() == 0 || bytes.HasSuffix(p.buf.Bytes(), []byte("\n\n")) {
		return
	}
	p.buf.WriteByte('\n')
}

func (p *Printer) Bytes() []byte {
	return p.buf.Bytes()
}

func (p *Printer) String() string {
	return p.buf.String()
}

// LowerFirst lower-cases the first byte of s.
func LowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// UpperFirst upper-cases the first byte of s.
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
