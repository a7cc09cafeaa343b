package parser

import "strings"

const (
	quote = '"'
	comma = ','
	lf    = '\n'
	cr    = '\r'
)

// Scanner splits a schema buffer into rows of fields.
//
// Rows end at LF or CR; runs of line breaks (blank lines) are skipped. A field
// that starts with a double quote runs to the next double quote, so commas and
// line breaks inside it are literal; anything between the closing quote and the
// next delimiter is dropped. There is no escape for a quote inside a quoted
// field, and an unterminated quote swallows the rest of the buffer.
//
// A row whose first field is EOF (any case) ends scanning.
type Scanner struct {
	buf  []byte
	pos  int
	row  []string
	line int
	eof  bool
}

func NewScanner(buf []byte) *Scanner {
	return &Scanner{buf: buf}
}

// Scan advances to the next row. It returns false at the end of the buffer or
// at an EOF marker row.
func (s *Scanner) Scan() bool {
	if s.eof {
		return false
	}
	s.skipLineBreaks()
	if s.pos >= len(s.buf) {
		s.eof = true
		return false
	}
	s.line++
	s.row = nil
	for {
		field, last := s.field()
		s.row = append(s.row, field)
		if last {
			break
		}
	}
	if strings.EqualFold(s.row[0], "EOF") {
		s.eof = true
		return false
	}
	return true
}

// Row returns the fields of the current row. The slice is owned by the caller.
func (s *Scanner) Row() []string {
	return s.row
}

// Line returns the 1-based index of the current row, counting non-blank rows.
func (s *Scanner) Line() int {
	return s.line
}

// field reads one field and reports whether it ended the row.
func (s *Scanner) field() (string, bool) {
	var value string
	if s.pos < len(s.buf) && s.buf[s.pos] == quote {
		s.pos++
		start := s.pos
		for s.pos < len(s.buf) && s.buf[s.pos] != quote {
			s.pos++
		}
		value = string(s.buf[start:s.pos])
		if s.pos < len(s.buf) {
			s.pos++
		}
		// drop trailing garbage up to the delimiter
		for s.pos < len(s.buf) && !isDelimiter(s.buf[s.pos]) {
			s.pos++
		}
	} else {
		start := s.pos
		for s.pos < len(s.buf) && !isDelimiter(s.buf[s.pos]) {
			s.pos++
		}
		value = string(s.buf[start:s.pos])
	}
	if s.pos >= len(s.buf) {
		return value, true
	}
	c := s.buf[s.pos]
	s.pos++
	return value, c == lf || c == cr
}

func (s *Scanner) skipLineBreaks() {
	for s.pos < len(s.buf) && (s.buf[s.pos] == lf || s.buf[s.pos] == cr) {
		s.pos++
	}
}

func isDelimiter(c byte) bool {
	return c == comma || c == lf || c == cr
}

// Tokenize returns every row of buf up to the end or an EOF marker.
func Tokenize(buf []byte) [][]string {
	var rows [][]string
	s := NewScanner(buf)
	for s.Scan() {
		rows = append(rows, s.Row())
	}
	return rows
}
