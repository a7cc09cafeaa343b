// Package emit defines the contract between the resolved schema model and the
// per-language output adapters.
package emit

import (
	"github.com/cockroachdb/errors"

	"github.com/cmmoran/createdom/internal/diag"
	"github.com/cmmoran/createdom/internal/model"
)

// ErrNotImplemented is returned by emitters that exist only as placeholders.
var ErrNotImplemented = errors.New("emitter not implemented")

// File is one rendered output file. Name is relative to the destination
// directory.
type File struct {
	Name    string
	Target  string
	Content []byte
}

// Emitter renders a resolved model into source files. Emitters only read the
// view; problems with individual types are reported to sink and the affected
// fragment is skipped.
type Emitter interface {
	Name() string
	Emit(v model.View, sink diag.Sink) ([]File, error)
}

// CheckMeta reports whether the model-wide directives every emitter needs are
// present. Missing ones are reported as errors on r.
func CheckMeta(v model.View, r diag.Reporter) bool {
	ok := true
	if v.Meta().Namespace == "" {
		r.Errorf("", "", "no namespace specified; add a 'Namespace,<name>' row")
		ok = false
	}
	if v.Meta().Filename == "" {
		r.Errorf("", "", "no source filename specified; add a 'Filename,<name>' row")
		ok = false
	}
	return ok
}

// ErrMissingMeta is returned when CheckMeta fails.
var ErrMissingMeta = errors.New("schema has no namespace or filename directive")
