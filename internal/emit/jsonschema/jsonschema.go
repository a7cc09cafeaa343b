// Package jsonschema reserves the json target. The schema-level JSON export
// produces no files yet.
package jsonschema

import (
	"github.com/cmmoran/createdom/internal/diag"
	"github.com/cmmoran/createdom/internal/emit"
	"github.com/cmmoran/createdom/internal/model"
)

const Target = "json"

type Generator struct{}

func New() *Generator { return &Generator{} }

func (g *Generator) Name() string { return Target }

// Emit reports that the target has no output and returns
// emit.ErrNotImplemented.
func (g *Generator) Emit(v model.View, sink diag.Sink) ([]emit.File, error) {
	r := diag.Reporter{Sink: sink, Source: Target}
	r.Infof("", "", "the json target produces no output")
	return nil, emit.ErrNotImplemented
}
