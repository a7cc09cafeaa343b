// Package parser is the public entry point: it loads a CSV schema, builds and
// resolves the DOM and exposes the filtered view handed to emitters.
package parser

import (
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/createdom/internal/diag"
	"github.com/cmmoran/createdom/internal/model"
	iparser "github.com/cmmoran/createdom/internal/parser"
)

// Parser holds state/results of a parse run.
type Parser struct {
	Opts Options

	log   *slog.Logger
	diags *diag.Collector
	model *model.Model
}

// New creates a Parser from functional options.
func New(opts ...Option) (*Parser, error) {
	o := NewOptions()
	for _, fn := range opts {
		fn(o)
	}

	return NewWithOpts(o)
}

func NewWithOpts(opts *Options) (*Parser, error) {
	opts.Normalize()

	l := slog.Default().With("component", "parser")
	p := &Parser{
		Opts:  *opts,
		log:   l,
		diags: diag.NewCollector(l),
	}

	return p, nil
}

// Parse reads Opts.SchemaFile and builds the model. Only a failure to read the
// schema is returned as an error; schema problems become diagnostics.
func (p *Parser) Parse() error {
	if p.Opts.SchemaFile == "" {
		return errors.WithHint(errors.New("no schema file given"), "pass the schema CSV as the first argument")
	}
	buf, err := os.ReadFile(p.Opts.SchemaFile)
	if err != nil {
		return errors.WithHintf(
			errors.Wrapf(err, "read schema %s", p.Opts.SchemaFile),
			"check that %s exists and is readable", p.Opts.SchemaFile,
		)
	}
	p.ParseBytes(buf)
	return nil
}

// ParseBytes builds the model from an in-memory schema.
func (p *Parser) ParseBytes(buf []byte) {
	p.model = iparser.ParseWithLogger(buf, p.diags, p.log)
	p.log.Debug("schema parsed",
		"objects", len(p.model.Objects),
		"namespace", p.model.Info.Namespace,
		"filename", p.model.Info.Filename,
		"warnings", p.diags.Count(diag.Warning),
	)
}

// Model returns the resolved model, nil before Parse.
func (p *Parser) Model() *model.Model {
	return p.model
}

// View returns the emitter view with the configured exclusions applied.
func (p *Parser) View() model.View {
	if p.model == nil {
		return nil
	}
	return model.NewView(p.model, selector(&p.Opts))
}

// Diagnostics returns the sink collecting schema problems for this run.
func (p *Parser) Diagnostics() *diag.Collector {
	return p.diags
}
