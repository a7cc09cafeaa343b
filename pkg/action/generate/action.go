package generate

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/createdom/internal/diag"
	"github.com/cmmoran/createdom/internal/emit"
	"github.com/cmmoran/createdom/internal/emit/targets"
	"github.com/cmmoran/createdom/internal/output"
	"github.com/cmmoran/createdom/pkg/manifest"
	"github.com/cmmoran/createdom/pkg/parser"
)

// Result summarizes one generation run.
type Result struct {
	Files []output.Result
	// Diffs is set instead of Files on a dry run.
	Diffs []output.FileDiff
	// Skipped lists files left alone because they changed since they were
	// generated.
	Skipped []string
	// Stale lists files the previous run produced and this run did not.
	Stale       []manifest.Entry
	Diagnostics []diag.Diagnostic
}

// Failed counts files that could not be written.
func (r *Result) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// Generate parses the schema, runs every requested emitter and writes the
// results below opts.OutDir. Only unreadable input, unknown targets and
// manifest failures are returned as errors; everything else is reported on
// the Result.
func Generate(opts *parser.Options) (*Result, error) {
	par, err := parser.NewWithOpts(opts)
	if err != nil {
		return nil, err
	}
	for _, t := range par.Opts.Targets {
		if _, err := targets.New(t, targets.Config{}); err != nil {
			return nil, err
		}
	}
	if err = par.Parse(); err != nil {
		return nil, err
	}

	l := slog.Default().With("component", "generate")
	files := Render(par, l)
	w := output.NewWriter(par.Opts.OutDir, par.Opts.Force, l)
	res := &Result{}

	if par.Opts.DryRun {
		res.Diffs, err = w.Diff(files)
		res.Diagnostics = par.Diagnostics().All()
		return res, err
	}

	prev, err := manifest.Load(par.Opts.Manifest)
	if err != nil {
		return nil, err
	}
	next := &manifest.Manifest{Schema: par.Opts.SchemaFile}

	pending := make([]emit.File, 0, len(files))
	for _, f := range files {
		name := filepath.ToSlash(f.Name)
		if !par.Opts.Force && editedSince(w, prev, name) {
			l.Warn("file changed since it was generated; leaving it alone", "path", w.Path(f.Name), "hint", "rerun with --force to overwrite")
			res.Skipped = append(res.Skipped, w.Path(f.Name))
			if e, ok := prev.Lookup(name); ok {
				next.Record(e)
			}
			continue
		}
		pending = append(pending, f)
	}

	res.Files = w.Write(pending)
	for i, r := range res.Files {
		name := filepath.ToSlash(pending[i].Name)
		if r.Err != nil {
			if e, ok := prev.Lookup(name); ok {
				next.Record(e)
			}
			continue
		}
		next.Record(manifest.Entry{File: name, Target: r.Target, SHA256: r.Sum})
	}

	res.Stale = prev.Stale(next)
	for _, e := range res.Stale {
		l.Warn("previously generated file is no longer produced", "path", w.Path(e.File), "target", e.Target)
	}
	res.Diagnostics = par.Diagnostics().All()

	if err := next.Save(par.Opts.Manifest); err != nil {
		return res, errors.WithHintf(err, "generated files were written; %s is out of date", par.Opts.Manifest)
	}
	l.Info("generation complete",
		"files", len(res.Files),
		"failed", res.Failed(),
		"skipped", len(res.Skipped),
		"stale", len(res.Stale),
		"warnings", par.Diagnostics().Count(diag.Warning),
	)
	return res, nil
}

// Render runs the requested emitters against a parsed schema. Emitter
// failures are logged and the remaining targets still run.
func Render(par *parser.Parser, l *slog.Logger) []emit.File {
	v := par.View()
	if v == nil {
		return nil
	}
	cfg := targets.Config{GoPackage: par.Opts.GoPackage, OutDir: par.Opts.OutDir}
	var files []emit.File
	for _, name := range par.Opts.Targets {
		em, err := targets.New(name, cfg)
		if err != nil {
			l.Error("skipping target", "target", name, "error", err)
			continue
		}
		out, err := em.Emit(v, par.Diagnostics())
		switch {
		case errors.Is(err, emit.ErrNotImplemented):
			l.Info("target produces no output", "target", name)
		case err != nil:
			l.Error("target failed", "target", name, "error", err)
		}
		files = append(files, out...)
	}
	return files
}

// editedSince reports whether the file on disk no longer matches the checksum
// recorded when it was generated.
func editedSince(w *output.Writer, prev *manifest.Manifest, name string) bool {
	e, ok := prev.Lookup(name)
	if !ok || e.SHA256 == "" {
		return false
	}
	data, err := os.ReadFile(w.Path(name))
	if err != nil {
		return false
	}
	return output.Sum(data) != e.SHA256
}
