// Package golang emits Go bindings with jennifer: named enum types with text
// marshalling, structs embedding their base, and constructors applying schema
// defaults.
package golang

import (
	"bytes"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dave/jennifer/jen"
	"golang.org/x/mod/modfile"

	"github.com/cmmoran/createdom/internal/diag"
	"github.com/cmmoran/createdom/internal/emit"
	"github.com/cmmoran/createdom/internal/model"
)

const Target = "go"

// Config controls where the generated file believes it lives.
type Config struct {
	// Package overrides the package name.
	Package string
	// OutDir is the destination directory, used to find the enclosing module.
	OutDir string
}

// Generator implements emit.Emitter for Go.
type Generator struct {
	cfg Config
}

func New(cfg Config) *Generator { return &Generator{cfg: cfg} }

func (g *Generator) Name() string { return Target }

// Decl is one top-level declaration rendered into the file.
type Decl interface {
	Gen(file *jen.File) error
}

// Emit renders <Filename>.go.
func (g *Generator) Emit(v model.View, sink diag.Sink) ([]emit.File, error) {
	r := diag.Reporter{Sink: sink, Source: Target}
	if !emit.CheckMeta(v, r) {
		return nil, emit.ErrMissingMeta
	}

	importPath, name := g.packagePath(v.Meta(), r)
	var f *jen.File
	if importPath != "" {
		f = jen.NewFilePathName(importPath, name)
	} else {
		f = jen.NewFile(name)
	}
	f.HeaderComment("Code generated by createdom. DO NOT EDIT.")
	if url := v.Meta().URL; url != "" {
		f.HeaderComment("Schema source: " + url)
	}

	gen := newGeneration(v, r)
	for _, d := range gen.decls() {
		if err := d.Gen(f); err != nil {
			return nil, errors.Wrapf(err, "render %s", v.Meta().Filename)
		}
	}
	if gen.needsPtr {
		ptrHelper(f)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, errors.Wrapf(err, "format %s.go", v.Meta().Filename)
	}
	return []emit.File{{
		Name:    v.Meta().Filename + ".go",
		Target:  Target,
		Content: buf.Bytes(),
	}}, nil
}

// packagePath picks the import path and package name of the generated file.
// An explicit package name wins; otherwise the name is the last element of
// the import path derived from the enclosing go.mod, falling back to the
// schema namespace.
func (g *Generator) packagePath(meta model.Info, r diag.Reporter) (string, string) {
	importPath := ""
	if g.cfg.OutDir != "" {
		if p, err := ImportPath(g.cfg.OutDir); err == nil {
			importPath = p
		} else {
			r.Infof("", "", "no enclosing Go module: %v", err)
		}
	}
	switch {
	case g.cfg.Package != "":
		return importPath, packageName(g.cfg.Package)
	case importPath != "":
		return importPath, packageName(path.Base(importPath))
	}
	return "", packageName(meta.Namespace)
}

// ImportPath returns the import path of dir, computed from the module path of
// the nearest go.mod at or above it.
func ImportPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "resolve %s", dir)
	}
	modDir, err := findGoModDir(abs)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(modDir, "go.mod"))
	if err != nil {
		return "", errors.Wrap(err, "read go.mod")
	}
	mf, err := modfile.Parse("go.mod", data, nil)
	if err != nil {
		return "", errors.Wrap(err, "parse go.mod")
	}
	if mf.Module == nil {
		return "", errors.Newf("%s has no module directive", filepath.Join(modDir, "go.mod"))
	}
	rel, err := filepath.Rel(modDir, abs)
	if err != nil {
		return "", errors.Wrapf(err, "relate %s to %s", abs, modDir)
	}
	if rel == "." {
		return mf.Module.Mod.Path, nil
	}
	return path.Join(mf.Module.Mod.Path, filepath.ToSlash(rel)), nil
}

// findGoModDir walks up from dir until it finds go.mod.
func findGoModDir(dir string) (string, error) {
	for from := dir; ; {
		if _, err := os.Stat(filepath.Join(from, "go.mod")); err == nil {
			return from, nil
		}
		parent := filepath.Dir(from)
		if parent == from {
			return "", errors.Newf("no go.mod found above %s", dir)
		}
		from = parent
	}
}

// packageName lower-cases s and drops everything that may not appear in a
// package name.
func packageName(s string) string {
	var b strings.Builder
	for _, c := range strings.ToLower(s) {
		switch {
		case c >= 'a' && c <= 'z', c == '_':
			b.WriteRune(c)
		case c >= '0' && c <= '9' && b.Len() > 0:
			b.WriteRune(c)
		}
	}
	if b.Len() == 0 {
		return "schema"
	}
	return b.String()
}
