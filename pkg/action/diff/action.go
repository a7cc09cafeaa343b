package diff

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/createdom/internal/output"
	"github.com/cmmoran/createdom/pkg/action/generate"
	"github.com/cmmoran/createdom/pkg/manifest"
	"github.com/cmmoran/createdom/pkg/parser"
)

// Changes renders the requested targets and returns the diff of every file
// against its on-disk version. Nothing is written.
func Changes(opts *parser.Options) ([]output.FileDiff, error) {
	o := *opts
	o.DryRun = true
	res, err := generate.Generate(&o)
	if err != nil {
		return nil, err
	}
	return res.Diffs, nil
}

// Drifted is a generated file whose content no longer matches the manifest.
type Drifted struct {
	File     string
	Recorded string
	// Current is empty when the file is missing.
	Current string
}

// Drift compares the manifest at manifestPath against the files next to it.
func Drift(manifestPath string) ([]Drifted, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}
	if len(m.Files) == 0 {
		return nil, errors.WithHint(errors.Newf("no generated files recorded in %s", manifestPath),
			"run generate first")
	}

	dir := filepath.Dir(manifestPath)
	var out []Drifted
	for _, e := range m.Files {
		current := ""
		if data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(e.File))); err == nil {
			current = output.Sum(data)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(err, "read %s", e.File)
		}
		if current != e.SHA256 {
			out = append(out, Drifted{File: e.File, Recorded: e.SHA256, Current: current})
		}
	}
	return out, nil
}
