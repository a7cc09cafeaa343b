// Package output writes rendered files to disk, touching only files whose
// content changed, and renders dry-run diffs against what is on disk.
package output

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"

	"github.com/cmmoran/createdom/internal/emit"
)

// Status describes what happened to one file.
type Status int

const (
	Unchanged Status = iota
	Created
	Updated
	Failed
)

func (s Status) String() string {
	switch s {
	case Unchanged:
		return "unchanged"
	case Created:
		return "created"
	case Updated:
		return "updated"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Result is the outcome of writing one file.
type Result struct {
	Path   string
	Target string
	Sum    string
	Status Status
	Err    error
}

// Writer places files below Dir.
type Writer struct {
	Dir   string
	Force bool

	log *slog.Logger
}

// NewWriter returns a Writer rooted at dir. With force set, files are
// rewritten even when their content is unchanged.
func NewWriter(dir string, force bool, l *slog.Logger) *Writer {
	if l == nil {
		l = slog.Default()
	}
	return &Writer{Dir: dir, Force: force, log: l.With("component", "output")}
}

// Path returns where a file named name is written.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.Dir, filepath.FromSlash(name))
}

// Write stores every file. A failure is recorded on that file's Result and
// does not stop the remaining files.
func (w *Writer) Write(files []emit.File) []Result {
	out := make([]Result, 0, len(files))
	for _, f := range files {
		r := w.write(f)
		if r.Err != nil {
			w.log.Error("unable to write file", "path", r.Path, "error", r.Err)
		} else {
			w.log.Debug("file written", "path", r.Path, "status", r.Status.String())
		}
		out = append(out, r)
	}
	return out
}

func (w *Writer) write(f emit.File) Result {
	r := Result{Path: w.Path(f.Name), Target: f.Target, Sum: Sum(f.Content)}

	existing, err := os.ReadFile(r.Path)
	switch {
	case err == nil && bytes.Equal(existing, f.Content) && !w.Force:
		r.Status = Unchanged
		return r
	case err == nil:
		r.Status = Updated
	case errors.Is(err, os.ErrNotExist):
		r.Status = Created
	default:
		r.Status, r.Err = Failed, errors.Wrapf(err, "read %s", r.Path)
		return r
	}

	if err := os.MkdirAll(filepath.Dir(r.Path), 0o755); err != nil {
		r.Status, r.Err = Failed, errors.Wrapf(err, "create directory for %s", r.Path)
		return r
	}
	if err := os.WriteFile(r.Path, f.Content, 0o644); err != nil {
		r.Status, r.Err = Failed, errors.WithHintf(
			errors.Wrapf(err, "write %s", r.Path),
			"check that %s is writable", filepath.Dir(r.Path),
		)
	}
	return r
}

// FileDiff is the difference between a rendered file and the file on disk.
// Diff is empty when they match.
type FileDiff struct {
	Path   string
	Target string
	Exists bool
	Diff   string
}

// Diff compares every file with its on-disk counterpart without writing.
func (w *Writer) Diff(files []emit.File) ([]FileDiff, error) {
	out := make([]FileDiff, 0, len(files))
	for _, f := range files {
		d := FileDiff{Path: w.Path(f.Name), Target: f.Target}
		existing, err := os.ReadFile(d.Path)
		switch {
		case err == nil:
			d.Exists = true
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, errors.Wrapf(err, "read %s", d.Path)
		}
		d.Diff = cmp.Diff(string(existing), string(f.Content))
		out = append(out, d)
	}
	return out, nil
}

// Sum returns the hex SHA-256 of content.
func Sum(content []byte) string {
	h := sha256.Sum256(content)
	return hex.EncodeToString(h[:])
}
