package manifest

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Entry represents one generated file in the manifest.
type Entry struct {
	File   string `yaml:"file" json:"file"`
	Target string `yaml:"target" json:"target"`
	SHA256 string `yaml:"sha256" json:"sha256"`
}

// Manifest tracks the files produced by the last generation run in a
// destination directory. File paths are relative to that directory.
type Manifest struct {
	Schema string  `yaml:"schema" json:"schema"`
	Files  []Entry `yaml:"files" json:"files"`
}

// Load reads a manifest from the provided path. If the file does not exist,
// an empty manifest is returned.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read manifest")
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.WithHintf(errors.Wrap(err, "unmarshal manifest"),
			"remove %s to start a fresh manifest", path)
	}

	return &m, nil
}

// Save writes the manifest to the provided path, creating parent directories as needed.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create manifest directory")
	}

	sort.Slice(m.Files, func(i, j int) bool { return m.Files[i].File < m.Files[j].File })
	data, err := yaml.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "marshal manifest")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "write manifest")
	}

	return nil
}

// Record adds e, replacing an existing entry for the same file.
func (m *Manifest) Record(e Entry) {
	for i := range m.Files {
		if m.Files[i].File == e.File {
			m.Files[i] = e
			return
		}
	}

	m.Files = append(m.Files, e)
}

// Lookup returns the entry recorded for file, if present.
func (m *Manifest) Lookup(file string) (Entry, bool) {
	for _, e := range m.Files {
		if e.File == file {
			return e, true
		}
	}
	return Entry{}, false
}

// Stale returns the entries of m that next no longer lists.
func (m *Manifest) Stale(next *Manifest) []Entry {
	var out []Entry
	for _, e := range m.Files {
		if _, ok := next.Lookup(e.File); !ok {
			out = append(out, e)
		}
	}
	return out
}
