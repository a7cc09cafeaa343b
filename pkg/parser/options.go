package parser

import (
	"path/filepath"
	"slices"
	"strings"
)

// Target names accepted in Options.Targets.
const (
	TargetCPP        = "cpp"
	TargetTypeScript = "typescript"
	TargetPython     = "python"
	TargetJSON       = "json"
	TargetProtobuf   = "protobuf"
	TargetGo         = "go"
)

// DefaultManifest is the manifest file name written into OutDir.
const DefaultManifest = ".createdom.yaml"

// Options control parsing and generation.
//
// SchemaFile        – CSV schema to read
// OutDir            – destination directory, created when missing
// Targets           – emitters to run; empty means C++ only
// GoPackage         – package clause for Go output (defaults to the namespace)
// ExcludeTypes      – object names to leave out of generated output (case‑insensitive)
// ExcludeEngineTags – members whose engine-specific column matches are left out
// Force             – rewrite files even when their content did not change
// DryRun            – render and diff, never write
// Manifest          – manifest path, relative paths are resolved against OutDir
type Options struct {
	SchemaFile        string   `json:"schema_file,omitempty" yaml:"schema_file,omitempty" toml:"schema_file,omitempty" mapstructure:"schema_file,omitempty"`
	OutDir            string   `json:"out_dir,omitempty" yaml:"out_dir,omitempty" toml:"out_dir,omitempty" mapstructure:"out_dir,omitempty"`
	Targets           []string `json:"targets,omitempty" yaml:"targets,omitempty" toml:"targets,omitempty" mapstructure:"targets,omitempty"`
	GoPackage         string   `json:"go_package,omitempty" yaml:"go_package,omitempty" toml:"go_package,omitempty" mapstructure:"go_package,omitempty"`
	ExcludeTypes      []string `json:"exclude_types,omitempty" yaml:"exclude_types,omitempty" toml:"exclude_types,omitempty" mapstructure:"exclude_types,omitempty"`
	ExcludeEngineTags []string `json:"exclude_engine_tags,omitempty" yaml:"exclude_engine_tags,omitempty" toml:"exclude_engine_tags,omitempty" mapstructure:"exclude_engine_tags,omitempty"`
	Force             bool     `json:"force,omitempty" yaml:"force,omitempty" toml:"force,omitempty" mapstructure:"force,omitempty"`
	DryRun            bool     `json:"dry_run,omitempty" yaml:"dry_run,omitempty" toml:"dry_run,omitempty" mapstructure:"dry_run,omitempty"`
	Manifest          string   `json:"manifest,omitempty" yaml:"manifest,omitempty" toml:"manifest,omitempty" mapstructure:"manifest,omitempty"`
}

func NewOptions() *Options {
	return &Options{
		OutDir:   ".",
		Targets:  []string{TargetCPP},
		Manifest: DefaultManifest,
	}
}

// Normalize fills defaults, lower-cases and de-duplicates targets and makes
// relative paths absolute.
func (o *Options) Normalize() {
	targets := make([]string, 0, len(o.Targets))
	for _, t := range o.Targets {
		t = strings.ToLower(strings.TrimSpace(strings.TrimLeft(t, "-")))
		if t == "" || slices.Contains(targets, t) {
			continue
		}
		targets = append(targets, t)
	}
	if len(targets) == 0 {
		targets = append(targets, TargetCPP)
	}
	o.Targets = targets

	if len(o.OutDir) == 0 {
		o.OutDir = "."
	}
	if abs, err := filepath.Abs(o.OutDir); err == nil {
		o.OutDir = abs
	}
	if o.SchemaFile != "" {
		if abs, err := filepath.Abs(o.SchemaFile); err == nil {
			o.SchemaFile = abs
		}
	}
	if len(o.Manifest) == 0 {
		o.Manifest = DefaultManifest
	}
	if !filepath.IsAbs(o.Manifest) {
		o.Manifest = filepath.Join(o.OutDir, o.Manifest)
	}
	for i, n := range o.ExcludeTypes {
		o.ExcludeTypes[i] = strings.TrimSpace(n)
	}
}

// HasTarget reports whether target was requested.
func (o *Options) HasTarget(target string) bool {
	return slices.Contains(o.Targets, target)
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithSchemaFile(f string) Option { return func(o *Options) { o.SchemaFile = f } }
func WithOutDir(d string) Option     { return func(o *Options) { o.OutDir = d } }
func WithGoPackage(p string) Option  { return func(o *Options) { o.GoPackage = p } }
func WithManifest(p string) Option   { return func(o *Options) { o.Manifest = p } }
func WithForce() Option              { return func(o *Options) { o.Force = true } }
func WithDryRun() Option             { return func(o *Options) { o.DryRun = true } }

// WithTargets replaces the target list.
func WithTargets(targets ...string) Option {
	return func(o *Options) { o.Targets = append([]string{}, targets...) }
}

func WithExcludeTypes(names ...string) Option {
	return func(o *Options) {
		for _, n := range names {
			o.ExcludeTypes = append(o.ExcludeTypes, strings.TrimSpace(n))
		}
	}
}

func WithExcludeEngineTags(tags ...string) Option {
	return func(o *Options) { o.ExcludeEngineTags = append(o.ExcludeEngineTags, tags...) }
}
