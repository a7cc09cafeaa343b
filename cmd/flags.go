package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cmmoran/createdom/pkg/parser"
)

// generationFlags are shared by the commands that render targets.
type generationFlags struct {
	options           *parser.Options
	cpp, python, ts   bool
	json, proto, gogo bool
}

func newGenerationFlags(c *cobra.Command) *generationFlags {
	f := &generationFlags{options: parser.NewOptions()}
	fs := c.Flags()
	fs.BoolVar(&f.cpp, "cpp", false, "generate C++ headers and JSON bindings (default when no target is given)")
	fs.BoolVar(&f.python, "python", false, "generate Python classes")
	fs.BoolVar(&f.ts, "typescript", false, "generate TypeScript declarations")
	fs.BoolVar(&f.json, "json", false, "generate the JSON export (not implemented)")
	fs.BoolVar(&f.proto, "protobuf", false, "generate a proto3 schema")
	fs.BoolVar(&f.gogo, "go", false, "generate Go bindings")
	fs.StringVar(&f.options.GoPackage, "go-package", "", "package name for Go output (default: derived from the enclosing go.mod or the namespace)")
	fs.StringSliceVarP(&f.options.ExcludeTypes, "exclude-types", "t", []string{}, "exclude named types from generated output")
	fs.StringSliceVarP(&f.options.ExcludeEngineTags, "exclude-engine-tags", "T", []string{}, "exclude members whose engine-specific column matches")
	fs.StringVar(&f.options.Manifest, "manifest", parser.DefaultManifest, "manifest file, relative to the destination directory")
	return f
}

// resolve builds the final options: config file values under "generate" first,
// then positional arguments and flags given on the command line.
func (f *generationFlags) resolve(c *cobra.Command, args []string) *parser.Options {
	opts := parser.NewOptions()
	if viper.IsSet("generate") {
		if err := viper.UnmarshalKey("generate", opts); err != nil {
			slog.Default().Warn("ignoring invalid generate configuration", "error", err)
		}
	}

	if len(args) > 0 {
		opts.SchemaFile = args[0]
	}
	if len(args) > 1 {
		opts.OutDir = args[1]
	}

	var selected []string
	for _, t := range []struct {
		on   bool
		name string
	}{
		{f.cpp, parser.TargetCPP},
		{f.python, parser.TargetPython},
		{f.ts, parser.TargetTypeScript},
		{f.json, parser.TargetJSON},
		{f.proto, parser.TargetProtobuf},
		{f.gogo, parser.TargetGo},
	} {
		if t.on {
			selected = append(selected, t.name)
		}
	}
	if len(selected) > 0 {
		opts.Targets = selected
	}

	fs := c.Flags()
	if fs.Changed("go-package") {
		opts.GoPackage = f.options.GoPackage
	}
	if fs.Changed("exclude-types") {
		opts.ExcludeTypes = f.options.ExcludeTypes
	}
	if fs.Changed("exclude-engine-tags") {
		opts.ExcludeEngineTags = f.options.ExcludeEngineTags
	}
	if fs.Changed("manifest") {
		opts.Manifest = f.options.Manifest
	}
	opts.Normalize()
	return opts
}
