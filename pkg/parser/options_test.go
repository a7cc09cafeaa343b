package parser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	o := &Options{
		OutDir:       "gen",
		Targets:      []string{"--CPP", " python ", "cpp", ""},
		ExcludeTypes: []string{" Secret "},
	}
	o.Normalize()

	abs, err := filepath.Abs("gen")
	require.NoError(t, err)
	require.Equal(t, abs, o.OutDir)
	require.Equal(t, []string{TargetCPP, TargetPython}, o.Targets)
	require.Equal(t, filepath.Join(abs, DefaultManifest), o.Manifest)
	require.Equal(t, []string{"Secret"}, o.ExcludeTypes)
	require.True(t, o.HasTarget(TargetPython))
	require.False(t, o.HasTarget(TargetGo))
}

func TestNormalizeDefaults(t *testing.T) {
	o := &Options{Manifest: "/tmp/manifest.yaml"}
	o.Normalize()
	require.Equal(t, []string{TargetCPP}, o.Targets)
	require.Equal(t, "/tmp/manifest.yaml", o.Manifest)
	require.True(t, filepath.IsAbs(o.OutDir))
}

func TestFunctionalOptions(t *testing.T) {
	p, err := New(
		WithSchemaFile("schema.csv"),
		WithOutDir("out"),
		WithTargets("typescript", "go"),
		WithGoPackage("models"),
		WithExcludeTypes(" A ", "B"),
		WithExcludeEngineTags("editor"),
		WithManifest("m.yaml"),
		WithForce(),
		WithDryRun(),
	)
	require.NoError(t, err)

	o := p.Opts
	require.True(t, filepath.IsAbs(o.SchemaFile))
	require.Equal(t, []string{TargetTypeScript, TargetGo}, o.Targets)
	require.Equal(t, "models", o.GoPackage)
	require.Equal(t, []string{"A", "B"}, o.ExcludeTypes)
	require.Equal(t, []string{"editor"}, o.ExcludeEngineTags)
	require.Equal(t, filepath.Join(o.OutDir, "m.yaml"), o.Manifest)
	require.True(t, o.Force)
	require.True(t, o.DryRun)
}
