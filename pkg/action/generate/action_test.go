package generate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/createdom/internal/output"
	"github.com/cmmoran/createdom/pkg/manifest"
	"github.com/cmmoran/createdom/pkg/parser"
)

const schema = `Namespace,ns
Filename,things
Thing,,Class
,name,string
,count,u32,,,1
`

func setup(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "things.csv")
	require.NoError(t, os.WriteFile(path, []byte(schema), 0o644))
	return path, filepath.Join(dir, "out")
}

func options(schemaFile, outDir string, opts ...parser.Option) *parser.Options {
	o := parser.NewOptions()
	o.SchemaFile = schemaFile
	o.OutDir = outDir
	for _, fn := range opts {
		fn(o)
	}
	return o
}

func TestGenerateWritesFilesAndManifest(t *testing.T) {
	schemaFile, out := setup(t)

	res, err := Generate(options(schemaFile, out, parser.WithTargets("cpp", "typescript")))
	require.NoError(t, err)
	require.Len(t, res.Files, 3)
	require.Zero(t, res.Failed())
	for _, f := range res.Files {
		require.Equal(t, output.Created, f.Status)
	}

	m, err := manifest.Load(filepath.Join(out, parser.DefaultManifest))
	require.NoError(t, err)
	require.Equal(t, schemaFile, m.Schema)
	require.Len(t, m.Files, 3)
	e, ok := m.Lookup("things.ts")
	require.True(t, ok)
	require.Equal(t, "typescript", e.Target)

	data, err := os.ReadFile(filepath.Join(out, "things.ts"))
	require.NoError(t, err)
	require.Equal(t, output.Sum(data), e.SHA256)

	res, err = Generate(options(schemaFile, out, parser.WithTargets("cpp", "typescript")))
	require.NoError(t, err)
	for _, f := range res.Files {
		require.Equal(t, output.Unchanged, f.Status)
	}
}

func TestGenerateReportsStaleFiles(t *testing.T) {
	schemaFile, out := setup(t)
	_, err := Generate(options(schemaFile, out, parser.WithTargets("cpp", "python")))
	require.NoError(t, err)

	res, err := Generate(options(schemaFile, out, parser.WithTargets("python")))
	require.NoError(t, err)
	require.Len(t, res.Stale, 2)

	m, err := manifest.Load(filepath.Join(out, parser.DefaultManifest))
	require.NoError(t, err)
	require.Len(t, m.Files, 1)
}

func TestGenerateKeepsEditedFiles(t *testing.T) {
	schemaFile, out := setup(t)
	_, err := Generate(options(schemaFile, out, parser.WithTargets("python")))
	require.NoError(t, err)

	edited := filepath.Join(out, "things.py")
	require.NoError(t, os.WriteFile(edited, []byte("# mine\n"), 0o644))

	res, err := Generate(options(schemaFile, out, parser.WithTargets("python")))
	require.NoError(t, err)
	require.Equal(t, []string{edited}, res.Skipped)
	require.Empty(t, res.Files)
	data, err := os.ReadFile(edited)
	require.NoError(t, err)
	require.Equal(t, "# mine\n", string(data))

	res, err = Generate(options(schemaFile, out, parser.WithTargets("python"), parser.WithForce()))
	require.NoError(t, err)
	require.Empty(t, res.Skipped)
	require.Equal(t, output.Updated, res.Files[0].Status)
}

func TestGenerateDryRun(t *testing.T) {
	schemaFile, out := setup(t)
	res, err := Generate(options(schemaFile, out, parser.WithTargets("protobuf"), parser.WithDryRun()))
	require.NoError(t, err)
	require.Len(t, res.Diffs, 1)
	require.False(t, res.Diffs[0].Exists)
	require.Contains(t, res.Diffs[0].Diff, "message Thing")

	_, err = os.Stat(out)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestGenerateErrors(t *testing.T) {
	schemaFile, out := setup(t)

	_, err := Generate(options(schemaFile, out, parser.WithTargets("cobol")))
	require.Error(t, err)

	_, err = Generate(options(filepath.Join(out, "missing.csv"), out))
	require.Error(t, err)
}

func TestGenerateCollectsDiagnostics(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("A,,Class\n,x,u8\n"), 0o644))

	res, err := Generate(options(path, filepath.Join(dir, "out")))
	require.NoError(t, err)
	require.Empty(t, res.Files)
	require.NotEmpty(t, res.Diagnostics)
}
