package golang

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/createdom/internal/diag"
	"github.com/cmmoran/createdom/internal/emit"
	"github.com/cmmoran/createdom/internal/emit/emittest"
	"github.com/cmmoran/createdom/internal/model"
)

func TestRender(t *testing.T) {
	v, _ := emittest.View(t, emittest.Scene)
	c := diag.NewCollector(nil)
	files, err := New(Config{}).Emit(v, c)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, "scene.go", files[0].Name)
	require.Zero(t, c.Count(diag.Warning))

	src := string(files[0].Content)
	for _, want := range []string{
		"// Code generated by createdom. DO NOT EDIT.",
		"package myns",
		"// colours\ntype Color uint32",
		"func (x Color) String() string {",
		"func (x Color) MarshalText() ([]byte, error) {",
		"func (x *Color) UnmarshalText(text []byte) error {",
		"// scene node\ntype Node struct {\n\tBase\n",
		"func NewNode() *Node {",
		"func (x *Node) SetDefaults() {\n\tx.Base.SetDefaults()\n\tx.Id = 9\n\tx.Name = \"root\"\n\tx.Position.SetDefaults()\n}",
		"x.X = 1.5",
		"// Nodes is a list of Node.\ntype Nodes []Node",
		"func ptr[T any](v T) *T {",
	} {
		require.Contains(t, src, want)
	}
	for _, pattern := range []string{
		`ColorBlue\s+Color = 5 // the sky`,
		`ColorBlue:\s+"Blue"`,
		"Tint\\s+\\*Color\\s+`json:\"tint,omitempty\"`",
		"Children\\s+\\[\\]\\*Node\\s+`json:\"children\"`",
		"Tags\\s+map\\[string\\]string\\s+`json:\"tags\"`",
		"Nodes\\s+Nodes\\s+`json:\"nodes\"`",
		`x\.W = ptr\[float32\]\(2(\.0)?\)`,
	} {
		require.Regexp(t, pattern, src)
	}
}

func TestFilteredBaseMember(t *testing.T) {
	v, _ := emittest.Select(t, emittest.Scene, model.Selector{
		Field: func(o *model.Object, f *model.Field) bool { return o.Name != "Base" || f.Name != "id" },
	})
	c := diag.NewCollector(nil)
	files, err := New(Config{}).Emit(v, c)
	require.NoError(t, err)

	src := string(files[0].Content)
	require.NotContains(t, src, "x.Id = 9")
	require.NotRegexp(t, `\bId\s+uint32`, src)
	require.Contains(t, src, "func (x *Node) SetDefaults() {\n\tx.Base.SetDefaults()\n\tx.Name = \"root\"")
	require.Equal(t, 1, c.Count(diag.Warning))
	require.Contains(t, c.All()[0].Message, "inherited member is not declared by Base")
}

func TestAliasesAndIntegerEnums(t *testing.T) {
	v, _ := emittest.View(t, `Namespace,ns
Filename,misc
Handle,,Class,,,,,,u64
Mode,,Enum
,Off
,On
Item,,Class,Missing
,mode,Mode!,,,On
,h,Handle
,what,Widget
,"2nd",i8,,,-3
`)
	c := diag.NewCollector(nil)
	files, err := New(Config{Package: "Widgets-2"}).Emit(v, c)
	require.NoError(t, err)

	src := string(files[0].Content)
	require.Contains(t, src, "package widgets2")
	require.Contains(t, src, "type Handle = uint64")
	require.Contains(t, src, "x.Mode = uint32(ModeOn)")
	require.Contains(t, src, "x.X2nd = -3")
	require.Regexp(t, "Mode\\s+uint32\\s+`json:\"mode\"`", src)
	require.Regexp(t, "What\\s+any\\s+`json:\"what\"`", src)
	require.Equal(t, 2, c.Count(diag.Warning))
}

func TestImportPath(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/gen\n\ngo 1.24\n"), 0o644))
	out := filepath.Join(root, "out", "models")
	require.NoError(t, os.MkdirAll(out, 0o755))

	p, err := ImportPath(out)
	require.NoError(t, err)
	require.Equal(t, "example.com/gen/out/models", p)

	p, err = ImportPath(root)
	require.NoError(t, err)
	require.Equal(t, "example.com/gen", p)

	v, _ := emittest.View(t, emittest.Scene)
	files, err := New(Config{OutDir: out}).Emit(v, diag.Discard)
	require.NoError(t, err)
	require.Contains(t, string(files[0].Content), "package models")
}

func TestMissingDirectives(t *testing.T) {
	v, _ := emittest.View(t, "A,,Class\n")
	_, err := New(Config{}).Emit(v, diag.Discard)
	require.ErrorIs(t, err, emit.ErrMissingMeta)
}

func TestIdentifiers(t *testing.T) {
	require.Equal(t, "Position", exported("position"))
	require.Equal(t, "SnakeCase", exported("snake_case"))
	require.Equal(t, "X1st", exported("1st"))
	require.Equal(t, "X", exported("--"))
	require.Equal(t, "ColorDarkRed", enumConst("Color", "dark_red"))
	require.Equal(t, "schema", packageName("123"))
	require.Equal(t, "my_ns", packageName("My_NS"))
}
