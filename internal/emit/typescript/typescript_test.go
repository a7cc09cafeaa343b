package typescript

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/createdom/internal/diag"
	"github.com/cmmoran/createdom/internal/emit"
	"github.com/cmmoran/createdom/internal/emit/emittest"
)

func TestDeclarations(t *testing.T) {
	v, _ := emittest.View(t, emittest.Scene)
	c := diag.NewCollector(nil)
	files, err := New().Emit(v, c)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, "scene.ts", files[0].Name)
	require.Equal(t, Target, files[0].Target)

	ts := string(files[0].Content)
	for _, want := range []string{
		"export enum Color {",
		"    Red = 0,",
		"    Blue = 5, // the sky",
		"export type Base = {",
		"    id: number;",
		"/**\n * scene node\n */\nexport type Node = Base & {",
		"    name: string;",
		"    color: Color;",
		"    tint?: Color;",
		"    children: Node[];",
		"    [tags: string]: string;",
		"    position: Vec3;",
		"    w?: number;",
		"    nodes: Node[];",
	} {
		require.Contains(t, ts, want)
	}
	// inherited members are declared by the base only
	require.NotContains(t, ts, "Base & {\n    id")
	require.Zero(t, c.Count(diag.Warning))
}

func TestAliasesAndUnknownTypes(t *testing.T) {
	v, _ := emittest.View(t, `Namespace,ns
Filename,ids
Handle,,Class,,,,,,u64
Thing,,Class,Missing
,h,Handle
,parent,Thing*
,"odd-name",Widget
,[byId:u32],Thing
`)
	c := diag.NewCollector(nil)
	files, err := New().Emit(v, c)
	require.NoError(t, err)

	ts := string(files[0].Content)
	require.Contains(t, ts, "export type Handle = number;")
	require.Contains(t, ts, "export type Thing = {")
	require.NotContains(t, ts, "Missing")
	require.Contains(t, ts, "    h: Handle;")
	require.Contains(t, ts, "    parent: Thing | null;")
	require.Contains(t, ts, `    "odd-name": unknown;`)
	require.Contains(t, ts, "    [byId: number]: Thing;")
	require.Equal(t, 2, c.Count(diag.Warning))
}

func TestMissingDirectives(t *testing.T) {
	v, _ := emittest.View(t, "A,,Enum\n,X\n")
	_, err := New().Emit(v, diag.Discard)
	require.ErrorIs(t, err, emit.ErrMissingMeta)
}

func TestPropertyName(t *testing.T) {
	require.Equal(t, "plain_1", propertyName("plain_1"))
	require.Equal(t, "$x", propertyName("$x"))
	require.Equal(t, `"1st"`, propertyName("1st"))
	require.Equal(t, `"a b"`, propertyName("a b"))
	require.Equal(t, `""`, propertyName(""))
}
