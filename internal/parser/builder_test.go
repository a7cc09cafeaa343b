package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/createdom/internal/diag"
	"github.com/cmmoran/createdom/internal/model"
)

func TestParseMemberName(ttt *testing.T) {
	tests := []struct {
		raw         string
		name        string
		optional    model.Optionality
		isMap       bool
		mapKey      string
		isPointer   bool
		isArray     bool
		wantProblem bool
	}{
		{raw: "plain", name: "plain"},
		{raw: "?[alias:string]", name: "alias", optional: model.Optional, isMap: true, mapKey: "string"},
		{raw: "!foo*", name: "foo", optional: model.OptionalDeserialize, isPointer: true},
		{raw: "items[", name: "items", isArray: true},
		{raw: "items[]", name: "items", isArray: true},
		{raw: "nodes*[", name: "nodes", isArray: true, isPointer: true},
		{raw: "[lookup:u32][]", name: "lookup", isMap: true, mapKey: "u32", isArray: true},
		{raw: "[broken]", name: "broken", wantProblem: true},
	}
	for _, tt := range tests {
		ttt.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			f, problem := parseMemberName(tt.raw)
			require.Equal(t, tt.name, f.Name)
			require.Equal(t, tt.optional, f.Optional)
			require.Equal(t, tt.isMap, f.IsMap)
			require.Equal(t, tt.mapKey, f.MapKeyType)
			require.Equal(t, tt.isPointer, f.IsPointer)
			require.Equal(t, tt.isArray, f.IsArray)
			require.Equal(t, tt.wantProblem, problem != "", "problem: %q", problem)
		})
	}
}

func TestBuilderRowClassification(t *testing.T) {
	b := NewBuilder(nil)

	require.Equal(t, RowDirective, b.AddRow([]string{"Namespace", "myns"}))
	require.Equal(t, RowDirective, b.AddRow([]string{"ObjectName", "Member", "Type"}))
	require.Equal(t, RowObject, b.AddRow([]string{"A", "", "Class"}))
	require.Equal(t, RowField, b.AddRow([]string{"", "x", "float"}))
	require.Equal(t, RowField, b.AddRow([]string{"", "y", "float"}))
	require.Equal(t, RowSkipped, b.AddRow([]string{"", "", ""}))
	require.Equal(t, RowObject, b.AddRow([]string{"B", "", "Class", "A"}))
	require.Equal(t, RowEOF, b.AddRow([]string{"EOF"}))
	require.Equal(t, RowSkipped, b.AddRow([]string{"C", "", "Class"}))
	require.True(t, b.Ended())

	m := b.Finish()
	require.Len(t, m.Objects, 2)
	require.Equal(t, "myns", m.Info.Namespace)
	require.Len(t, m.Objects[0].Fields, 2)
	require.Empty(t, m.Objects[1].Fields)
	require.Equal(t, []string{"B"}, m.Objects[0].Children)

	require.Same(t, m, b.Finish())
}

func TestBuilderDirectives(t *testing.T) {
	b := NewBuilder(nil)
	b.AddRow([]string{"Filename", "schema"})
	b.AddRow([]string{"namespace", "ns"})
	b.AddRow([]string{"POD", "1"})
	b.AddRow([]string{"URL", "https://example.com/schema"})
	b.AddRow([]string{"ExportXML", "true"})
	m := b.Finish()

	require.Equal(t, model.Info{
		Namespace:    "ns",
		Filename:     "schema",
		URL:          "https://example.com/schema",
		ExportXML:    "true",
		PlainOldData: true,
	}, m.Info)
}

func TestBuilderFieldColumns(t *testing.T) {
	b := NewBuilder(nil)
	b.AddRow([]string{"Color", "", "Enum"})
	b.AddRow([]string{"Shape", "", "Class", "", "editor", "CLONE", "", "", "", "a shape", "long text"})
	b.AddRow([]string{"", "color", "Color!", "", "", "Red", "", "", "colour", "fill"})
	b.AddRow([]string{"", "parent", "Shape*"})
	b.AddRow([]string{"", "id", "u64", "PROTO:fixed64", "", "7", "0", "100"})
	b.AddRow([]string{"", "name", "string", "Base"})
	m := b.Finish()

	shape := m.Objects[1]
	require.True(t, shape.Clone)
	require.Equal(t, "editor", shape.EngineSpecific)
	require.Equal(t, "a shape", shape.ShortDescription)
	require.Equal(t, "long text", shape.LongDescription)

	color := shape.Fields[0]
	require.Equal(t, "Color", color.Type)
	require.True(t, color.SerializeEnumAsInteger)
	require.Equal(t, "Red", color.Default)
	require.Equal(t, "colour", color.Alias)
	require.Equal(t, "colour", color.WireName())
	require.Equal(t, "fill", color.ShortDescription)

	parent := shape.Fields[1]
	require.Equal(t, "Shape", parent.Type)
	require.True(t, parent.IsPointer)

	id := shape.Fields[2]
	require.Equal(t, "fixed64", id.ProtoType)
	require.Empty(t, id.InheritsFrom)
	require.Equal(t, "0", id.Min)
	require.Equal(t, "100", id.Max)

	name := shape.Fields[3]
	require.True(t, name.IsString)
	require.Equal(t, "Base", name.InheritsFrom)
	require.True(t, name.IsInherited())
}

func TestObjectDescriptionColumns(t *testing.T) {
	m, _ := parse(t,
		`Both,,Class,,,,,,,"short, with comma","long"`,
		`Long,,Class,,,,,,,,"only long"`,
		`Short,,Class,,,,,,,"only short"`,
		`Aliased,,Class,,,,,,u32,"short"`,
	)
	require.Len(t, m.Objects, 4)

	tests := []struct {
		short, long, alias string
	}{
		{short: "short, with comma", long: "long"},
		{long: "only long"},
		{short: "only short"},
		{short: "short", alias: "u32"},
	}
	for i, tt := range tests {
		o := m.Objects[i]
		require.Equal(t, tt.short, o.ShortDescription, o.Name)
		require.Equal(t, tt.long, o.LongDescription, o.Name)
		require.Equal(t, tt.alias, o.Alias, o.Name)
	}
}

func TestBuilderMemberWithoutObject(t *testing.T) {
	c := diag.NewCollector(nil)
	b := NewBuilder(c)
	b.AddRow([]string{"", "orphan", "u32"})
	m := b.Finish()

	require.Empty(t, m.Objects)
	require.Equal(t, 1, c.Count(diag.Warning))
	require.Equal(t, 1, c.All()[0].Row)
}

func TestBuilderAssignmentFlag(t *testing.T) {
	b := NewBuilder(nil)
	b.AddRow([]string{"P", "", "Class", "", "", "assignment"})
	m := b.Finish()
	require.True(t, m.Objects[0].Assignment)
	require.False(t, m.Objects[0].Clone)
}

func TestParseBool(t *testing.T) {
	require.True(t, parseBool("1"))
	require.True(t, parseBool(" TRUE "))
	require.False(t, parseBool("0"))
	require.False(t, parseBool("no"))
}
