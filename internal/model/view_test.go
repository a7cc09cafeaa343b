package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testModel() *Model {
	m := &Model{
		Info: Info{Namespace: "ns", Filename: "out"},
		Objects: []Object{
			{Name: "Color", Kind: KindEnum, Fields: []Field{{Name: "Red"}, {Name: "Green"}}},
			{Name: "Shape", Kind: KindClass, NeedsReflection: true, Fields: []Field{
				{Name: "name", Type: "string", EngineSpecific: "editor"},
				{Name: "color", Type: "Color"},
			}},
			{Name: "Internal", Kind: KindClass},
		},
	}
	m.SetDirectory(NewDirectory(m.Objects))
	return m
}

func TestDirectory(t *testing.T) {
	m := testModel()
	d := m.Directory()

	require.Equal(t, 3, d.Len())
	require.True(t, d.IsEnum("Color"))
	require.False(t, d.IsClass("Color"))
	require.True(t, d.IsClass("Shape"))
	require.False(t, d.IsEnum("u32"))
	require.False(t, d.IsClass("Missing"))

	o, ok := d.Find("Shape")
	require.True(t, ok)
	require.Same(t, &m.Objects[1], o)
}

func TestViewSelectsObjectsAndFields(t *testing.T) {
	m := testModel()
	v := NewView(m, Selector{
		Object: func(o *Object) bool { return o.Name != "Internal" },
		Field:  func(o *Object, f *Field) bool { return f.EngineSpecific != "editor" },
	})

	require.Equal(t, m.Info, v.Meta())
	types := v.Types()
	require.Len(t, types, 2)
	require.Equal(t, "Color", types[0].Name)
	require.Equal(t, "Shape", types[1].Name)
	require.Len(t, types[1].Fields, 1)
	require.Equal(t, "color", types[1].Fields[0].Name)

	// the model itself is untouched and lookups still see excluded objects
	require.Len(t, m.Objects[1].Fields, 2)
	internal, ok := v.Find("Internal")
	require.True(t, ok)
	require.Same(t, &m.Objects[2], internal)
	// selected objects are found with their fields filtered
	shape, ok := v.Find("Shape")
	require.True(t, ok)
	require.Same(t, types[1], shape)
	require.Len(t, shape.Fields, 1)
	require.True(t, v.IsEnum("Color"))
	require.True(t, v.IsClass("Shape"))
	require.Equal(t, []string{"Shape"}, v.Reflecting())
}

func TestFieldHelpers(t *testing.T) {
	f := Field{Name: "colour", Alias: "color", Type: "u16", InheritsFrom: "Base"}
	require.Equal(t, "color", f.WireName())
	require.True(t, f.IsInherited())
	require.Equal(t, TypeU16, f.StandardType())
	require.Equal(t, 16, f.StandardType().Bits())
	require.False(t, f.StandardType().IsSigned())

	f = Field{Name: "plain", Type: "Shape", IsPointer: true}
	require.Equal(t, "plain", f.WireName())
	require.False(t, f.IsInherited())
	require.Equal(t, TypeNone, f.StandardType())
	require.True(t, f.DirectlyNeedsReflection())
}

func TestObjectHelpers(t *testing.T) {
	o := Object{Name: "Alias", Alias: "Target", Fields: []Field{
		{Name: "a"},
		{Name: "b", InheritsFrom: "Base"},
	}}
	require.True(t, o.IsAlias())
	require.Len(t, o.LocalFields(), 1)
	require.Equal(t, "a", o.LocalFields()[0].Name)

	_, ok := o.Field("b")
	require.True(t, ok)
	_, ok = o.Field("c")
	require.False(t, ok)

	self := Object{Name: "Same", Alias: "Same"}
	require.False(t, self.IsAlias())
}

func TestKindAndOptionalityText(t *testing.T) {
	require.Equal(t, KindClass, ParseKind("CLASS"))
	require.Equal(t, KindEnum, ParseKind("enum"))
	require.Equal(t, KindUnknown, ParseKind("struct"))

	b, err := KindEnum.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "enum", string(b))

	b, err = OptionalDeserialize.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "optional-deserialize", string(b))
	require.True(t, IsStandardType("double"))
	require.False(t, IsStandardType("Vec3"))
	require.True(t, TypeI8.IsSigned())
	require.True(t, TypeI8.IsInteger())
	require.False(t, TypeFloat.IsInteger())
}
