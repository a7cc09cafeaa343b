package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/createdom/internal/diag"
	"github.com/cmmoran/createdom/internal/model"
)

func parse(t *testing.T, lines ...string) (*model.Model, *diag.Collector) {
	t.Helper()
	c := diag.NewCollector(nil)
	return Parse([]byte(strings.Join(lines, "\n")), c), c
}

func TestSceneNodeScenario(t *testing.T) {
	m, _ := parse(t,
		"Namespace,myns",
		"Filename,schema",
		`Vec3,,Class,,,,,,,,"3d point"`,
		",x,float,,,0.0",
		",y,float,,,0.0",
		",z,float,,,0.0",
		`Node,,Class,,,,,,,,"scene node"`,
		",position,Vec3",
		",children[,Node*",
		"EOF",
	)

	require.Len(t, m.Objects, 2)
	vec3, node := m.Objects[0], m.Objects[1]

	require.Equal(t, "Vec3", vec3.Name)
	require.True(t, vec3.IsClass())
	require.False(t, vec3.IsEnum())
	require.Equal(t, "3d point", vec3.LongDescription)
	require.Empty(t, vec3.ShortDescription)
	require.Len(t, vec3.Fields, 3)
	for _, f := range vec3.Fields {
		require.Equal(t, "float", f.Type)
		require.Equal(t, "0.0", f.Default)
		require.False(t, f.NeedsReflection)
	}
	require.False(t, vec3.NeedsReflection)

	require.Equal(t, "Node", node.Name)
	require.True(t, node.IsClass())
	require.Equal(t, "scene node", node.LongDescription)
	position, ok := node.Field("position")
	require.True(t, ok)
	require.Equal(t, "Vec3", position.Type)
	require.False(t, position.IsArray)
	require.False(t, position.NeedsReflection)

	children, ok := node.Field("children")
	require.True(t, ok)
	require.Equal(t, "Node", children.Type)
	require.True(t, children.IsArray)
	require.True(t, children.IsPointer)
	require.True(t, children.NeedsReflection)
	require.True(t, node.NeedsReflection)

	v := model.NewView(m, model.Selector{})
	require.Equal(t, []string{"Node"}, v.Reflecting())
}

func TestReflectionPropagation(t *testing.T) {
	m, _ := parse(t,
		"A,,Class",
		",label,string",
		"B,,Class",
		",a,A",
		"C,,Class",
		",b,B",
	)
	a, _ := m.Find("A")
	b, _ := m.Find("B")
	c, _ := m.Find("C")

	require.True(t, a.NeedsReflection)
	require.True(t, b.Fields[0].NeedsReflection)
	require.True(t, b.NeedsReflection)
	require.True(t, c.Fields[0].NeedsReflection)
	require.True(t, c.NeedsReflection)

	v := model.NewView(m, model.Selector{})
	require.Equal(t, []string{"A", "B", "C"}, v.Reflecting())
}

func TestReflectionIgnoresPlainReferences(t *testing.T) {
	m, _ := parse(t,
		"A,,Class",
		",n,u32",
		"B,,Class",
		",a,A",
	)
	b, _ := m.Find("B")
	require.False(t, b.Fields[0].NeedsReflection)
	require.False(t, b.NeedsReflection)
}

func TestMultipleInheritanceIsOneLevel(t *testing.T) {
	m, _ := parse(t,
		"A,,Class",
		"B,,Class,A",
		"C,,Class,B",
		"D,,Class,Missing",
	)
	a, _ := m.Find("A")
	b, _ := m.Find("B")
	c, _ := m.Find("C")
	d, _ := m.Find("D")

	require.Empty(t, a.MultipleInheritance)
	require.Empty(t, b.MultipleInheritance)
	require.Equal(t, "A", c.MultipleInheritance)
	require.Empty(t, d.MultipleInheritance)
}

func TestClassificationIsExclusive(t *testing.T) {
	m, _ := parse(t,
		"A,,class",
		"B,,ENUM",
		"C,,Struct",
		"D,,",
	)
	want := map[string]model.Kind{
		"A": model.KindClass,
		"B": model.KindEnum,
		"C": model.KindUnknown,
		"D": model.KindUnknown,
	}
	for _, o := range m.Objects {
		require.False(t, o.IsEnum() && o.IsClass(), o.Name)
		require.Equal(t, want[o.Name], o.Kind, o.Name)
	}
}

func TestLookupIsIdempotent(t *testing.T) {
	m, _ := parse(t,
		"A,,Class",
		"B,,Enum",
		",One",
		"C,,Class,A",
	)
	for i := range m.Objects {
		got, ok := m.Find(m.Objects[i].Name)
		require.True(t, ok)
		require.Same(t, &m.Objects[i], got)
	}
	_, ok := m.Find("DoesNotExist")
	require.False(t, ok)

	Resolve(m)
	a, _ := m.Find("A")
	require.Equal(t, []string{"C"}, a.Children)
}

func TestChildrenAreRebuilt(t *testing.T) {
	m, _ := parse(t,
		"C,,Class,A",
		"A,,Class",
		"B,,Class,A",
	)
	a, _ := m.Find("A")
	require.Equal(t, []string{"C", "B"}, a.Children)
}

func TestValidateReportsAuthoringProblems(t *testing.T) {
	_, c := parse(t,
		"A,,Class",
		",x,u32",
		",x,u32",
		",y,Missing",
		",z",
		"B,,Class,Nope",
		",w,string,A",
		"A,,Class",
		"Q,,Widget",
	)

	var messages []string
	for _, d := range c.All() {
		messages = append(messages, d.Object+"."+d.Field+": "+d.Message)
	}
	joined := strings.Join(messages, "\n")
	require.Contains(t, joined, "A.x: member declared more than once")
	require.Contains(t, joined, `A.y: type "Missing" is not declared`)
	require.Contains(t, joined, "A.z: member has no type")
	require.Contains(t, joined, `B.: base type "Nope" is not declared`)
	require.Contains(t, joined, `B.w: inherited-from "A" is not in the base chain of "B"`)
	require.Contains(t, joined, "A.: object declared more than once")
	require.Contains(t, joined, `Q.: kind "Widget" is neither Class nor Enum`)
	require.Zero(t, c.Count(diag.Error))
}

func TestLaterDeclarationWinsLookup(t *testing.T) {
	m, _ := parse(t,
		"A,,Class",
		",first,u8",
		"A,,Enum",
		",One",
	)
	a, ok := m.Find("A")
	require.True(t, ok)
	require.True(t, a.IsEnum())
}
