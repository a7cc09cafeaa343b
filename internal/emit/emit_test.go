package emit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/createdom/internal/diag"
	"github.com/cmmoran/createdom/internal/model"
)

func TestPrinter(t *testing.T) {
	p := NewPrinter("  ")
	p.Blank()
	p.Line(0, "a {")
	p.Line(1, "b = %d;", 1)
	p.Line(1, "%s", "100%")
	p.Blank()
	p.Blank()
	p.Commented(1, "//", "note", "c;")
	p.Commented(1, "//", "", "d;")
	p.Line(0, "")
	p.Line(0, "}")

	require.Equal(t, "a {\n  b = 1;\n  100%\n\n  c; // note\n  d;\n\n}\n", p.String())
	require.Equal(t, p.String(), string(p.Bytes()))
}

func TestCase(t *testing.T) {
	require.Equal(t, "node", LowerFirst("Node"))
	require.Equal(t, "Node", UpperFirst("node"))
	require.Empty(t, LowerFirst(""))
	require.Empty(t, UpperFirst(""))
}

func TestEnumValues(t *testing.T) {
	c := diag.NewCollector(nil)
	r := diag.Reporter{Sink: c, Source: "test"}
	o := &model.Object{Name: "E", Kind: model.KindEnum, Fields: []model.Field{
		{Name: "A"},
		{Name: "B"},
		{Name: "C", Default: "10"},
		{Name: "D"},
		{Name: "F", Default: "0x20"},
		{Name: "G", Default: "oops"},
	}}

	require.Equal(t, []int64{0, 1, 10, 11, 32, 33}, EnumValues(o, r))
	require.Equal(t, 1, c.Count(diag.Warning))
}

type fakeView struct {
	model.View
	info model.Info
}

func (v fakeView) Meta() model.Info { return v.info }

func TestCheckMeta(t *testing.T) {
	c := diag.NewCollector(nil)
	r := diag.Reporter{Sink: c, Source: "test"}

	require.True(t, CheckMeta(fakeView{info: model.Info{Namespace: "ns", Filename: "f"}}, r))
	require.Zero(t, c.Count(diag.Info))

	require.False(t, CheckMeta(fakeView{}, r))
	require.Equal(t, 2, c.Count(diag.Error))
}
