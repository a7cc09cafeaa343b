// Package emittest builds resolved views from inline schema text for emitter
// tests.
package emittest

import (
	"testing"

	"github.com/cmmoran/createdom/internal/diag"
	"github.com/cmmoran/createdom/internal/emit"
	"github.com/cmmoran/createdom/internal/model"
	"github.com/cmmoran/createdom/internal/parser"
)

// Scene exercises enums with sparse values, inheritance with an inherited
// default, cloning, optional, pointer, array and map members, a forward
// reference and a named slice.
const Scene = `Namespace,myns
Filename,scene
Color,,Enum,,,,,,,"colours"
,Red
,Green
,Blue,,,,5,,,,"the sky"
Base,,Class
,id,u32,,,7
Node,,Class,Base,,CLONE,,,,"scene node"
,id,u32,Base,,9
,name,string,,,root
,color,Color
,?tint,Color
,children[,Node*
,[tags:string],string
,position,Vec3
Vec3,,Class
,x,float,,,1.5
,?w,float,,,2
Scene,,Class
,nodes[,Node
EOF
`

// View parses schema and wraps the result in an unfiltered view.
func View(tb testing.TB, schema string) (model.View, *diag.Collector) {
	tb.Helper()
	return Select(tb, schema, model.Selector{})
}

// Select parses schema and wraps the result in a view filtered by sel.
func Select(tb testing.TB, schema string, sel model.Selector) (model.View, *diag.Collector) {
	tb.Helper()
	c := diag.NewCollector(nil)
	m := parser.Parse([]byte(schema), c)
	return model.NewView(m, sel), c
}

// Contents maps file names to their rendered text.
func Contents(files []emit.File) map[string]string {
	out := make(map[string]string, len(files))
	for _, f := range files {
		out[f.Name] = string(f.Content)
	}
	return out
}
