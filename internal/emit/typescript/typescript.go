// Package typescript emits TypeScript type declarations.
package typescript

import (
	"strings"

	"github.com/cmmoran/createdom/internal/diag"
	"github.com/cmmoran/createdom/internal/emit"
	"github.com/cmmoran/createdom/internal/model"
)

const Target = "typescript"

// TypeMapping defines how primitive schema types map to TypeScript types.
var TypeMapping = map[model.StandardType]string{
	model.TypeU64:    "number",
	model.TypeU32:    "number",
	model.TypeU16:    "number",
	model.TypeU8:     "number",
	model.TypeI64:    "number",
	model.TypeI32:    "number",
	model.TypeI16:    "number",
	model.TypeI8:     "number",
	model.TypeFloat:  "number",
	model.TypeDouble: "number",
	model.TypeBool:   "boolean",
	model.TypeString: "string",
}

// Generator implements emit.Emitter for TypeScript.
type Generator struct{}

func New() *Generator { return &Generator{} }

func (g *Generator) Name() string { return Target }

// Emit renders <Filename>.ts.
func (g *Generator) Emit(v model.View, sink diag.Sink) ([]emit.File, error) {
	r := diag.Reporter{Sink: sink, Source: Target}
	if !emit.CheckMeta(v, r) {
		return nil, emit.ErrMissingMeta
	}

	p := emit.NewPrinter("    ")
	p.Line(0, "// Generated by createdom. Do not edit this file manually.")
	if url := v.Meta().URL; url != "" {
		p.Line(0, "// Schema source: %s", url)
	}

	for _, o := range v.Types() {
		switch {
		case o.IsAlias():
			p.Blank()
			p.Line(0, "export type %s = %s;", o.Name, tsType(v, o.Alias))
		case o.Alias != "":
		case o.IsEnum():
			enumDecl(p, o, r)
		case o.IsClass():
			typeDecl(p, v, o, r)
		}
	}

	return []emit.File{{
		Name:    v.Meta().Filename + ".ts",
		Target:  Target,
		Content: p.Bytes(),
	}}, nil
}

func docComment(p *emit.Printer, o *model.Object) {
	if o.ShortDescription == "" && o.LongDescription == "" {
		return
	}
	p.Line(0, "/**")
	if o.ShortDescription != "" {
		p.Line(0, " * %s", o.ShortDescription)
	}
	if o.LongDescription != "" {
		if o.ShortDescription != "" {
			p.Line(0, " *")
		}
		p.Line(0, " * %s", o.LongDescription)
	}
	p.Line(0, " */")
}

func enumDecl(p *emit.Printer, o *model.Object, r diag.Reporter) {
	p.Blank()
	docComment(p, o)
	p.Line(0, "export enum %s {", o.Name)
	values := emit.EnumValues(o, r)
	for i := range o.Fields {
		e := &o.Fields[i]
		p.Commented(1, "//", e.ShortDescription, "%s = %d,", e.Name, values[i])
	}
	p.Line(0, "}")
}

func typeDecl(p *emit.Printer, v model.View, o *model.Object, r diag.Reporter) {
	p.Blank()
	docComment(p, o)
	_, declared := v.Find(o.Base)
	switch {
	case o.Base != "" && declared:
		p.Line(0, "export type %s = %s & {", o.Name, o.Base)
	case o.Base != "":
		r.Warnf(o.Name, "", "base type %q is not declared; the type is emitted without it", o.Base)
		fallthrough
	default:
		p.Line(0, "export type %s = {", o.Name)
	}
	for _, f := range o.LocalFields() {
		if f.Type != "" && !model.IsStandardType(f.Type) {
			if _, ok := v.Find(f.Type); !ok {
				r.Warnf(o.Name, f.Name, "type %q is not declared; emitted as unknown", f.Type)
			}
		}
		t := tsType(v, f.Type)
		if f.IsArray {
			t += "[]"
		}
		if f.IsPointer && !f.IsArray {
			t += " | null"
		}
		if f.IsMap {
			p.Commented(1, "//", f.ShortDescription, "[%s: %s]: %s;", f.Name, keyType(v, f.MapKeyType), t)
			continue
		}
		opt := ""
		if f.Optional != model.Required {
			opt = "?"
		}
		p.Commented(1, "//", f.ShortDescription, "%s%s: %s;", propertyName(f.WireName()), opt, t)
	}
	p.Line(0, "};")
}

// tsType maps a schema type name. Declared objects keep their name, unknown
// names become unknown.
func tsType(v model.View, name string) string {
	if st := model.LookupStandardType(name); st != model.TypeNone {
		return TypeMapping[st]
	}
	if _, ok := v.Find(name); ok {
		return name
	}
	return "unknown"
}

func keyType(v model.View, name string) string {
	if st := model.LookupStandardType(name); st.IsInteger() {
		return "number"
	}
	return "string"
}

// propertyName quotes names that are not plain identifiers.
func propertyName(name string) string {
	if name == "" {
		return `""`
	}
	for i, c := range name {
		ok := c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (i > 0 && c >= '0' && c <= '9')
		if !ok {
			return `"` + strings.ReplaceAll(name, `"`, `\"`) + `"`
		}
	}
	return name
}
