// Package protobuf emits a proto3 schema. Inheritance is expressed the way
// protobuf JSON expects it: each message carries a oneof over its children.
package protobuf

import (
	"github.com/cmmoran/createdom/internal/diag"
	"github.com/cmmoran/createdom/internal/emit"
	"github.com/cmmoran/createdom/internal/model"
)

const Target = "protobuf"

var scalarTypes = map[model.StandardType]string{
	model.TypeU64:    "uint64",
	model.TypeU32:    "uint32",
	model.TypeU16:    "uint32",
	model.TypeU8:     "uint32",
	model.TypeI64:    "int64",
	model.TypeI32:    "int32",
	model.TypeI16:    "int32",
	model.TypeI8:     "int32",
	model.TypeFloat:  "float",
	model.TypeDouble: "double",
	model.TypeBool:   "bool",
	model.TypeString: "string",
}

// Generator implements emit.Emitter for protobuf.
type Generator struct{}

func New() *Generator { return &Generator{} }

func (g *Generator) Name() string { return Target }

type generation struct {
	v           model.View
	r           diag.Reporter
	enumerators map[string]string
	// messages and enums written to the file
	declared map[string]bool
}

// Emit renders <Filename>.proto.
func (g *Generator) Emit(v model.View, sink diag.Sink) ([]emit.File, error) {
	r := diag.Reporter{Sink: sink, Source: Target}
	if !emit.CheckMeta(v, r) {
		return nil, emit.ErrMissingMeta
	}
	gen := &generation{v: v, r: r, enumerators: make(map[string]string), declared: make(map[string]bool)}
	for _, o := range v.Types() {
		gen.declared[o.Name] = true
	}

	p := emit.NewPrinter("    ")
	p.Line(0, "// Generated by createdom. Do not edit this file manually.")
	if url := v.Meta().URL; url != "" {
		p.Line(0, "// Schema source: %s", url)
	}
	p.Blank()
	p.Line(0, `syntax = "proto3";`)
	p.Blank()
	p.Line(0, "package %s;", v.Meta().Namespace)

	for _, o := range v.Types() {
		switch {
		case o.IsAlias():
			r.Infof(o.Name, "", "protobuf has no type aliases; uses of %s are written as %s", o.Name, o.Alias)
		case o.Alias != "":
		case o.IsEnum():
			gen.enumDecl(p, o)
		case o.IsClass():
			gen.message(p, o)
		}
	}

	return []emit.File{{
		Name:    v.Meta().Filename + ".proto",
		Target:  Target,
		Content: p.Bytes(),
	}}, nil
}

func (g *generation) descriptions(p *emit.Printer, o *model.Object) {
	if o.ShortDescription != "" {
		p.Line(0, "// %s", o.ShortDescription)
	}
	if o.LongDescription != "" {
		p.Line(0, "// %s", o.LongDescription)
	}
}

func (g *generation) enumDecl(p *emit.Printer, o *model.Object) {
	p.Blank()
	g.descriptions(p, o)
	values := emit.EnumValues(o, g.r)
	if len(values) > 0 && values[0] != 0 {
		g.r.Warnf(o.Name, o.Fields[0].Name, "the first value of a proto3 enum must be zero, not %d", values[0])
	}
	p.Line(0, "enum %s", o.Name)
	p.Line(0, "{")
	for i := range o.Fields {
		e := &o.Fields[i]
		// enumerators share the package scope
		if owner, dup := g.enumerators[e.Name]; dup {
			g.r.Warnf(o.Name, e.Name, "enumerator also declared by %s; protoc rejects duplicate enumerator names", owner)
		} else {
			g.enumerators[e.Name] = o.Name
		}
		p.Commented(1, "//", e.ShortDescription, "%s = %d;", e.Name, values[i])
	}
	p.Line(0, "}")
}

func (g *generation) message(p *emit.Printer, o *model.Object) {
	p.Blank()
	g.descriptions(p, o)
	p.Line(0, "message %s", o.Name)
	p.Line(0, "{")

	id := 1
	for i := range o.Fields {
		f := &o.Fields[i]
		if f.IsInherited() && f.Default != "" {
			continue
		}
		if g.field(p, o, f, id) {
			id++
		}
	}

	var children []string
	for _, c := range o.Children {
		if !g.declared[c] {
			g.r.Infof(o.Name, "", "subtype %s is not generated; it is left out of the oneof", c)
			continue
		}
		children = append(children, c)
	}
	if len(children) > 0 {
		p.Line(1, "oneof subtype")
		p.Line(1, "{")
		for _, c := range children {
			p.Line(2, "%s %s = %d;", c, emit.LowerFirst(c), id)
			id++
		}
		p.Line(1, "}")
	}
	p.Line(0, "}")
}

// field writes one message field and reports whether it used the id.
func (g *generation) field(p *emit.Printer, o *model.Object, f *model.Field, id int) bool {
	// an override is written verbatim
	t := f.ProtoType
	if t == "" {
		var ok bool
		if t, ok = g.typeName(o, f, f.Type); !ok {
			return false
		}
	}

	if f.IsMap {
		if f.IsArray {
			g.r.Warnf(o.Name, f.Name, "protobuf map values cannot be repeated; field skipped")
			return false
		}
		return g.mapField(p, o, f, t, id)
	}

	var label string
	switch {
	case f.IsArray:
		label = "repeated "
	case f.Optional != model.Required && !g.v.IsClass(f.Type):
		label = "optional "
	}
	p.Commented(1, "//", f.ShortDescription, "%s%s %s = %d;", label, t, f.Name, id)
	return true
}

func (g *generation) mapField(p *emit.Printer, o *model.Object, f *model.Field, value string, id int) bool {
	key := "string"
	if f.MapKeyType != "" {
		st := model.LookupStandardType(f.MapKeyType)
		switch {
		case st == model.TypeString, st.IsInteger(), st == model.TypeBool:
			key = scalarTypes[st]
		default:
			g.r.Warnf(o.Name, f.Name, "map key type %q is not allowed by protobuf; using string", f.MapKeyType)
		}
	}
	p.Commented(1, "//", f.ShortDescription, "map<%s, %s> %s = %d;", key, value, f.Name, id)
	return true
}

// typeName resolves a schema type to its protobuf spelling, following
// aliases to their target. It reports false when the field must be skipped
// because its type is not generated.
func (g *generation) typeName(o *model.Object, f *model.Field, name string) (string, bool) {
	seen := map[string]bool{}
	for !seen[name] {
		seen[name] = true
		if st := model.LookupStandardType(name); st != model.TypeNone {
			return scalarTypes[st], true
		}
		target, ok := g.v.Find(name)
		if !ok {
			g.r.Warnf(o.Name, f.Name, "type %q is not declared; it is emitted as written", name)
			return name, true
		}
		if target.IsEnum() && f.SerializeEnumAsInteger {
			return "uint32", true
		}
		if !target.IsAlias() {
			if !g.declared[name] {
				g.r.Warnf(o.Name, f.Name, "type %q is not generated; field skipped", name)
				return "", false
			}
			return name, true
		}
		name = target.Alias
	}
	return name, true
}
