package golang

import (
	"math"

	"github.com/dave/jennifer/jen"
	"github.com/jinzhu/inflection"

	"github.com/cmmoran/createdom/internal/diag"
	"github.com/cmmoran/createdom/internal/emit"
	"github.com/cmmoran/createdom/internal/model"
)

// generation is the state of one Emit call.
type generation struct {
	v model.View
	r diag.Reporter
	// slices maps a class name to the named slice type declared for it.
	slices   map[string]string
	needsPtr bool
}

func newGeneration(v model.View, r diag.Reporter) *generation {
	g := &generation{v: v, r: r, slices: make(map[string]string)}
	taken := make(map[string]bool)
	for _, o := range v.Types() {
		taken[o.Name] = true
	}
	for _, o := range v.Types() {
		if !o.IsClass() || o.Alias != "" {
			continue
		}
		for _, f := range o.LocalFields() {
			if !f.IsArray || f.IsPointer || !g.isStruct(f.Type) {
				continue
			}
			if _, ok := g.slices[f.Type]; ok {
				continue
			}
			plural := inflection.Plural(f.Type)
			if plural == f.Type || taken[plural] {
				continue
			}
			taken[plural] = true
			g.slices[f.Type] = plural
		}
	}
	return g
}

// isStruct reports whether name is a class rendered as a Go struct.
func (g *generation) isStruct(name string) bool {
	o, ok := g.v.Find(name)
	return ok && o.IsClass() && o.Alias == ""
}

func (g *generation) decls() []Decl {
	var out []Decl
	for _, o := range g.v.Types() {
		switch {
		case o.IsAlias():
			out = append(out, &aliasDecl{g: g, o: o})
		case o.Alias != "":
		case o.IsEnum():
			out = append(out, &enumDecl{g: g, o: o})
		case o.IsClass():
			out = append(out, &structDecl{g: g, o: o})
			if plural, ok := g.slices[o.Name]; ok {
				out = append(out, &sliceDecl{name: plural, elem: o.Name})
			}
		}
	}
	return out
}

func docComment(f *jen.File, o *model.Object) {
	if o.ShortDescription != "" {
		f.Comment(o.ShortDescription)
	}
	if o.LongDescription != "" {
		if o.ShortDescription != "" {
			f.Comment("")
		}
		f.Comment(o.LongDescription)
	}
}

type aliasDecl struct {
	g *generation
	o *model.Object
}

func (d *aliasDecl) Gen(f *jen.File) error {
	f.Line()
	docComment(f, d.o)
	target := jen.Id(d.o.Alias)
	if st := model.LookupStandardType(d.o.Alias); st != model.TypeNone {
		target = jen.Id(builtinTypes[st])
	} else if _, ok := d.g.v.Find(d.o.Alias); !ok {
		d.g.r.Warnf(d.o.Name, "", "alias target %q is not declared; it is emitted as written", d.o.Alias)
	}
	f.Type().Id(d.o.Name).Op("=").Add(target)
	return nil
}

type sliceDecl struct {
	name, elem string
}

func (d *sliceDecl) Gen(f *jen.File) error {
	f.Line()
	f.Commentf("%s is a list of %s.", d.name, d.elem)
	f.Type().Id(d.name).Index().Id(d.elem)
	return nil
}

type enumDecl struct {
	g *generation
	o *model.Object
}

func (d *enumDecl) Gen(f *jen.File) error {
	o := d.o
	f.Line()
	docComment(f, o)
	f.Type().Id(o.Name).Uint32()

	values := emit.EnumValues(o, d.g.r)
	names := jen.Dict{}
	seen := make(map[int64]string)
	var defs []jen.Code
	for i := range o.Fields {
		e := &o.Fields[i]
		if values[i] < 0 || values[i] > math.MaxUint32 {
			d.g.r.Warnf(o.Name, e.Name, "value %d does not fit in uint32; enumerator skipped", values[i])
			continue
		}
		c := enumConst(o.Name, e.Name)
		def := jen.Id(c).Id(o.Name).Op("=").Lit(int(values[i]))
		if e.ShortDescription != "" {
			def.Comment(e.ShortDescription)
		}
		defs = append(defs, def)
		if prev, dup := seen[values[i]]; dup {
			d.g.r.Warnf(o.Name, e.Name, "shares value %d with %s; it has no name of its own", values[i], prev)
			continue
		}
		seen[values[i]] = e.Name
		names[jen.Id(c)] = jen.Lit(e.WireName())
	}
	if len(defs) > 0 {
		f.Line()
		f.Const().Defs(defs...)
	}

	table := emit.LowerFirst(o.Name) + "Names"
	f.Line()
	f.Var().Id(table).Op("=").Map(jen.Id(o.Name)).String().Values(names)

	f.Line()
	f.Func().Params(jen.Id("x").Id(o.Name)).Id("String").Params().String().Block(
		jen.If(jen.List(jen.Id("s"), jen.Id("ok")).Op(":=").Id(table).Index(jen.Id("x")), jen.Id("ok")).Block(
			jen.Return(jen.Id("s")),
		),
		jen.Return(jen.Lit(o.Name+"(").Op("+").Qual("strconv", "FormatUint").Call(jen.Uint64().Call(jen.Id("x")), jen.Lit(10)).Op("+").Lit(")")),
	)

	f.Line()
	f.Comment("MarshalText encodes the enumerator name.")
	f.Func().Params(jen.Id("x").Id(o.Name)).Id("MarshalText").Params().Params(jen.Index().Byte(), jen.Error()).Block(
		jen.List(jen.Id("s"), jen.Id("ok")).Op(":=").Id(table).Index(jen.Id("x")),
		jen.If(jen.Op("!").Id("ok")).Block(
			jen.Return(jen.Nil(), jen.Qual("fmt", "Errorf").Call(jen.Lit("invalid "+o.Name+" %d"), jen.Uint32().Call(jen.Id("x")))),
		),
		jen.Return(jen.Index().Byte().Call(jen.Id("s")), jen.Nil()),
	)

	f.Line()
	f.Comment("UnmarshalText decodes an enumerator name.")
	f.Func().Params(jen.Id("x").Op("*").Id(o.Name)).Id("UnmarshalText").Params(jen.Id("text").Index().Byte()).Error().Block(
		jen.For(jen.List(jen.Id("v"), jen.Id("s")).Op(":=").Range().Id(table)).Block(
			jen.If(jen.Id("s").Op("==").String().Call(jen.Id("text"))).Block(
				jen.Op("*").Id("x").Op("=").Id("v"),
				jen.Return(jen.Nil()),
			),
		),
		jen.Return(jen.Qual("fmt", "Errorf").Call(jen.Lit("unknown "+o.Name+" %q"), jen.Id("text"))),
	)
	return nil
}

type structDecl struct {
	g *generation
	o *model.Object
}

func (d *structDecl) Gen(f *jen.File) error {
	o, g := d.o, d.g
	embedded := o.Base != "" && g.isStruct(o.Base)
	if o.Base != "" && !embedded {
		g.r.Warnf(o.Name, "", "base type %q is not a declared class; it is not embedded", o.Base)
	}

	f.Line()
	docComment(f, o)
	f.Type().Id(o.Name).StructFunc(func(grp *jen.Group) {
		if embedded {
			grp.Id(o.Base)
		}
		for _, fd := range o.LocalFields() {
			if g.elemType(fd) == nil {
				g.r.Warnf(o.Name, fd.Name, "type %q is not declared; emitted as any", fd.Type)
			}
			tag := fd.WireName()
			if fd.Optional != model.Required {
				tag += ",omitempty"
			}
			stat := grp.Id(exported(fd.Name)).Add(g.fieldType(fd)).Tag(map[string]string{"json": tag})
			if fd.ShortDescription != "" {
				stat.Comment(fd.ShortDescription)
			}
		}
	})

	f.Line()
	f.Commentf("New%s returns a %s with its defaults applied.", o.Name, o.Name)
	f.Func().Id("New"+o.Name).Params().Op("*").Id(o.Name).Block(
		jen.Id("x").Op(":=").Op("&").Id(o.Name).Values(),
		jen.Id("x").Dot("SetDefaults").Call(),
		jen.Return(jen.Id("x")),
	)

	f.Line()
	f.Comment("SetDefaults assigns the schema defaults, including those of embedded bases and nested members.")
	f.Func().Params(jen.Id("x").Op("*").Id(o.Name)).Id("SetDefaults").Params().BlockFunc(func(grp *jen.Group) {
		if embedded {
			grp.Id("x").Dot(o.Base).Dot("SetDefaults").Call()
		}
		for i := range o.Fields {
			fd := &o.Fields[i]
			if fd.IsInherited() {
				if fd.Default != "" {
					d.inheritedDefault(grp, fd)
				}
				continue
			}
			d.assignDefault(grp, fd, fd)
		}
	})
	return nil
}

// assignDefault writes the default of fd. decl is the field as declared,
// which differs from fd for inherited members.
func (d *structDecl) assignDefault(grp *jen.Group, fd, decl *model.Field) {
	g := d.g
	name := exported(fd.Name)
	if fd.Default == "" {
		if decl.Optional == model.Required && !decl.IsArray && !decl.IsMap && !decl.IsPointer && g.isStruct(decl.Type) {
			grp.Id("x").Dot(name).Dot("SetDefaults").Call()
		}
		return
	}
	val := g.defaultValue(d.o, fd)
	if val == nil {
		return
	}
	if decl.Optional != model.Required {
		g.needsPtr = true
		val = jen.Id("ptr").Types(g.elemType(decl)).Call(val)
	}
	grp.Id("x").Dot(name).Op("=").Add(val)
}

func (d *structDecl) inheritedDefault(grp *jen.Group, fd *model.Field) {
	decl := d.declaredIn(fd)
	if decl == nil {
		d.g.r.Warnf(d.o.Name, fd.Name, "inherited member is not declared by %s; default ignored", fd.InheritsFrom)
		return
	}
	d.assignDefault(grp, fd, decl)
}

// declaredIn finds the local declaration of an inherited member among the
// ancestors of the object.
func (d *structDecl) declaredIn(fd *model.Field) *model.Field {
	seen := map[string]bool{d.o.Name: true}
	for name := d.o.Base; name != "" && !seen[name]; {
		seen[name] = true
		base, ok := d.g.v.Find(name)
		if !ok {
			return nil
		}
		if bf, ok := base.Field(fd.Name); ok && !bf.IsInherited() {
			return bf
		}
		name = base.Base
	}
	return nil
}

func ptrHelper(f *jen.File) {
	f.Line()
	f.Func().Id("ptr").Types(jen.Id("T").Any()).Params(jen.Id("v").Id("T")).Op("*").Id("T").Block(
		jen.Return(jen.Op("&").Id("v")),
	)
}
