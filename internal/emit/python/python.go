// Package python emits plain Python classes with an as_data method producing
// JSON-ready dictionaries.
package python

import (
	"math"
	"strconv"
	"strings"

	"github.com/cmmoran/createdom/internal/diag"
	"github.com/cmmoran/createdom/internal/emit"
	"github.com/cmmoran/createdom/internal/model"
)

const Target = "python"

// Generator implements emit.Emitter for Python.
type Generator struct{}

func New() *Generator { return &Generator{} }

func (g *Generator) Name() string { return Target }

type generation struct {
	v model.View
	r diag.Reporter
}

// Emit renders <Filename>.py.
func (g *Generator) Emit(v model.View, sink diag.Sink) ([]emit.File, error) {
	r := diag.Reporter{Sink: sink, Source: Target}
	if !emit.CheckMeta(v, r) {
		return nil, emit.ErrMissingMeta
	}
	gen := &generation{v: v, r: r}

	p := emit.NewPrinter("    ")
	p.Line(0, "# Generated by createdom. Do not edit this file manually.")
	if url := v.Meta().URL; url != "" {
		p.Line(0, "# Schema source: %s", url)
	}
	for _, o := range v.Types() {
		switch {
		case o.IsAlias():
			p.Blank()
			p.Line(0, "%s = %s", o.Name, o.Alias)
		case o.Alias != "":
		case o.IsEnum():
			gen.enumDecl(p, o)
		case o.IsClass():
			gen.classDecl(p, o)
		}
	}

	return []emit.File{{
		Name:    v.Meta().Filename + ".py",
		Target:  Target,
		Content: p.Bytes(),
	}}, nil
}

// enumDecl writes enumerators as module constants plus a <Name>_strings
// table indexed by value. Sparse values get a dict instead of a list.
func (g *generation) enumDecl(p *emit.Printer, o *model.Object) {
	p.Blank()
	if o.ShortDescription != "" {
		p.Line(0, "# %s", o.ShortDescription)
	}
	if o.LongDescription != "" {
		p.Line(0, "# %s", o.LongDescription)
	}
	values := emit.EnumValues(o, g.r)
	dense := true
	for i := range o.Fields {
		e := &o.Fields[i]
		p.Commented(0, "#", e.ShortDescription, "%s = %d", e.Name, values[i])
		if values[i] != int64(i) {
			dense = false
		}
	}
	p.Blank()
	if dense {
		p.Line(0, "%s_strings = [", o.Name)
		for i := range o.Fields {
			p.Line(1, "%s,", quote(o.Fields[i].WireName()))
		}
		p.Line(0, "]")
		return
	}
	p.Line(0, "%s_strings = {", o.Name)
	for i := range o.Fields {
		p.Line(1, "%d: %s,", values[i], quote(o.Fields[i].WireName()))
	}
	p.Line(0, "}")
}

func (g *generation) classDecl(p *emit.Printer, o *model.Object) {
	p.Blank()
	p.Blank()
	base := g.base(o)
	if base == "" && o.Base != "" {
		g.r.Errorf(o.Name, "", "invalid base type name %q; the class is emitted without it", o.Base)
	}
	if base != "" {
		p.Line(0, "class %s(%s):", o.Name, base)
	} else {
		p.Line(0, "class %s:", o.Name)
	}
	g.docstring(p, o)

	var inherited, local []*model.Field
	for i := range o.Fields {
		f := &o.Fields[i]
		switch {
		case !f.IsInherited():
			local = append(local, f)
		case base == "":
			// no super().__init__ to forward to
		case f.Default != "":
			inherited = append(inherited, f)
		}
	}

	args := make([]string, 0, len(inherited)+len(local))
	supers := make([]string, 0, len(inherited))
	for _, f := range inherited {
		args = append(args, f.Name+"="+g.argDefault(o, f))
		supers = append(supers, f.Name+"="+f.Name)
	}
	for _, f := range local {
		args = append(args, f.Name+"="+g.argDefault(o, f))
	}

	if len(args) == 0 {
		p.Line(1, "def __init__(self):")
		if base != "" {
			p.Line(2, "super().__init__()")
		} else {
			p.Line(2, "pass")
		}
	} else {
		p.Line(1, "def __init__(self, %s):", strings.Join(args, ", "))
		if len(supers) > 0 {
			p.Line(2, "super().__init__(%s)", strings.Join(supers, ", "))
		} else if base != "" {
			p.Line(2, "super().__init__()")
		}
		for _, f := range local {
			if fresh := g.freshValue(f); fresh != "" {
				p.Line(2, "self.%s = %s if %s is None else %s", f.Name, fresh, f.Name, f.Name)
			} else {
				p.Line(2, "self.%s = %s", f.Name, f.Name)
			}
		}
	}

	p.Blank()
	g.asData(p, o, local)
}

func (g *generation) docstring(p *emit.Printer, o *model.Object) {
	switch {
	case o.ShortDescription != "" && o.LongDescription != "":
		p.Line(1, `"""%s`, o.ShortDescription)
		p.Line(0, "")
		p.Line(1, "%s", o.LongDescription)
		p.Line(1, `"""`)
	case o.ShortDescription != "":
		p.Line(1, `"""%s"""`, o.ShortDescription)
	case o.LongDescription != "":
		p.Line(1, `"""%s"""`, o.LongDescription)
	default:
		return
	}
	p.Blank()
}

// asData writes the method producing a dict of the local members. A derived
// class nests its own dict under its lower-cased name inside the innermost
// slice produced by its ancestors.
func (g *generation) asData(p *emit.Printer, o *model.Object, local []*model.Field) {
	p.Line(1, "def as_data(self):")
	p.Line(2, "data = {}")
	for _, f := range local {
		expr, ok := g.dataValue(o, f)
		if !ok {
			continue
		}
		if f.Optional != model.Required {
			p.Line(2, "if self.%s is not None:", f.Name)
			p.Line(3, "data[%s] = %s", quote(f.WireName()), expr)
			continue
		}
		p.Line(2, "data[%s] = %s", quote(f.WireName()), expr)
	}

	if g.base(o) == "" {
		p.Line(2, "return data")
		return
	}

	chain, ok := g.ancestors(o)
	if !ok {
		p.Line(2, "return data")
		return
	}
	root := emit.LowerFirst(chain[0])
	p.Line(2, "%s_data = super().as_data()", root)
	prev := root
	for _, name := range chain[1:] {
		next := emit.LowerFirst(name)
		p.Line(2, "%s_data = %s_data[%s]", next, prev, quote(next))
		prev = next
	}
	p.Line(2, "%s_data[%s] = data", prev, quote(emit.LowerFirst(o.Name)))
	p.Line(2, "return %s_data", root)
}

// base returns the base class of o, or "" when it has none or it is not declared.
func (g *generation) base(o *model.Object) string {
	if _, ok := g.v.Find(o.Base); o.Base == "" || !ok {
		return ""
	}
	return o.Base
}

// ancestors lists the base chain of o from the root down to its direct base.
func (g *generation) ancestors(o *model.Object) ([]string, bool) {
	var chain []string
	seen := map[string]bool{o.Name: true}
	for name := o.Base; name != ""; {
		if seen[name] {
			g.r.Errorf(o.Name, "", "inheritance cycle through %q", name)
			return nil, false
		}
		seen[name] = true
		base, ok := g.v.Find(name)
		if !ok {
			g.r.Errorf(o.Name, "", "invalid base type name %q; as_data returns only local members", name)
			return nil, false
		}
		chain = append([]string{name}, chain...)
		name = base.Base
	}
	return chain, true
}

func (g *generation) dataValue(o *model.Object, f *model.Field) (string, bool) {
	self := "self." + f.Name
	switch {
	case f.IsMap:
		switch {
		case g.v.IsClass(f.Type) && f.IsArray:
			return "{k: [e.as_data() for e in v] for k, v in " + self + ".items()}", true
		case g.v.IsClass(f.Type):
			return "{k: v.as_data() for k, v in " + self + ".items()}", true
		case g.v.IsEnum(f.Type) && !f.SerializeEnumAsInteger && f.IsArray:
			return "{k: [" + f.Type + "_strings[e] for e in v] for k, v in " + self + ".items()}", true
		case g.v.IsEnum(f.Type) && !f.SerializeEnumAsInteger:
			return "{k: " + f.Type + "_strings[v] for k, v in " + self + ".items()}", true
		}
		return "dict(" + self + ")", true
	case g.v.IsClass(f.Type) && f.IsArray:
		return "[e.as_data() for e in " + self + "]", true
	case g.v.IsClass(f.Type):
		return self + ".as_data()", true
	case g.v.IsEnum(f.Type) && f.SerializeEnumAsInteger && f.IsArray:
		return "[e for e in " + self + "]", true
	case g.v.IsEnum(f.Type) && f.SerializeEnumAsInteger:
		return self, true
	case g.v.IsEnum(f.Type) && f.IsArray:
		return "[" + f.Type + "_strings[e] for e in " + self + "]", true
	case g.v.IsEnum(f.Type):
		return f.Type + "_strings[" + self + "]", true
	case model.IsStandardType(f.Type) && f.IsArray:
		return "[e for e in " + self + "]", true
	case model.IsStandardType(f.Type):
		return self, true
	}
	g.r.Warnf(o.Name, f.Name, "don't know how to express type %q as data; member skipped", f.Type)
	return "", false
}

// freshValue is the per-instance value of members whose argument defaults to
// None to avoid sharing a mutable default.
func (g *generation) freshValue(f *model.Field) string {
	switch {
	case f.IsMap:
		return "{}"
	case f.IsArray:
		return "[]"
	case g.v.IsClass(f.Type) && f.Optional == model.Required:
		return f.Type + "()"
	}
	return ""
}

// argDefault renders the keyword default of an __init__ argument.
func (g *generation) argDefault(o *model.Object, f *model.Field) string {
	if f.IsArray || f.IsMap {
		if f.Default != "" {
			g.r.Warnf(o.Name, f.Name, "default values of arrays and maps are not supported; ignoring %q", f.Default)
		}
		return "None"
	}
	if f.Optional != model.Required && f.Default == "" {
		return "None"
	}

	def := strings.TrimSpace(f.Default)
	switch st := f.StandardType(); {
	case st == model.TypeString:
		return quote(f.Default)
	case st.IsInteger() && st.IsSigned():
		if def == "" {
			return "0"
		}
		n, err := strconv.ParseInt(def, 0, 64)
		if err != nil {
			g.r.Warnf(o.Name, f.Name, "default %q is not an integer; using 0", f.Default)
			return "0"
		}
		return strconv.FormatInt(n, 10)
	case st.IsInteger():
		if def == "" {
			return "0"
		}
		n, err := strconv.ParseUint(def, 0, 64)
		if err != nil {
			g.r.Warnf(o.Name, f.Name, "default %q is not an unsigned integer; using 0", f.Default)
			return "0"
		}
		return strconv.FormatUint(n, 10)
	case st == model.TypeFloat || st == model.TypeDouble:
		return g.floatLiteral(o, f, def)
	case st == model.TypeBool:
		if strings.EqualFold(def, "true") {
			return "True"
		}
		return "False"
	}

	target, ok := g.v.Find(f.Type)
	switch {
	case !ok:
		g.r.Warnf(o.Name, f.Name, "invalid member variable type %q; defaulting to None", f.Type)
		return "None"
	case target.IsEnum():
		if def == "" {
			return "0"
		}
		if _, ok := target.Field(def); ok {
			return def
		}
		if _, err := strconv.ParseInt(def, 0, 64); err == nil {
			return def
		}
		g.r.Warnf(o.Name, f.Name, "default %q is not an enumerator of %s; using 0", f.Default, f.Type)
		return "0"
	case target.IsClass():
		if def != "" {
			g.r.Warnf(o.Name, f.Name, "default values of class members are not supported; ignoring %q", f.Default)
		}
		return "None"
	}
	return "None"
}

func (g *generation) floatLiteral(o *model.Object, f *model.Field, def string) string {
	var d float64
	switch def {
	case "":
	case "FLT_MAX":
		d = math.MaxFloat32
	case "FLT_MIN":
		d = math.SmallestNonzeroFloat32 * (1 << 23)
	default:
		var err error
		d, err = strconv.ParseFloat(strings.TrimSuffix(strings.TrimSuffix(def, "f"), "F"), 64)
		if err != nil {
			g.r.Warnf(o.Name, f.Name, "default %q is not a number; using 0.0", f.Default)
			d = 0
		}
	}
	s := strconv.FormatFloat(d, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s
}

// quote renders s as a single-quoted Python string literal.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`, "\t", `\t`)
	return "'" + r.Replace(s) + "'"
}
