package cpp

import (
	"strings"

	"github.com/cmmoran/createdom/internal/emit"
	"github.com/cmmoran/createdom/internal/model"
)

func (g *generation) descriptions(p *emit.Printer, level int, o *model.Object) {
	if o.ShortDescription != "" {
		p.Line(level, "// %s", o.ShortDescription)
	}
	if o.LongDescription != "" {
		p.Line(level, "// %s", o.LongDescription)
	}
}

func (g *generation) enumDecl(p *emit.Printer, o *model.Object) {
	p.Blank()
	g.descriptions(p, 0, o)
	p.Line(0, "enum class %s : uint32_t", o.Name)
	p.Line(0, "{")
	for i := range o.Fields {
		e := &o.Fields[i]
		if e.Default != "" {
			p.Commented(1, "//", e.ShortDescription, "%s = %s,", e.Name, e.Default)
		} else {
			p.Commented(1, "//", e.ShortDescription, "%s,", e.Name)
		}
	}
	p.Line(0, "};")
}

// base returns the base class of o, or "" when it has none or it is not declared.
func (g *generation) base(o *model.Object) string {
	if o.Base == "" {
		return ""
	}
	if _, ok := g.v.Find(o.Base); !ok {
		return ""
	}
	return o.Base
}

// cloneBase reports whether o should add CloneObject to its bases: it is
// cloneable and no ancestor already is.
func (g *generation) cloneBase(o *model.Object) bool {
	if !g.cloneable(o) {
		return false
	}
	seen := map[string]bool{o.Name: true}
	for name := o.Base; name != "" && !seen[name]; {
		seen[name] = true
		base, ok := g.v.Find(name)
		if !ok {
			break
		}
		if g.cloneable(base) {
			return false
		}
		name = base.Base
	}
	return true
}

func (g *generation) cloneable(o *model.Object) bool {
	if o.Clone {
		return true
	}
	return g.v.Meta().PlainOldData && g.reflecting[o.Name]
}

func (g *generation) classDecl(p *emit.Printer, o *model.Object) {
	p.Blank()
	g.descriptions(p, 0, o)

	var bases []string
	if base := g.base(o); base != "" {
		bases = append(bases, "public "+base)
	} else if o.Base != "" {
		g.r.Warnf(o.Name, "", "base type %q is not declared; the class is emitted without it", o.Base)
	}
	if g.cloneBase(o) {
		bases = append(bases, "public CloneObject")
	}
	if len(bases) > 0 {
		p.Line(0, "class %s : %s", o.Name, strings.Join(bases, ", "))
	} else {
		p.Line(0, "class %s", o.Name)
	}
	p.Line(0, "{")
	p.Line(0, "public:")

	g.isMember(p, o)
	g.equality(p, o)
	g.constructors(p, o)
	if g.cloneable(o) {
		p.Line(1, "// Returns a deep copy of this object.")
		p.Line(1, "virtual CloneObject *clone(void) const override { return new %s(*this); }", o.Name)
		p.Blank()
	}
	g.members(p, o)

	p.Line(0, "};")
}

func (g *generation) isMember(p *emit.Printer, o *model.Object) {
	var names []string
	for _, f := range o.LocalFields() {
		if !f.IsMap {
			names = append(names, f.WireName())
		}
	}
	p.Line(1, "// Returns true if 'name' is a serialized member of this class or a base class.")
	p.Line(1, "bool isMember(const char *name) const")
	p.Line(1, "{")
	if base := g.base(o); base != "" {
		p.Line(2, "bool ret = %s::isMember(name);", base)
	} else {
		p.Line(2, "bool ret = false;")
	}
	for i, n := range names {
		switch {
		case len(names) == 1:
			p.Line(2, `if ( strcmp(name,"%s") == 0 )`, n)
		case i == 0:
			p.Line(2, `if ( strcmp(name,"%s") == 0 ||`, n)
		case i == len(names)-1:
			p.Line(3, `strcmp(name,"%s") == 0 )`, n)
		default:
			p.Line(3, `strcmp(name,"%s") == 0 ||`, n)
		}
	}
	if len(names) > 0 {
		p.Line(2, "{")
		p.Line(3, "ret = true;")
		p.Line(2, "}")
	}
	p.Line(2, "return ret;")
	p.Line(1, "}")
	p.Blank()
}

func (g *generation) equality(p *emit.Printer, o *model.Object) {
	p.Line(1, "// Defines the equality operator for this class and any sub-class.")
	p.Line(1, "bool operator==(const %s& other) const", o.Name)
	p.Line(1, "{")
	if base := g.base(o); base != "" {
		p.Line(2, "bool equal = static_cast<const %s&>(*this) == static_cast<const %s&>(other);", base, base)
	} else {
		p.Line(2, "bool equal = true;")
	}
	for _, f := range o.LocalFields() {
		n := memberName(f)
		p.Line(2, "equal &= %s == other.%s;", n, n)
	}
	p.Line(2, "return equal;")
	p.Line(1, "}")
	p.Blank()
	p.Line(1, "// Defines the not equal operator for this class and any sub-class.")
	p.Line(1, "bool operator!=(const %s& other) const", o.Name)
	p.Line(1, "{")
	p.Line(2, "return !((*this) == other);")
	p.Line(1, "}")
	p.Blank()
}

// constructors writes the default constructor when inherited members carry
// defaults, and the member-wise constructor for ASSIGNMENT objects.
func (g *generation) constructors(p *emit.Printer, o *model.Object) {
	type assignment struct{ target, value string }
	var inherited []assignment
	for i := range o.Fields {
		f := &o.Fields[i]
		if !f.IsInherited() || f.Default == "" {
			continue
		}
		expr, ok := rvalue(g.v, o, f, g.r)
		if !ok {
			continue
		}
		inherited = append(inherited, assignment{target: f.InheritsFrom + "::" + memberName(f), value: expr})
	}

	if len(inherited) > 0 || o.Assignment {
		p.Line(1, "// Declare the constructor.")
		if len(inherited) == 0 {
			p.Line(1, "%s() { }", o.Name)
		} else {
			p.Line(1, "%s()", o.Name)
			p.Line(1, "{")
			for _, a := range inherited {
				p.Line(2, "%s = %s;", a.target, a.value)
			}
			p.Line(1, "}")
		}
		p.Blank()
	}
	if !o.Assignment || len(o.Fields) == 0 {
		return
	}

	params := make([]string, 0, len(o.Fields))
	for i := range o.Fields {
		f := &o.Fields[i]
		params = append(params, "const "+declType(f)+" &_"+memberName(f))
	}
	p.Line(1, "// Declare the assignment constructor.")
	p.Line(1, "%s(%s)", o.Name, strings.Join(params, ", "))
	p.Line(1, "{")
	for i := range o.Fields {
		n := memberName(&o.Fields[i])
		p.Line(2, "%s = _%s;", n, n)
	}
	p.Line(1, "}")
	p.Blank()
}

func (g *generation) members(p *emit.Printer, o *model.Object) {
	for _, f := range o.LocalFields() {
		init := initializer(g.v, o, f, g.r)
		if init != "" {
			init = " " + init + " "
		} else {
			init = " "
		}
		p.Commented(1, "//", f.ShortDescription, "%s %s{%s};", declType(f), memberName(f), init)

		if f.IsMap {
			val := valueType(f)
			if f.IsArray {
				val = "std::vector< " + val + " >"
			}
			p.Blank()
			p.Line(1, "// Defines the array operator to access this map")
			p.Line(1, "%s& operator[](const %s& x)", val, mapKeyType(f))
			p.Line(1, "{")
			p.Line(2, "return %s[x];", memberName(f))
			p.Line(1, "}")
			p.Blank()
		}
	}
}
