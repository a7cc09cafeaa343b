package parser

import (
	"github.com/cmmoran/createdom/internal/diag"
	"github.com/cmmoran/createdom/internal/model"
)

// Validate reports schema authoring problems in a resolved model. It never
// changes the model and nothing it finds is fatal.
func Validate(m *model.Model, sink diag.Sink) {
	r := diag.Reporter{Sink: sink, Source: "resolver"}

	seen := make(map[string]bool, len(m.Objects))
	for i := range m.Objects {
		o := &m.Objects[i]
		if seen[o.Name] {
			r.Warnf(o.Name, "", "object declared more than once; the last declaration is used for lookups")
		}
		seen[o.Name] = true

		if o.Kind == model.KindUnknown && !o.IsAlias() {
			r.Infof(o.Name, "", "kind %q is neither Class nor Enum; emitters treat it as opaque", o.KindName)
		}
		if o.Base != "" {
			if _, ok := m.Find(o.Base); !ok {
				r.Warnf(o.Name, "", "base type %q is not declared", o.Base)
			}
		}
		if o.IsEnum() {
			continue
		}

		members := make(map[string]bool, len(o.Fields))
		for j := range o.Fields {
			f := &o.Fields[j]
			if members[f.Name] {
				r.Warnf(o.Name, f.Name, "member declared more than once")
			}
			members[f.Name] = true

			if f.Type == "" {
				r.Warnf(o.Name, f.Name, "member has no type")
			} else if !model.IsStandardType(f.Type) {
				if _, ok := m.Find(f.Type); !ok {
					r.Warnf(o.Name, f.Name, "type %q is not declared", f.Type)
				}
			}
			if f.IsMap && f.MapKeyType != "" && !model.IsStandardType(f.MapKeyType) {
				if _, ok := m.Find(f.MapKeyType); !ok {
					r.Warnf(o.Name, f.Name, "map key type %q is not declared", f.MapKeyType)
				}
			}
			if f.IsInherited() {
				checkInheritedFrom(m, o, f, r)
			}
		}
	}
}

// checkInheritedFrom verifies that f.InheritsFrom names o's base or one of its
// ancestors, and that it was declared before o.
func checkInheritedFrom(m *model.Model, o *model.Object, f *model.Field, r diag.Reporter) {
	if !declaredBefore(m, f.InheritsFrom, o.Name) {
		r.Warnf(o.Name, f.Name, "inherited-from %q is not declared before %q", f.InheritsFrom, o.Name)
		return
	}
	visited := map[string]bool{o.Name: true}
	for name := o.Base; name != ""; {
		if name == f.InheritsFrom {
			return
		}
		if visited[name] {
			break
		}
		visited[name] = true
		next, ok := m.Find(name)
		if !ok {
			break
		}
		name = next.Base
	}
	r.Warnf(o.Name, f.Name, "inherited-from %q is not in the base chain of %q", f.InheritsFrom, o.Name)
}

func declaredBefore(m *model.Model, name, owner string) bool {
	for i := range m.Objects {
		switch m.Objects[i].Name {
		case name:
			return true
		case owner:
			return false
		}
	}
	return false
}
