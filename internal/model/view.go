package model

import "slices"

// View is the read-only surface handed to emitters. Implementations must not
// be mutated through the values they return.
type View interface {
	Meta() Info
	// Types lists the objects to generate, in declaration order.
	Types() []*Object
	// Find looks a type up in the whole model. Selected types come back with
	// the same field filtering as Types.
	Find(name string) (*Object, bool)
	IsEnum(typeName string) bool
	IsClass(typeName string) bool
	// Reflecting lists, in declaration order, the objects that need reflection.
	Reflecting() []string
}

// Selector decides which objects and fields of a Model are exposed by a View.
// Nil funcs select everything.
type Selector struct {
	Object func(o *Object) bool
	Field  func(o *Object, f *Field) bool
}

type modelView struct {
	m        *Model
	types    []*Object
	selected map[string]*Object
}

// NewView wraps a resolved Model. Objects or fields rejected by sel are left
// out of Types, but type lookups still see the whole model.
func NewView(m *Model, sel Selector) View {
	v := &modelView{
		m:        m,
		types:    make([]*Object, 0, len(m.Objects)),
		selected: make(map[string]*Object, len(m.Objects)),
	}
	for i := range m.Objects {
		o := &m.Objects[i]
		if sel.Object != nil && !sel.Object(o) {
			continue
		}
		if sel.Field != nil {
			cp := *o
			cp.Fields = slices.DeleteFunc(slices.Clone(o.Fields), func(f Field) bool {
				return !sel.Field(o, &f)
			})
			o = &cp
		}
		v.types = append(v.types, o)
		v.selected[o.Name] = o
	}
	return v
}

func (v *modelView) Meta() Info       { return v.m.Info }
func (v *modelView) Types() []*Object { return v.types }

func (v *modelView) Find(name string) (*Object, bool) {
	if o, ok := v.selected[name]; ok {
		return o, true
	}
	return v.m.Find(name)
}

func (v *modelView) IsEnum(typeName string) bool {
	return v.m.dir.IsEnum(typeName)
}

func (v *modelView) IsClass(typeName string) bool {
	return v.m.dir.IsClass(typeName)
}

func (v *modelView) Reflecting() []string {
	var out []string
	for i := range v.m.Objects {
		if v.m.Objects[i].NeedsReflection {
			out = append(out, v.m.Objects[i].Name)
		}
	}
	return out
}
