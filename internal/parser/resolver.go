package parser

import (
	"github.com/cmmoran/createdom/internal/model"
)

// Resolve derives the computed properties of a freshly built model. The passes
// run once each, in this order, over the whole object list:
//
//  1. field reflection from the field's own flags
//  2. object reflection, collecting the reflecting set
//  3. field reflection through reflecting declared types, repeating 2 and 3
//     until the reflecting set stops growing
//  4. multiple inheritance (grandparent of each derived object)
//  5. enum / class classification
//  6. type directory and child lists
//
// Any later change to m.Objects requires running Resolve again.
func Resolve(m *model.Model) {
	markFieldReflection(m)
	reflecting := markObjectReflection(m)
	for {
		propagateFieldReflection(m, reflecting)
		next := markObjectReflection(m)
		if len(next) == len(reflecting) {
			break
		}
		reflecting = next
	}
	computeMultipleInheritance(m)
	classify(m)
	buildDirectory(m)
}

func markFieldReflection(m *model.Model) {
	for i := range m.Objects {
		for j := range m.Objects[i].Fields {
			f := &m.Objects[i].Fields[j]
			f.NeedsReflection = f.DirectlyNeedsReflection()
		}
	}
}

// markObjectReflection flags every object with a reflecting field and returns
// the set of their names.
func markObjectReflection(m *model.Model) map[string]struct{} {
	reflecting := make(map[string]struct{})
	for i := range m.Objects {
		o := &m.Objects[i]
		o.NeedsReflection = false
		for j := range o.Fields {
			if o.Fields[j].NeedsReflection {
				o.NeedsReflection = true
				break
			}
		}
		if o.NeedsReflection {
			reflecting[o.Name] = struct{}{}
		}
	}
	return reflecting
}

func propagateFieldReflection(m *model.Model, reflecting map[string]struct{}) {
	for i := range m.Objects {
		for j := range m.Objects[i].Fields {
			f := &m.Objects[i].Fields[j]
			_, viaType := reflecting[f.Type]
			f.NeedsReflection = f.DirectlyNeedsReflection() || viaType
		}
	}
}

// computeMultipleInheritance records, for C : B : A, that C also derives from A.
// Only one level is examined, and an unresolved base leaves the target unset.
func computeMultipleInheritance(m *model.Model) {
	bases := make(map[string]string, len(m.Objects))
	for i := range m.Objects {
		bases[m.Objects[i].Name] = m.Objects[i].Base
	}
	for i := range m.Objects {
		o := &m.Objects[i]
		o.MultipleInheritance = ""
		if o.Base == "" {
			continue
		}
		if grand := bases[o.Base]; grand != "" {
			o.MultipleInheritance = grand
		}
	}
}

func classify(m *model.Model) {
	for i := range m.Objects {
		m.Objects[i].Kind = model.ParseKind(m.Objects[i].KindName)
	}
}

// buildDirectory installs the lookup table and rebuilds every child list from
// the declared base names, in declaration order.
func buildDirectory(m *model.Model) {
	dir := model.NewDirectory(m.Objects)
	for i := range m.Objects {
		m.Objects[i].Children = nil
	}
	for i := range m.Objects {
		o := &m.Objects[i]
		if o.Base == "" {
			continue
		}
		if base, ok := dir.Find(o.Base); ok {
			base.Children = append(base.Children, o.Name)
		}
	}
	m.SetDirectory(dir)
}
