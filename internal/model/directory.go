package model

// Directory is the name→Object lookup table over a finished object list.
// Names are matched exactly.
type Directory struct {
	byName map[string]*Object
}

// NewDirectory indexes objs. The returned Directory points into objs, so the
// slice must not be appended to while the Directory is in use. When a name is
// declared twice the later declaration wins.
func NewDirectory(objs []Object) Directory {
	d := Directory{byName: make(map[string]*Object, len(objs))}
	for i := range objs {
		d.byName[objs[i].Name] = &objs[i]
	}
	return d
}

func (d Directory) Find(name string) (*Object, bool) {
	o, ok := d.byName[name]
	return o, ok
}

func (d Directory) Len() int {
	return len(d.byName)
}

// IsEnum reports whether typeName resolves to an enum Object.
func (d Directory) IsEnum(typeName string) bool {
	o, ok := d.Find(typeName)
	return ok && o.IsEnum()
}

// IsClass reports whether typeName resolves to a class Object.
func (d Directory) IsClass(typeName string) bool {
	o, ok := d.Find(typeName)
	return ok && o.IsClass()
}
