package model

// Field is one data member of an Object (or one enumerator of an enum).
type Field struct {
	Name     string      `json:"name"`
	Type     string      `json:"type"` // primitive tag or another Object's name
	Optional Optionality `json:"optional"`

	IsArray   bool `json:"is_array,omitempty"`
	IsPointer bool `json:"is_pointer,omitempty"`
	IsString  bool `json:"is_string,omitempty"`
	IsMap     bool `json:"is_map,omitempty"`

	MapKeyType             string `json:"map_key_type,omitempty"`
	SerializeEnumAsInteger bool   `json:"serialize_enum_as_integer,omitempty"`

	// InheritsFrom names the base Object that already declares this member.
	InheritsFrom string `json:"inherits_from,omitempty"`
	// ProtoType overrides Type in protobuf output only.
	ProtoType string `json:"proto_type,omitempty"`

	EngineSpecific   string `json:"engine_specific,omitempty"`
	Default          string `json:"default,omitempty"`
	Min              string `json:"min,omitempty"`
	Max              string `json:"max,omitempty"`
	Alias            string `json:"alias,omitempty"`
	ShortDescription string `json:"short_description,omitempty"`
	LongDescription  string `json:"long_description,omitempty"`

	// NeedsReflection is derived by the resolver.
	NeedsReflection bool `json:"needs_reflection"`
}

// DirectlyNeedsReflection reports whether the field needs deep handling on its
// own account, without looking at its declared type.
func (f *Field) DirectlyNeedsReflection() bool {
	return f.IsArray || f.IsPointer || f.IsString
}

// IsInherited reports whether the field continues a member of a base Object.
func (f *Field) IsInherited() bool {
	return f.InheritsFrom != ""
}

// WireName is the name used in serialized output.
func (f *Field) WireName() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

// StandardType returns the primitive tag of the declared type.
func (f *Field) StandardType() StandardType {
	return LookupStandardType(f.Type)
}

// Object is one schema-level type.
type Object struct {
	Name     string `json:"name"`
	KindName string `json:"kind_name"` // kind column as written
	Kind     Kind   `json:"kind"`      // derived from KindName by the resolver
	Base     string `json:"base,omitempty"`

	EngineSpecific   string `json:"engine_specific,omitempty"`
	Clone            bool   `json:"clone,omitempty"`
	Assignment       bool   `json:"assignment,omitempty"`
	Alias            string `json:"alias,omitempty"`
	ShortDescription string `json:"short_description,omitempty"`
	LongDescription  string `json:"long_description,omitempty"`

	// Children names the objects declaring this one as their base. It is a
	// cache rebuilt by the resolver.
	Children []string `json:"children,omitempty"`
	Fields   []Field  `json:"fields"`

	NeedsReflection     bool   `json:"needs_reflection"`
	MultipleInheritance string `json:"multiple_inheritance,omitempty"`
}

func (o *Object) IsEnum() bool  { return o.Kind == KindEnum }
func (o *Object) IsClass() bool { return o.Kind == KindClass }

// IsAlias reports whether the object is a pure rename of another type.
func (o *Object) IsAlias() bool {
	return o.Alias != "" && o.Alias != o.Name
}

// Field returns the member called name.
func (o *Object) Field(name string) (*Field, bool) {
	for i := range o.Fields {
		if o.Fields[i].Name == name {
			return &o.Fields[i], true
		}
	}
	return nil, false
}

// LocalFields returns the fields not inherited from a base Object.
func (o *Object) LocalFields() []*Field {
	out := make([]*Field, 0, len(o.Fields))
	for i := range o.Fields {
		if !o.Fields[i].IsInherited() {
			out = append(out, &o.Fields[i])
		}
	}
	return out
}

// Info holds the model-wide directive values.
type Info struct {
	Namespace    string `json:"namespace"`
	Filename     string `json:"filename"`
	URL          string `json:"url,omitempty"`
	ExportXML    string `json:"export_xml,omitempty"` // accepted, has no effect
	PlainOldData bool   `json:"pod"`
}

// Model is the whole parsed schema.
type Model struct {
	Info    Info     `json:"info"`
	Objects []Object `json:"objects"`

	dir Directory
}

// SetDirectory installs the lookup table built by the resolver.
func (m *Model) SetDirectory(d Directory) {
	m.dir = d
}

// Directory returns the lookup table. It is empty until the resolver ran.
func (m *Model) Directory() Directory {
	return m.dir
}

// Find resolves a type name to its Object.
func (m *Model) Find(name string) (*Object, bool) {
	return m.dir.Find(name)
}
