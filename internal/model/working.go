package model

import "strings"

// Kind classifies an Object. It starts out as KindUnknown and is set by the
// resolver from the free-text kind column.
type Kind int

const (
	KindUnknown Kind = iota // anything that is neither "Class" nor "Enum"
	KindClass               // a class with data members
	KindEnum                // an enumeration; its Fields are the enumerators
)

// ParseKind maps the raw kind text of an object row onto a Kind. The compare is
// case-insensitive; any other text yields KindUnknown.
func ParseKind(s string) Kind {
	switch {
	case strings.EqualFold(s, "Class"):
		return KindClass
	case strings.EqualFold(s, "Enum"):
		return KindEnum
	}
	return KindUnknown
}

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindEnum:
		return "enum"
	}
	return "unknown"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Optionality of a Field.
type Optionality int

const (
	Required            Optionality = iota
	Optional                        // wrapped in an optional type
	OptionalDeserialize             // may be absent on input, but stored as a plain value
)

func (o Optionality) String() string {
	switch o {
	case Optional:
		return "optional"
	case OptionalDeserialize:
		return "optional-deserialize"
	}
	return "required"
}

func (o Optionality) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// StandardType is one of the primitive type tags a Field may declare.
type StandardType int

const (
	TypeNone StandardType = iota
	TypeU64
	TypeU32
	TypeU16
	TypeU8
	TypeI64
	TypeI32
	TypeI16
	TypeI8
	TypeFloat
	TypeDouble
	TypeBool
	TypeString
)

var standardTypes = map[string]StandardType{
	"u64":    TypeU64,
	"u32":    TypeU32,
	"u16":    TypeU16,
	"u8":     TypeU8,
	"i64":    TypeI64,
	"i32":    TypeI32,
	"i16":    TypeI16,
	"i8":     TypeI8,
	"float":  TypeFloat,
	"double": TypeDouble,
	"bool":   TypeBool,
	"string": TypeString,
}

// LookupStandardType returns the primitive tag for name, or TypeNone when name
// refers to a schema Object (or to nothing at all).
func LookupStandardType(name string) StandardType {
	return standardTypes[name]
}

// IsStandardType reports whether name is a primitive type tag.
func IsStandardType(name string) bool {
	return LookupStandardType(name) != TypeNone
}

// IsInteger reports whether t is one of the fixed width integer tags.
func (t StandardType) IsInteger() bool {
	return t >= TypeU64 && t <= TypeI8
}

// IsSigned reports whether t is a signed integer tag.
func (t StandardType) IsSigned() bool {
	return t >= TypeI64 && t <= TypeI8
}

// Bits returns the width of an integer tag, 0 otherwise.
func (t StandardType) Bits() int {
	switch t {
	case TypeU64, TypeI64:
		return 64
	case TypeU32, TypeI32:
		return 32
	case TypeU16, TypeI16:
		return 16
	case TypeU8, TypeI8:
		return 8
	}
	return 0
}
