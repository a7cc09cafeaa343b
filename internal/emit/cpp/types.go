package cpp

import (
	"strconv"
	"strings"

	"github.com/cmmoran/createdom/internal/diag"
	"github.com/cmmoran/createdom/internal/model"
)

var standardNames = map[model.StandardType]string{
	model.TypeU64:    "uint64_t",
	model.TypeU32:    "uint32_t",
	model.TypeU16:    "uint16_t",
	model.TypeU8:     "uint8_t",
	model.TypeI64:    "int64_t",
	model.TypeI32:    "int32_t",
	model.TypeI16:    "int16_t",
	model.TypeI8:     "int8_t",
	model.TypeFloat:  "float",
	model.TypeDouble: "double",
	model.TypeBool:   "bool",
	model.TypeString: "std::string",
}

// elementType spells a declared type name in C++.
func elementType(name string) string {
	if st := model.LookupStandardType(name); st != model.TypeNone {
		return standardNames[st]
	}
	return name
}

// valueType is the type of one element of f: pointer-qualified when needed.
func valueType(f *model.Field) string {
	t := elementType(f.Type)
	if f.IsPointer {
		t += "*"
	}
	return t
}

func mapKeyType(f *model.Field) string {
	if f.MapKeyType == "" {
		return "std::string"
	}
	return elementType(f.MapKeyType)
}

// declType is the full C++ type of the member declared for f.
func declType(f *model.Field) string {
	elem := valueType(f)
	switch {
	case f.IsMap:
		val := elem
		if f.IsArray {
			val = "std::vector< " + elem + " >"
		}
		return "std::unordered_map< " + mapKeyType(f) + ", " + val + " >"
	case f.IsArray:
		return "std::vector< " + elem + " >"
	case f.Optional == model.Optional && !f.IsPointer:
		return "codegen::optional< " + elem + " >"
	}
	return elem
}

// memberName is the C++ identifier of f. Map members get a leading underscore
// and are reached through operator[].
func memberName(f *model.Field) string {
	if f.IsMap {
		return "_" + f.Name
	}
	return f.Name
}

// initializer renders the brace initializer of a member from its default
// value. It returns "" when the member is value-initialized.
func initializer(v model.View, o *model.Object, f *model.Field, r diag.Reporter) string {
	if f.IsArray || f.IsMap {
		if f.Default != "" {
			r.Warnf(o.Name, f.Name, "default values for arrays and maps are ignored")
		}
		return ""
	}
	if f.IsPointer {
		return "nullptr"
	}
	st := model.LookupStandardType(f.Type)
	switch {
	case st == model.TypeString:
		if f.Default == "" {
			return ""
		}
		return strconv.Quote(f.Default)
	case st.IsInteger():
		return integerLiteral(o, f, st, r)
	case st == model.TypeFloat:
		return floatLiteral(o, f, "f", r)
	case st == model.TypeDouble:
		return floatLiteral(o, f, "", r)
	case st == model.TypeBool:
		if strings.EqualFold(f.Default, "true") {
			return "true"
		}
		return "false"
	}

	target, ok := v.Find(f.Type)
	if !ok {
		r.Warnf(o.Name, f.Name, "invalid member variable type %q", f.Type)
		return ""
	}
	if target.IsEnum() {
		if f.Default == "" {
			return ""
		}
		if _, ok := target.Field(f.Default); !ok {
			r.Warnf(o.Name, f.Name, "default %q is not an enumerator of %s", f.Default, target.Name)
		}
		return target.Name + "::" + f.Default
	}
	if f.Default != "" {
		r.Warnf(o.Name, f.Name, "default value %q for type %s is not supported; using the default constructor", f.Default, f.Type)
	}
	return ""
}

// rvalue renders the expression assigned to an inherited member from its
// default value. ok is false when no expression can be formed.
func rvalue(v model.View, o *model.Object, f *model.Field, r diag.Reporter) (expr string, ok bool) {
	if f.IsArray {
		if f.Default != "" {
			r.Warnf(o.Name, f.Name, "default values for arrays are ignored")
		}
		return "std::vector< " + valueType(f) + " >()", true
	}
	if f.IsPointer {
		return "nullptr", true
	}
	if model.IsStandardType(f.Type) {
		init := initializer(v, o, f, r)
		if init == "" {
			init = elementType(f.Type) + "()"
		}
		return init, true
	}
	target, found := v.Find(f.Type)
	if !found {
		r.Warnf(o.Name, f.Name, "invalid variable type %q", f.Type)
		return "", false
	}
	if target.IsEnum() {
		if f.Default != "" {
			return target.Name + "::" + f.Default, true
		}
		return target.Name + "()", true
	}
	return target.Name + "(" + initializer(v, o, f, r) + ")", true
}

func integerLiteral(o *model.Object, f *model.Field, st model.StandardType, r diag.Reporter) string {
	if f.Default == "" {
		return "0"
	}
	raw := strings.TrimSpace(f.Default)
	if st.IsSigned() {
		n, err := strconv.ParseInt(raw, 0, st.Bits())
		if err != nil {
			r.Warnf(o.Name, f.Name, "default %q is not a valid %s", f.Default, f.Type)
			return "0"
		}
		return strconv.FormatInt(n, 10)
	}
	n, err := strconv.ParseUint(raw, 0, st.Bits())
	if err != nil {
		r.Warnf(o.Name, f.Name, "default %q is not a valid %s", f.Default, f.Type)
		return "0"
	}
	return strconv.FormatUint(n, 10)
}

// floatLiteral keeps FLT_MAX / FLT_MIN symbolic and always prints a decimal
// point.
func floatLiteral(o *model.Object, f *model.Field, suffix string, r diag.Reporter) string {
	raw := strings.TrimSpace(f.Default)
	switch raw {
	case "":
		return "0.0" + suffix
	case "FLT_MAX", "FLT_MIN":
		return raw
	}
	bits := 64
	if suffix == "f" {
		bits = 32
	}
	n, err := strconv.ParseFloat(strings.TrimSuffix(raw, "f"), bits)
	if err != nil {
		r.Warnf(o.Name, f.Name, "default %q is not a valid %s", f.Default, f.Type)
		n = 0
	}
	s := strconv.FormatFloat(n, 'g', -1, bits)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s + suffix
}
