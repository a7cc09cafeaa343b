package golang

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"

	"github.com/cmmoran/createdom/internal/model"
)

var builtinTypes = map[model.StandardType]string{
	model.TypeU64:    "uint64",
	model.TypeU32:    "uint32",
	model.TypeU16:    "uint16",
	model.TypeU8:     "uint8",
	model.TypeI64:    "int64",
	model.TypeI32:    "int32",
	model.TypeI16:    "int16",
	model.TypeI8:     "int8",
	model.TypeFloat:  "float32",
	model.TypeDouble: "float64",
	model.TypeBool:   "bool",
	model.TypeString: "string",
}

// exported turns a schema member or enumerator name into an exported Go
// identifier.
func exported(name string) string {
	var b strings.Builder
	upper := true
	for _, c := range name {
		switch {
		case unicode.IsLetter(c) || (unicode.IsDigit(c) && b.Len() > 0):
			if upper {
				c = unicode.ToUpper(c)
				upper = false
			}
			b.WriteRune(c)
		case unicode.IsDigit(c):
			b.WriteString("X")
			b.WriteRune(c)
			upper = false
		default:
			upper = true
		}
	}
	if b.Len() == 0 {
		return "X"
	}
	return b.String()
}

// enumConst names the constant of one enumerator.
func enumConst(enum, item string) string {
	return enum + exported(item)
}

// elemType is the Go type of one element of f, before array, map, pointer or
// optional wrapping.
func (g *generation) elemType(f *model.Field) *jen.Statement {
	if st := f.StandardType(); st != model.TypeNone {
		return jen.Id(builtinTypes[st])
	}
	target, ok := g.v.Find(f.Type)
	switch {
	case !ok:
		return nil
	case target.IsEnum() && f.SerializeEnumAsInteger:
		return jen.Uint32()
	}
	return jen.Id(f.Type)
}

// fieldType is the full Go type of f.
func (g *generation) fieldType(f *model.Field) *jen.Statement {
	elem := g.elemType(f)
	if elem == nil {
		return jen.Any()
	}
	if f.IsPointer {
		elem = jen.Op("*").Add(elem)
	}
	var t *jen.Statement
	switch {
	case f.IsArray:
		if named, ok := g.slices[f.Type]; ok && !f.IsPointer {
			t = jen.Id(named)
		} else {
			t = jen.Index().Add(elem)
		}
	case f.Optional != model.Required && !f.IsPointer && !f.IsMap:
		t = jen.Op("*").Add(elem)
	default:
		t = elem
	}
	if f.IsMap {
		return jen.Map(g.keyType(f)).Add(t)
	}
	return t
}

func (g *generation) keyType(f *model.Field) *jen.Statement {
	if f.MapKeyType == "" {
		return jen.String()
	}
	if st := model.LookupStandardType(f.MapKeyType); st != model.TypeNone {
		return jen.Id(builtinTypes[st])
	}
	if _, ok := g.v.Find(f.MapKeyType); ok {
		return jen.Id(f.MapKeyType)
	}
	g.r.Warnf("", f.Name, "map key type %q is not declared; using string", f.MapKeyType)
	return jen.String()
}

// defaultValue renders the default of f as a constant expression. It returns
// nil when the field keeps its zero value.
func (g *generation) defaultValue(o *model.Object, f *model.Field) jen.Code {
	def := strings.TrimSpace(f.Default)
	if def == "" {
		return nil
	}
	if f.IsArray || f.IsMap || f.IsPointer {
		g.r.Warnf(o.Name, f.Name, "default %q ignored on an array, map or pointer member", f.Default)
		return nil
	}
	switch st := f.StandardType(); {
	case st == model.TypeString:
		return jen.Lit(f.Default)
	case st.IsInteger() && st.IsSigned():
		n, err := strconv.ParseInt(def, 0, st.Bits())
		if err != nil {
			g.r.Warnf(o.Name, f.Name, "default %q is not a valid %s", f.Default, f.Type)
			return nil
		}
		return jen.Lit(int(n))
	case st.IsInteger():
		n, err := strconv.ParseUint(def, 0, st.Bits())
		if err != nil {
			g.r.Warnf(o.Name, f.Name, "default %q is not a valid %s", f.Default, f.Type)
			return nil
		}
		if n > math.MaxInt64 {
			return jen.Op(strconv.FormatUint(n, 10))
		}
		return jen.Lit(int(n))
	case st == model.TypeFloat || st == model.TypeDouble:
		switch def {
		case "FLT_MAX":
			return jen.Qual("math", "MaxFloat32")
		case "FLT_MIN":
			return jen.Lit(1.1754943508222875e-38)
		}
		d, err := strconv.ParseFloat(strings.TrimRight(def, "fF"), 64)
		if err != nil {
			g.r.Warnf(o.Name, f.Name, "default %q is not a number", f.Default)
			return nil
		}
		return jen.Lit(d)
	case st == model.TypeBool:
		return jen.Lit(strings.EqualFold(def, "true"))
	}

	target, ok := g.v.Find(f.Type)
	switch {
	case !ok:
		g.r.Warnf(o.Name, f.Name, "type %q is not declared; default %q ignored", f.Type, f.Default)
	case target.IsEnum():
		if _, ok := target.Field(def); !ok {
			g.r.Warnf(o.Name, f.Name, "default %q is not an enumerator of %s", f.Default, f.Type)
			return nil
		}
		if f.SerializeEnumAsInteger {
			return jen.Uint32().Call(jen.Id(enumConst(f.Type, def)))
		}
		return jen.Id(enumConst(f.Type, def))
	default:
		g.r.Warnf(o.Name, f.Name, "default values of class members are not supported; ignoring %q", f.Default)
	}
	return nil
}
