package cpp

import (
	"github.com/cmmoran/createdom/internal/emit"
	"github.com/cmmoran/createdom/internal/model"
)

// enumTable writes the name lookup functions of one enum.
func (g *generation) enumTable(p *emit.Printer, o *model.Object) {
	n := o.Name
	p.Blank()
	p.Line(0, "struct %sKey", n)
	p.Line(0, "{")
	p.Line(1, "%s key;", n)
	p.Line(1, "const char *value;")
	p.Line(0, "};")
	p.Blank()
	p.Line(0, "static %sKey %sList[] =", n, n)
	p.Line(0, "{")
	for i := range o.Fields {
		e := &o.Fields[i]
		p.Line(1, `{ %s::%s, "%s" },`, n, e.Name, e.WireName())
	}
	p.Line(0, "};")
	p.Blank()
	p.Line(0, "const char *stringifyEnum(%s in)", n)
	p.Line(0, "{")
	p.Line(1, "const char *ret = nullptr;")
	p.Line(1, "static std::unordered_map<%s, const char *> enumToStringMap;", n)
	p.Line(1, "static std::once_flag first;")
	p.Line(1, "std::call_once(first, []()")
	p.Line(1, "{")
	p.Line(2, "for (auto e : %sList)", n)
	p.Line(2, "{")
	p.Line(3, "enumToStringMap[e.key] = e.value;")
	p.Line(2, "}")
	p.Line(1, "});")
	p.Line(1, "const auto &found = enumToStringMap.find(in);")
	p.Line(1, "if (found != enumToStringMap.end())")
	p.Line(1, "{")
	p.Line(2, "ret = (*found).second;")
	p.Line(1, "}")
	p.Line(1, "assert(ret); // only a corrupted value has no name")
	p.Line(1, "return ret;")
	p.Line(0, "}")
	p.Blank()
	p.Line(0, "std::string stringifyEnumStdString(%s in)", n)
	p.Line(0, "{")
	p.Line(1, "return std::string(stringifyEnum(in));")
	p.Line(0, "}")
	p.Blank()
	p.Line(0, "template<> %s unstringifyEnum<%s>(const std::string &in, bool &isValid)", n, n)
	p.Line(0, "{")
	if len(o.Fields) > 0 {
		p.Line(1, "%s ret = %s::%s;", n, n, o.Fields[0].Name)
	} else {
		p.Line(1, "%s ret{};", n)
	}
	p.Line(1, "isValid = false;")
	p.Line(1, "static std::unordered_map<std::string, %s> stringToEnumMap;", n)
	p.Line(1, "static std::once_flag first;")
	p.Line(1, "std::call_once(first, []()")
	p.Line(1, "{")
	p.Line(2, "for (auto e : %sList)", n)
	p.Line(2, "{")
	p.Line(3, "stringToEnumMap[std::string(e.value)] = e.key;")
	p.Line(2, "}")
	p.Line(1, "});")
	p.Line(1, "const auto &found = stringToEnumMap.find(in);")
	p.Line(1, "if (found != stringToEnumMap.end())")
	p.Line(1, "{")
	p.Line(2, "ret = (*found).second;")
	p.Line(2, "isValid = true;")
	p.Line(1, "}")
	p.Line(1, "return ret;")
	p.Line(0, "}")
}

// runtimeHelpers writes the non-generated support code of the implementation
// file.
func runtimeHelpers(p *emit.Printer) {
	p.Blank()
	p.Line(0, "// Converts a decimal string to an integer of the requested width.")
	p.Line(0, "template<typename T>")
	p.Line(0, "void stringToInt(const char *str, T &v)")
	p.Line(0, "{")
	p.Line(1, "if (std::is_signed<T>::value)")
	p.Line(1, "{")
	p.Line(2, "v = static_cast<T>(strtoll(str, nullptr, 10));")
	p.Line(1, "}")
	p.Line(1, "else")
	p.Line(1, "{")
	p.Line(2, "v = static_cast<T>(strtoull(str, nullptr, 10));")
	p.Line(1, "}")
	p.Line(0, "}")
	p.Blank()
	p.Line(0, "std::string serializeDocument(const rapidjson::Document &d)")
	p.Line(0, "{")
	p.Line(1, "rapidjson::StringBuffer strbuf;")
	p.Line(1, "rapidjson::Writer<rapidjson::StringBuffer> writer(strbuf);")
	p.Line(1, "d.Accept(writer);")
	p.Line(1, "return strbuf.GetString();")
	p.Line(0, "}")
}

func forwardTemplates(p *emit.Printer, classes []*model.Object) {
	p.Blank()
	for _, o := range classes {
		p.Line(0, "template<typename DocumentOrObject, typename Alloc>")
		p.Line(0, "DocumentOrObject& serializeTo(const %s &type, DocumentOrObject &d, Alloc &alloc);", o.Name)
		p.Line(0, "template<typename DocumentOrObject>")
		p.Line(0, "bool deserializeFrom(const DocumentOrObject &d, %s &r);", o.Name)
	}
}

// valueInto writes statements leaving the JSON form of expr in a
// rapidjson::Value called dst.
func (g *generation) valueInto(p *emit.Printer, level int, o *model.Object, f *model.Field, expr, dst string) bool {
	st := model.LookupStandardType(f.Type)
	switch {
	case st == model.TypeString:
		p.Line(level, "rapidjson::Value %s(%s.c_str(), alloc);", dst, expr)
		return true
	case st != model.TypeNone:
		p.Line(level, "rapidjson::Value %s(%s);", dst, widen(st, expr))
		return true
	case g.v.IsEnum(f.Type):
		if f.SerializeEnumAsInteger {
			p.Line(level, "rapidjson::Value %s(uint64_t(%s));", dst, expr)
		} else {
			p.Line(level, "rapidjson::Value %s(rapidjson::StringRef(stringifyEnum(%s)));", dst, expr)
		}
		return true
	case g.v.IsClass(f.Type):
		p.Line(level, "rapidjson::Value %s(rapidjson::kObjectType);", dst)
		p.Line(level, "serializeTo(%s, %s, alloc);", expr, dst)
		return true
	}
	g.r.Warnf(o.Name, f.Name, "cannot serialize member of type %q; skipped", f.Type)
	p.Line(level, "// member '%s' of unresolved type '%s' is not serialized", f.Name, f.Type)
	return false
}

// widen promotes narrow integers so rapidjson picks an exact constructor.
func widen(st model.StandardType, expr string) string {
	switch st {
	case model.TypeU8, model.TypeU16:
		return "uint32_t(" + expr + ")"
	case model.TypeI8, model.TypeI16:
		return "int32_t(" + expr + ")"
	}
	return expr
}

func (g *generation) mapKeyValue(p *emit.Printer, level int, f *model.Field, expr, dst string) {
	switch {
	case f.MapKeyType == "" || f.MapKeyType == "string":
		p.Line(level, "rapidjson::Value %s(%s.c_str(), alloc);", dst, expr)
	case g.v.IsEnum(f.MapKeyType):
		p.Line(level, "rapidjson::Value %s(stringifyEnum(%s), alloc);", dst, expr)
	default:
		p.Line(level, "rapidjson::Value %s(std::to_string(%s).c_str(), alloc);", dst, expr)
	}
}

func deref(f *model.Field, expr string) string {
	if f.IsPointer {
		return "*" + expr
	}
	return expr
}

func (g *generation) serializer(p *emit.Printer, o *model.Object) {
	p.Blank()
	p.Line(0, "// Serialize object %s", o.Name)
	p.Line(0, "template<typename DocumentOrObject, typename Alloc>")
	p.Line(0, "DocumentOrObject& serializeTo(const %s &type, DocumentOrObject &d, Alloc &alloc)", o.Name)
	p.Line(0, "{")
	if o.Base != "" && g.v.IsClass(o.Base) {
		p.Line(1, "serializeTo(static_cast<const %s&>(type), d, alloc);", o.Base)
	}
	for _, f := range o.LocalFields() {
		g.serializeField(p, o, f)
	}
	p.Line(1, "return d;")
	p.Line(0, "}")
	p.Blank()
	p.Line(0, "std::string serialize(const %s &type)", o.Name)
	p.Line(0, "{")
	p.Line(1, "rapidjson::Document d;")
	p.Line(1, "d.SetObject();")
	p.Line(1, "serializeTo(type, d, d.GetAllocator());")
	p.Line(1, "return serializeDocument(d);")
	p.Line(0, "}")
}

func (g *generation) serializeField(p *emit.Printer, o *model.Object, f *model.Field) {
	member := "type." + memberName(f)
	key := f.WireName()
	p.Line(1, "// Serialize member '%s' of type '%s'", f.Name, f.Type)
	switch {
	case f.IsMap:
		p.Line(1, "for (const auto &e : %s)", member)
		p.Line(1, "{")
		g.mapKeyValue(p, 2, f, "e.first", "key")
		if f.IsArray {
			g.arrayValue(p, 2, o, f, "e.second", "v")
		} else if !g.valueInto(p, 2, o, f, deref(f, "e.second"), "v") {
			p.Line(1, "}")
			return
		}
		p.Line(2, "d.AddMember(key, v, alloc);")
		p.Line(1, "}")
	case f.IsArray:
		p.Line(1, "{")
		g.arrayValue(p, 2, o, f, member, "array")
		p.Line(2, `d.AddMember("%s", array, alloc);`, key)
		p.Line(1, "}")
	case f.IsPointer:
		p.Line(1, "if ( %s )", member)
		p.Line(1, "{")
		if g.valueInto(p, 2, o, f, "*"+member, "v") {
			p.Line(2, `d.AddMember("%s", v, alloc);`, key)
		}
		p.Line(1, "}")
	case f.Optional == model.Optional:
		p.Line(1, "if ( %s.has_value() )", member)
		p.Line(1, "{")
		if g.valueInto(p, 2, o, f, member+".value()", "v") {
			p.Line(2, `d.AddMember("%s", v, alloc);`, key)
		}
		p.Line(1, "}")
	default:
		p.Line(1, "{")
		if g.valueInto(p, 2, o, f, member, "v") {
			p.Line(2, `d.AddMember("%s", v, alloc);`, key)
		}
		p.Line(1, "}")
	}
}

// arrayValue serializes the vector expr into a rapidjson array called dst.
func (g *generation) arrayValue(p *emit.Printer, level int, o *model.Object, f *model.Field, expr, dst string) {
	p.Line(level, "rapidjson::Value %s(rapidjson::kArrayType);", dst)
	p.Line(level, "for (const auto &item : %s)", expr)
	p.Line(level, "{")
	if f.IsPointer {
		p.Line(level+1, "if ( !item )")
		p.Line(level+1, "{")
		p.Line(level+2, "continue;")
		p.Line(level+1, "}")
	}
	if g.valueInto(p, level+1, o, f, deref(f, "item"), "element") {
		p.Line(level+1, "%s.PushBack(element, alloc);", dst)
	}
	p.Line(level, "}")
}

// readInto writes statements parsing the rapidjson value src into the lvalue
// dst. The generated code returns false on a type mismatch.
func (g *generation) readInto(p *emit.Printer, level int, o *model.Object, f *model.Field, src, dst string) bool {
	st := model.LookupStandardType(f.Type)
	mismatch := func(check string) {
		p.Line(level, "if ( !%s.%s() )", src, check)
		p.Line(level, "{")
		p.Line(level+1, "return false;")
		p.Line(level, "}")
	}
	switch {
	case st == model.TypeString:
		mismatch("IsString")
		p.Line(level, "%s = %s.GetString();", dst, src)
	case st.IsInteger():
		get := "GetUint64"
		if st.IsSigned() {
			get = "GetInt64"
		}
		p.Line(level, "if ( %s.IsString() )", src)
		p.Line(level, "{")
		p.Line(level+1, "stringToInt(%s.GetString(), %s);", src, dst)
		p.Line(level, "}")
		p.Line(level, "else if ( %s.IsNumber() )", src)
		p.Line(level, "{")
		p.Line(level+1, "%s = static_cast<%s>(%s.%s());", dst, standardNames[st], src, get)
		p.Line(level, "}")
		p.Line(level, "else")
		p.Line(level, "{")
		p.Line(level+1, "return false;")
		p.Line(level, "}")
	case st == model.TypeFloat || st == model.TypeDouble:
		mismatch("IsNumber")
		p.Line(level, "%s = static_cast<%s>(%s.GetDouble());", dst, standardNames[st], src)
	case st == model.TypeBool:
		mismatch("IsBool")
		p.Line(level, "%s = %s.GetBool();", dst, src)
	case g.v.IsEnum(f.Type):
		if f.SerializeEnumAsInteger {
			mismatch("IsNumber")
			p.Line(level, "%s = %s(%s.GetUint64());", dst, f.Type, src)
			return true
		}
		mismatch("IsString")
		p.Line(level, "{")
		p.Line(level+1, "bool isOk = false;")
		p.Line(level+1, "%s = unstringifyEnum<%s>(%s.GetString(), isOk);", dst, f.Type, src)
		p.Line(level+1, "if ( !isOk )")
		p.Line(level+1, "{")
		p.Line(level+2, "return false;")
		p.Line(level+1, "}")
		p.Line(level, "}")
	case g.v.IsClass(f.Type):
		mismatch("IsObject")
		p.Line(level, "if ( !deserializeFrom(%s, %s) )", src, dst)
		p.Line(level, "{")
		p.Line(level+1, "return false;")
		p.Line(level, "}")
	default:
		g.r.Warnf(o.Name, f.Name, "cannot deserialize member of type %q; skipped", f.Type)
		p.Line(level, "// member '%s' of unresolved type '%s' is not deserialized", f.Name, f.Type)
		return false
	}
	return true
}

func (g *generation) deserializer(p *emit.Printer, o *model.Object) {
	p.Blank()
	p.Line(0, "// Deserialize object %s", o.Name)
	p.Line(0, "template<typename DocumentOrObject>")
	p.Line(0, "bool deserializeFrom(const DocumentOrObject &d, %s &r)", o.Name)
	p.Line(0, "{")
	if o.Base != "" && g.v.IsClass(o.Base) {
		p.Line(1, "// Deserialize the base class (%s) first.", o.Base)
		p.Line(1, "if ( !deserializeFrom(d, static_cast<%s&>(r)) )", o.Base)
		p.Line(1, "{")
		p.Line(2, "return false;")
		p.Line(1, "}")
	}
	for _, f := range o.LocalFields() {
		g.deserializeField(p, o, f)
	}
	p.Line(1, "return true;")
	p.Line(0, "}")
	p.Blank()
	p.Line(0, "bool deserialize(const char *json, %s &out)", o.Name)
	p.Line(0, "{")
	p.Line(1, "rapidjson::Document d;")
	p.Line(1, "d.Parse(json);")
	p.Line(1, "if ( d.HasParseError() || !d.IsObject() )")
	p.Line(1, "{")
	p.Line(2, "return false;")
	p.Line(1, "}")
	p.Line(1, "return deserializeFrom(d, out);")
	p.Line(0, "}")
}

func (g *generation) deserializeField(p *emit.Printer, o *model.Object, f *model.Field) {
	p.Line(1, "// Deserialize member '%s' of type '%s'", f.Name, f.Type)
	if f.IsPointer {
		g.r.Infof(o.Name, f.Name, "pointer members are serialized but never deserialized")
		p.Line(1, "// pointer member '%s' is not deserialized", f.Name)
		return
	}
	elem := valueType(f)
	p.Line(1, "{")
	if f.IsMap {
		g.deserializeMap(p, o, f, elem)
		p.Line(1, "}")
		return
	}
	p.Line(2, `auto found = d.FindMember("%s");`, f.WireName())
	p.Line(2, "if ( found != d.MemberEnd() )")
	p.Line(2, "{")
	p.Line(3, "const rapidjson::Value &v = found->value;")
	switch {
	case f.IsArray:
		p.Line(3, "if ( !v.IsArray() )")
		p.Line(3, "{")
		p.Line(4, "return false;")
		p.Line(3, "}")
		p.Line(3, "r.%s.clear();", f.Name)
		p.Line(3, "for (rapidjson::SizeType i = 0; i < v.Size(); i++)")
		p.Line(3, "{")
		p.Line(4, "%s item{};", elem)
		if g.readInto(p, 4, o, f, "v[i]", "item") {
			p.Line(4, "r.%s.push_back(item);", f.Name)
		}
		p.Line(3, "}")
	case f.Optional == model.Optional:
		p.Line(3, "%s value{};", elem)
		if g.readInto(p, 3, o, f, "v", "value") {
			p.Line(3, "r.%s = value;", f.Name)
		}
	default:
		g.readInto(p, 3, o, f, "v", "r."+f.Name)
	}
	p.Line(2, "}")
	if f.Optional == model.Required {
		p.Line(2, "else")
		p.Line(2, "{")
		p.Line(3, "return false;")
		p.Line(2, "}")
	}
	p.Line(1, "}")
}

// deserializeMap collects every object member that is not a named member of
// the class into the map field f.
func (g *generation) deserializeMap(p *emit.Printer, o *model.Object, f *model.Field, elem string) {
	key := mapKeyType(f)
	p.Line(2, "for (auto iter = d.MemberBegin(); iter != d.MemberEnd(); ++iter)")
	p.Line(2, "{")
	p.Line(3, "const char *name = iter->name.GetString();")
	p.Line(3, "if ( r.isMember(name) )")
	p.Line(3, "{")
	p.Line(4, "continue;")
	p.Line(3, "}")
	switch {
	case key == "std::string":
		p.Line(3, "std::string key(name);")
	case g.v.IsEnum(f.MapKeyType):
		p.Line(3, "bool keyOk = false;")
		p.Line(3, "%s key = unstringifyEnum<%s>(std::string(name), keyOk);", key, key)
		p.Line(3, "if ( !keyOk )")
		p.Line(3, "{")
		p.Line(4, "continue;")
		p.Line(3, "}")
	default:
		p.Line(3, "%s key{};", key)
		p.Line(3, "stringToInt(name, key);")
	}
	p.Line(3, "const rapidjson::Value &v = iter->value;")
	if f.IsArray {
		p.Line(3, "if ( !v.IsArray() )")
		p.Line(3, "{")
		p.Line(4, "return false;")
		p.Line(3, "}")
		p.Line(3, "std::vector< %s > items;", elem)
		p.Line(3, "for (rapidjson::SizeType i = 0; i < v.Size(); i++)")
		p.Line(3, "{")
		p.Line(4, "%s item{};", elem)
		if g.readInto(p, 4, o, f, "v[i]", "item") {
			p.Line(4, "items.push_back(item);")
		}
		p.Line(3, "}")
		p.Line(3, "r.%s[key] = items;", memberName(f))
	} else {
		p.Line(3, "%s item{};", elem)
		if g.readInto(p, 3, o, f, "v", "item") {
			p.Line(3, "r.%s[key] = item;", memberName(f))
		}
	}
	p.Line(2, "}")
}
