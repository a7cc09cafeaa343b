// Package cpp emits C++ class declarations and, outside plain-old-data mode,
// JSON serialization bindings against the rapidjson document API.
package cpp

import (
	"strings"

	"github.com/cmmoran/createdom/internal/diag"
	"github.com/cmmoran/createdom/internal/emit"
	"github.com/cmmoran/createdom/internal/model"
)

const Target = "cpp"

// Generator implements emit.Emitter for C++.
type Generator struct{}

func New() *Generator { return &Generator{} }

func (g *Generator) Name() string { return Target }

// generation is the state of one Emit call.
type generation struct {
	v          model.View
	r          diag.Reporter
	reflecting map[string]bool
}

// Emit renders <Filename>.h and, unless the schema is in POD mode,
// <Filename>.cpp.
func (g *Generator) Emit(v model.View, sink diag.Sink) ([]emit.File, error) {
	r := diag.Reporter{Sink: sink, Source: Target}
	if !emit.CheckMeta(v, r) {
		return nil, emit.ErrMissingMeta
	}
	gen := &generation{v: v, r: r, reflecting: make(map[string]bool)}
	for _, name := range v.Reflecting() {
		gen.reflecting[name] = true
	}

	meta := v.Meta()
	files := []emit.File{{
		Name:    meta.Filename + ".h",
		Target:  Target,
		Content: gen.header().Bytes(),
	}}
	if !meta.PlainOldData {
		files = append(files, emit.File{
			Name:    meta.Filename + ".cpp",
			Target:  Target,
			Content: gen.implementation().Bytes(),
		})
	}
	return files, nil
}

func (g *generation) banner(p *emit.Printer) {
	p.Line(0, "// clang-format off")
	p.Line(0, "// Generated by createdom. Do not edit this file manually.")
	if url := g.v.Meta().URL; url != "" {
		p.Line(0, "// Schema source: %s", url)
	}
}

func (g *generation) classes() []*model.Object {
	var out []*model.Object
	for _, o := range g.v.Types() {
		if o.IsClass() && !o.IsAlias() && o.Alias == "" {
			out = append(out, o)
		}
	}
	return out
}

func (g *generation) enums() []*model.Object {
	var out []*model.Object
	for _, o := range g.v.Types() {
		if o.IsEnum() && o.Alias == "" {
			out = append(out, o)
		}
	}
	return out
}

func (g *generation) header() *emit.Printer {
	meta := g.v.Meta()
	p := emit.NewPrinter("    ")
	guard := strings.ToUpper(meta.Filename) + "_H"
	if meta.PlainOldData {
		p.Line(0, "#ifndef %s", guard)
		p.Line(0, "#define %s", guard)
	} else {
		p.Line(0, "#pragma once")
	}
	p.Blank()
	g.banner(p)
	p.Blank()
	p.Line(0, "#ifdef _MSC_VER")
	p.Line(0, "#pragma warning(push)")
	p.Line(0, "#pragma warning(disable:4244)")
	p.Line(0, "#endif")
	p.Blank()
	for _, inc := range []string{"vector", "unordered_map", "string", "stdint.h", "string.h", "float.h"} {
		p.Line(0, "#include <%s>", inc)
	}
	p.Blank()
	p.Line(0, "#define USE_OPTIONAL 1")
	p.Blank()
	p.Line(0, "#if __has_include(<optional>) && USE_OPTIONAL == 1")
	p.Line(0, "#include <optional>")
	p.Line(0, "#else")
	p.Line(0, "#define NO_OPTIONAL")
	p.Line(0, "#endif")
	p.Blank()
	p.Line(0, "namespace codegen")
	p.Line(0, "{")
	p.Line(0, "template<typename T>")
	p.Line(0, "#ifdef NO_OPTIONAL")
	p.Line(0, "using optional = T;")
	p.Line(0, "#else")
	p.Line(0, "using optional = std::optional<T>;")
	p.Line(0, "#endif")
	p.Line(0, "}")
	p.Blank()
	p.Line(0, "namespace %s", meta.Namespace)
	p.Line(0, "{")

	classes := g.classes()
	if len(classes) > 0 {
		p.Blank()
		for _, o := range classes {
			p.Line(0, "class %s;", o.Name)
		}
	}
	if g.anyCloneable() {
		p.Blank()
		p.Line(0, "// Base of every object supporting deep copies.")
		p.Line(0, "class CloneObject")
		p.Line(0, "{")
		p.Line(0, "public:")
		p.Line(1, "virtual ~CloneObject() { }")
		p.Line(1, "virtual CloneObject *clone(void) const = 0;")
		p.Line(0, "};")
	}

	for _, o := range g.v.Types() {
		switch {
		case o.IsAlias():
			p.Blank()
			p.Line(0, "using %s = %s;", o.Name, o.Alias)
		case o.Alias != "":
			// aliased to itself: nothing to declare
		case o.IsEnum():
			g.enumDecl(p, o)
		case o.IsClass():
			g.classDecl(p, o)
		}
	}

	if !meta.PlainOldData {
		g.bindingDecls(p, classes)
	}

	p.Blank()
	p.Line(0, "} // End of namespace:%s", meta.Namespace)
	p.Blank()
	p.Line(0, "#ifdef _MSC_VER")
	p.Line(0, "#pragma warning(pop)")
	p.Line(0, "#endif")
	if meta.PlainOldData {
		p.Blank()
		p.Line(0, "#endif // End of %s", guard)
	}
	return p
}

func (g *generation) anyCloneable() bool {
	for _, o := range g.classes() {
		if g.cloneable(o) {
			return true
		}
	}
	return false
}

// bindingDecls declares the enum name lookups and the JSON entry points.
func (g *generation) bindingDecls(p *emit.Printer, classes []*model.Object) {
	p.Blank()
	p.Line(0, "template<typename T>")
	p.Line(0, "T unstringifyEnum(const std::string &str, bool &ok);")
	for _, o := range g.enums() {
		p.Blank()
		p.Line(0, "const char *stringifyEnum(%s x);", o.Name)
		p.Line(0, "std::string stringifyEnumStdString(%s x);", o.Name)
		p.Line(0, "template<> %s unstringifyEnum<%s>(const std::string &str, bool &ok);", o.Name, o.Name)
	}
	if len(classes) == 0 {
		return
	}
	p.Blank()
	p.Line(0, "/*")
	p.Line(0, " * Serialization")
	p.Line(0, " */")
	for _, o := range classes {
		p.Line(0, "std::string serialize(const %s &type);", o.Name)
		p.Line(0, "bool deserialize(const char *json, %s &out);", o.Name)
	}
}

func (g *generation) implementation() *emit.Printer {
	meta := g.v.Meta()
	p := emit.NewPrinter("    ")
	g.banner(p)
	p.Line(0, "// C++ binding code for enumeration lookups and JSON serialization.")
	p.Blank()
	p.Line(0, `#include "%s.h"`, meta.Filename)
	for _, inc := range []string{"assert.h", "stdlib.h", "mutex", "string", "string.h", "type_traits", "unordered_map"} {
		p.Line(0, "#include <%s>", inc)
	}
	p.Blank()
	p.Line(0, "#ifdef _MSC_VER")
	p.Line(0, "#pragma warning(disable:4996 4100)")
	p.Line(0, "#endif")
	p.Blank()
	p.Line(0, `#include "rapidjson/document.h"`)
	p.Line(0, `#include "rapidjson/stringbuffer.h"`)
	p.Line(0, `#include "rapidjson/writer.h"`)
	p.Blank()
	p.Line(0, "namespace %s", meta.Namespace)
	p.Line(0, "{")

	for _, o := range g.enums() {
		g.enumTable(p, o)
	}

	classes := g.classes()
	runtimeHelpers(p)
	if len(classes) > 0 {
		forwardTemplates(p, classes)
	}
	for _, o := range classes {
		g.serializer(p, o)
	}
	for _, o := range classes {
		g.deserializer(p, o)
	}

	p.Blank()
	p.Line(0, "} // End of namespace:%s", meta.Namespace)
	return p
}
