package parser

import (
	"strconv"
	"strings"

	"github.com/cmmoran/createdom/internal/diag"
	"github.com/cmmoran/createdom/internal/model"
)

// Column positions shared by object and field rows.
const (
	colObject       = 0
	colMember       = 1
	colType         = 2
	colBase         = 3
	colEngine       = 4
	colFlags        = 5 // object rows: CLONE / ASSIGNMENT
	colDefault      = 5 // field rows
	colMin          = 6
	colMax          = 7
	colAlias        = 8
	colShortDesc    = 9
	colLongDesc     = 10
	protoTypePrefix = "PROTO:"
)

// RowKind says how the Builder classified a row.
type RowKind int

const (
	RowSkipped RowKind = iota
	RowDirective
	RowObject
	RowField
	RowEOF
)

func (k RowKind) String() string {
	switch k {
	case RowDirective:
		return "directive"
	case RowObject:
		return "object"
	case RowField:
		return "field"
	case RowEOF:
		return "eof"
	}
	return "skipped"
}

// Builder turns schema rows into a Model. Rows are fed one at a time with
// AddRow; Finish finalizes the last object and resolves the model.
type Builder struct {
	m       *model.Model
	current *objectBuilder
	sink    diag.Sink
	row     int
	ended   bool
	done    bool
}

// NewBuilder returns a Builder reporting recoverable problems to sink. A nil
// sink discards them.
func NewBuilder(sink diag.Sink) *Builder {
	if sink == nil {
		sink = diag.Discard
	}
	return &Builder{
		m:    &model.Model{},
		sink: sink,
	}
}

// AddRow classifies one row and applies it. Rows after an EOF directive or
// after Finish are ignored.
func (b *Builder) AddRow(args []string) RowKind {
	b.row++
	if b.ended || b.done || len(args) == 0 {
		return RowSkipped
	}
	first := args[colObject]
	if kind, ok := b.directive(first, args); ok {
		return kind
	}
	if first != "" {
		b.startObject(args)
		return RowObject
	}
	if arg(args, colMember) != "" {
		b.addField(args)
		return RowField
	}
	return RowSkipped
}

// Ended reports whether an EOF directive was seen.
func (b *Builder) Ended() bool {
	return b.ended
}

// Finish finalizes the in-progress object and runs the resolver. It is safe to
// call more than once; only the first call resolves.
func (b *Builder) Finish() *model.Model {
	if b.done {
		return b.m
	}
	b.done = true
	b.finalize()
	Resolve(b.m)
	return b.m
}

func (b *Builder) directive(name string, args []string) (RowKind, bool) {
	value, hasValue := "", len(args) > 1
	if hasValue {
		value = args[1]
	}
	switch strings.ToLower(name) {
	case "eof":
		b.ended = true
		return RowEOF, true
	case "objectname":
		// column header row
	case "filename":
		if hasValue {
			b.m.Info.Filename = value
		}
	case "namespace":
		if hasValue {
			b.m.Info.Namespace = value
		}
	case "pod":
		if hasValue {
			b.m.Info.PlainOldData = parseBool(value)
		}
	case "exportxml":
		if hasValue {
			b.m.Info.ExportXML = value
		}
	case "url":
		if hasValue {
			b.m.Info.URL = value
		}
	default:
		return RowSkipped, false
	}
	return RowDirective, true
}

func (b *Builder) startObject(args []string) {
	b.finalize()

	o := model.Object{
		Name:             args[colObject],
		KindName:         arg(args, colType),
		Base:             arg(args, colBase),
		EngineSpecific:   arg(args, colEngine),
		Alias:            arg(args, colAlias),
		ShortDescription: arg(args, colShortDesc),
		LongDescription:  arg(args, colLongDesc),
	}
	switch flags := arg(args, colFlags); {
	case strings.EqualFold(flags, "CLONE"):
		o.Clone = true
	case strings.EqualFold(flags, "ASSIGNMENT"):
		o.Assignment = true
	}
	if o.Base != "" {
		for i := range b.m.Objects {
			if b.m.Objects[i].Name == o.Base {
				b.m.Objects[i].Children = append(b.m.Objects[i].Children, o.Name)
			}
		}
	}
	b.current = &objectBuilder{obj: o}
}

func (b *Builder) addField(args []string) {
	raw := args[colMember]
	if b.current == nil {
		b.report(diag.Warning, "", raw, "member declared before any object; ignored")
		return
	}
	f, problem := parseMemberName(raw)
	if problem != "" {
		b.report(diag.Warning, b.current.obj.Name, f.Name, problem)
	}

	typ := arg(args, colType)
	if i := strings.IndexByte(typ, '!'); i >= 0 {
		typ = typ[:i]
		f.SerializeEnumAsInteger = true
	}
	if t := strings.TrimSuffix(typ, "*"); t != typ {
		typ = t
		f.IsPointer = true
	}
	f.Type = typ
	f.IsString = typ == "string"

	if base := arg(args, colBase); strings.HasPrefix(base, protoTypePrefix) {
		f.ProtoType = strings.TrimPrefix(base, protoTypePrefix)
	} else {
		f.InheritsFrom = base
	}
	f.EngineSpecific = arg(args, colEngine)
	f.Default = arg(args, colDefault)
	f.Min = arg(args, colMin)
	f.Max = arg(args, colMax)
	f.Alias = arg(args, colAlias)
	f.ShortDescription = arg(args, colShortDesc)
	f.LongDescription = arg(args, colLongDesc)

	b.current.add(f)
}

// finalize appends the in-progress object, if any, to the model.
func (b *Builder) finalize() {
	if b.current == nil {
		return
	}
	b.m.Objects = append(b.m.Objects, b.current.build())
	b.current = nil
}

func (b *Builder) report(sev diag.Severity, object, field, msg string) {
	b.sink.Report(diag.Diagnostic{
		Severity: sev,
		Source:   "parser",
		Row:      b.row,
		Object:   object,
		Field:    field,
		Message:  msg,
	})
}

// objectBuilder accumulates one object while its member rows are read.
type objectBuilder struct {
	obj    model.Object
	fields []model.Field
}

func (ob *objectBuilder) add(f model.Field) {
	ob.fields = append(ob.fields, f)
}

// build yields the finished object. The builder must not be used afterwards.
func (ob *objectBuilder) build() model.Object {
	o := ob.obj
	o.Fields = ob.fields
	return o
}

// parseMemberName strips the sigils of a member name column:
//
//	?name        optional
//	!name        optional for deserialization only
//	[name:Key]   map keyed by Key
//	name*        pointer
//	name[ name[] array
//
// A non-empty problem describes malformed input that was accepted anyway.
func parseMemberName(raw string) (f model.Field, problem string) {
	name := raw
sigils:
	for len(name) > 0 {
		switch name[0] {
		case '?':
			f.Optional = model.Optional
		case '!':
			f.Optional = model.OptionalDeserialize
		default:
			break sigils
		}
		name = name[1:]
	}

	if strings.HasPrefix(name, "[") {
		inner := name[1:]
		colon := strings.IndexByte(inner, ':')
		closing := strings.IndexByte(inner, ']')
		if colon < 0 || closing < colon {
			name = strings.TrimRight(inner, "]")
			problem = "malformed map member " + strconv.Quote(raw) + ", expected [name:KeyType]"
		} else {
			f.IsMap = true
			f.MapKeyType = inner[colon+1 : closing]
			name = inner[:colon] + inner[closing+1:]
		}
	}

	if i := strings.IndexAny(name, "*["); i > 0 {
		tail := name[i:]
		f.IsPointer = strings.Contains(tail, "*")
		f.IsArray = strings.Contains(tail, "[")
		name = name[:i]
	}
	f.Name = name
	return f, problem
}

// parseBool accepts a non-zero integer or "true".
func parseBool(s string) bool {
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return v != 0
	}
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

// arg returns args[i], or "" for an omitted trailing column.
func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
