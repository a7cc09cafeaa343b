package parser

import (
	"strings"

	"github.com/cmmoran/createdom/internal/model"
)

// selector builds the view filter for the configured exclusions.
func selector(opts *Options) model.Selector {
	var sel model.Selector
	if len(opts.ExcludeTypes) > 0 {
		sel.Object = func(o *model.Object) bool {
			return !shouldOmitObject(o, opts)
		}
	}
	if len(opts.ExcludeEngineTags) > 0 {
		sel.Field = func(_ *model.Object, f *model.Field) bool {
			return !shouldOmitField(f, opts)
		}
	}
	return sel
}

// shouldOmitObject reports whether o is named in ExcludeTypes.
func shouldOmitObject(o *model.Object, opts *Options) bool {
	for _, ex := range opts.ExcludeTypes {
		if strings.EqualFold(ex, o.Name) {
			return true
		}
	}
	return false
}

// shouldOmitField reports whether any fragment of the member's engine-specific
// column matches one of ExcludeEngineTags.
func shouldOmitField(f *model.Field, opts *Options) bool {
	if f.EngineSpecific == "" {
		return false
	}
	for _, want := range opts.ExcludeEngineTags {
		if containsTagPart(f.EngineSpecific, want) {
			return true
		}
	}
	return false
}

// containsTagPart splits a tag value on common delimiters and reports whether
// any fragment matches the expected value.
func containsTagPart(tagVal, expected string) bool {
	if tagVal == "" {
		return false
	}

	for _, part := range strings.FieldsFunc(tagVal, func(r rune) bool {
		return r == ';' || r == ',' || r == ' ' || r == '|'
	}) {
		if strings.EqualFold(part, expected) {
			return true
		}
	}

	return false
}
