package emit

import (
	"strconv"
	"strings"

	"github.com/cmmoran/createdom/internal/diag"
	"github.com/cmmoran/createdom/internal/model"
)

// EnumValues numbers the enumerators of o the way a C compiler does: an
// explicit integer default sets the value, every other enumerator is one more
// than its predecessor. Defaults that are not integers are reported and
// ignored.
func EnumValues(o *model.Object, r diag.Reporter) []int64 {
	out := make([]int64, len(o.Fields))
	next := int64(0)
	for i := range o.Fields {
		e := &o.Fields[i]
		if e.Default != "" {
			n, err := strconv.ParseInt(strings.TrimSpace(e.Default), 0, 64)
			if err != nil {
				r.Warnf(o.Name, e.Name, "enumerator value %q is not an integer; using %d", e.Default, next)
			} else {
				next = n
			}
		}
		out[i] = next
		next++
	}
	return out
}
