package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/createdom/internal/diag"
	"github.com/cmmoran/createdom/internal/emit"
	"github.com/cmmoran/createdom/internal/emit/emittest"
)

func TestProducesNothing(t *testing.T) {
	v, _ := emittest.View(t, emittest.Scene)
	c := diag.NewCollector(nil)
	files, err := New().Emit(v, c)
	require.ErrorIs(t, err, emit.ErrNotImplemented)
	require.Empty(t, files)
	require.Len(t, c.All(), 1)
	require.Equal(t, diag.Info, c.All()[0].Severity)
}
