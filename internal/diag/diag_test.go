package diag

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollectorLogsAndKeeps(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))
	c := NewCollector(l)

	r := Reporter{Sink: c, Source: "cpp"}
	r.Infof("Shape", "", "note %d", 1)
	r.Warnf("Shape", "color", "unknown type %q", "Colour")
	r.Errorf("", "", "no namespace")

	require.Len(t, c.All(), 3)
	require.Equal(t, 3, c.Count(Info))
	require.Equal(t, 2, c.Count(Warning))
	require.Equal(t, 1, c.Count(Error))

	d := c.All()[1]
	require.Equal(t, Warning, d.Severity)
	require.Equal(t, "cpp", d.Source)
	require.Equal(t, `unknown type "Colour"`, d.Message)
	require.Equal(t, `warning [cpp] Shape.color: unknown type "Colour"`, d.String())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[1], `"level":"WARN"`)
	require.Contains(t, lines[1], `"field":"color"`)
	require.Contains(t, lines[2], `"level":"ERROR"`)
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Severity: Info, Row: 12, Message: "skipped"}
	require.Equal(t, "info row 12: skipped", d.String())

	text, err := Error.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "error", string(text))
}

func TestNilSinks(t *testing.T) {
	Reporter{}.Warnf("A", "", "dropped")
	Discard.Report(Diagnostic{Message: "dropped"})

	c := NewCollector(nil)
	c.Report(Diagnostic{Severity: Warning})
	require.Equal(t, 1, c.Count(Warning))
}
