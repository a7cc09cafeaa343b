package cmd

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/createdom/internal/diag"
)

func TestLegacyArgs(ttt *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "subcommand untouched", in: []string{"generate", "s.csv", "--cpp"}, want: []string{"generate", "s.csv", "--cpp"}},
		{name: "bare schema", in: []string{"Scene.CSV", "out", "-CPP", "-typescript"}, want: []string{"generate", "Scene.CSV", "out", "--cpp", "--typescript"}},
		{name: "short flags kept", in: []string{"s.csv", "-t", "A"}, want: []string{"generate", "s.csv", "-t", "A"}},
		{name: "empty", in: nil, want: []string{}},
	}
	for _, tt := range tests {
		ttt.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, legacyArgs(tt.in))
		})
	}
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLevel("debug"))
	require.Equal(t, slog.LevelWarn, parseLevel("WARN"))
	require.Equal(t, diag.LevelTrace, parseLevel("trace"))
	require.Panics(t, func() { parseLevel("loud") })
}
