package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/createdom/internal/emit"
)

func TestWriteIfChanged(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, false, nil)
	files := []emit.File{
		{Name: "a.h", Target: "cpp", Content: []byte("one\n")},
		{Name: "sub/b.ts", Target: "typescript", Content: []byte("two\n")},
	}

	res := w.Write(files)
	require.Len(t, res, 2)
	require.Equal(t, Created, res[0].Status)
	require.Equal(t, Created, res[1].Status)
	require.Equal(t, filepath.Join(dir, "sub", "b.ts"), res[1].Path)
	require.Equal(t, Sum([]byte("two\n")), res[1].Sum)

	data, err := os.ReadFile(filepath.Join(dir, "sub", "b.ts"))
	require.NoError(t, err)
	require.Equal(t, "two\n", string(data))

	res = w.Write(files)
	require.Equal(t, Unchanged, res[0].Status)

	files[0].Content = []byte("changed\n")
	res = w.Write(files)
	require.Equal(t, Updated, res[0].Status)
	require.Equal(t, Unchanged, res[1].Status)

	res = NewWriter(dir, true, nil).Write(files)
	require.Equal(t, Updated, res[1].Status)
}

func TestWriteFailureIsPerFile(t *testing.T) {
	dir := t.TempDir()
	// a regular file where a directory is needed
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blocked"), nil, 0o644))

	res := NewWriter(dir, false, nil).Write([]emit.File{
		{Name: "blocked/x.py", Content: []byte("x")},
		{Name: "ok.py", Content: []byte("y")},
	})
	require.Equal(t, Failed, res[0].Status)
	require.Error(t, res[0].Err)
	require.Equal(t, Created, res[1].Status)
	require.NoError(t, res[1].Err)
}

func TestDiff(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "same.txt"), []byte("same\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old.txt"), []byte("old\n"), 0o644))

	w := NewWriter(dir, false, nil)
	diffs, err := w.Diff([]emit.File{
		{Name: "same.txt", Content: []byte("same\n")},
		{Name: "old.txt", Content: []byte("new\n")},
		{Name: "missing.txt", Content: []byte("fresh\n")},
	})
	require.NoError(t, err)
	require.Len(t, diffs, 3)

	require.True(t, diffs[0].Exists)
	require.Empty(t, diffs[0].Diff)
	require.True(t, diffs[1].Exists)
	require.Contains(t, diffs[1].Diff, "old")
	require.Contains(t, diffs[1].Diff, "new")
	require.False(t, diffs[2].Exists)
	require.NotEmpty(t, diffs[2].Diff)

	_, err = os.Stat(filepath.Join(dir, "missing.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "created", Created.String())
	require.Equal(t, "failed", Failed.String())
	require.Equal(t, "unknown", Status(42).String())
}
