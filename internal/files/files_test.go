package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CallMeChewy/Finder/internal/errors"
)

func writeFile(t *testing.T, root, rel string, content []byte) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o644))
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "b.go", []byte("package b"))
	writeFile(t, root, "a.go", []byte("package a"))
	writeFile(t, root, "sub/c.go", []byte("package c"))
	writeFile(t, root, "sub/d.txt", []byte("text"))
	writeFile(t, root, "vendor/e.go", []byte("package e"))

	t.Run("include_and_exclude_with_deterministic_order", func(t *testing.T) {
		paths, err := Resolve(root, []string{"**/*.go"}, []string{"vendor/**"}, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.go", "b.go", "sub/c.go"}, paths)
	})

	t.Run("multiple_includes", func(t *testing.T) {
		paths, err := Resolve(root, []string{"*.go", "**/*.txt"}, nil, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.go", "b.go", "sub/d.txt"}, paths)
	})

	t.Run("size_cap", func(t *testing.T) {
		writeFile(t, root, "big.go", make([]byte, 100))
		paths, err := Resolve(root, []string{"big.go"}, nil, 50)
		var noFiles *errors.NoFilesError
		require.ErrorAs(t, err, &noFiles)
		assert.Empty(t, paths)
	})

	t.Run("no_matches_is_structured_error", func(t *testing.T) {
		_, err := Resolve(root, []string{"**/*.rs"}, nil, 0)
		var noFiles *errors.NoFilesError
		require.ErrorAs(t, err, &noFiles)
		assert.Equal(t, []string{"**/*.rs"}, noFiles.Patterns)
	})
}

func TestReadAll(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "good.txt", []byte("hello\nworld\n"))
	writeFile(t, root, "binary.bin", []byte{'x', 0, 'y'})
	writeFile(t, root, "latin1.txt", []byte{'c', 0xE9, 't', 'e'})

	inputs := ReadAll(root, []string{"good.txt", "binary.bin", "latin1.txt", "missing.txt"})
	require.Len(t, inputs, 4)

	assert.Equal(t, "good.txt", inputs[0].Path)
	assert.NoError(t, inputs[0].Err)
	assert.Equal(t, "hello\nworld\n", inputs[0].Text)

	assert.Error(t, inputs[1].Err, "NUL byte marks binary content")
	assert.Error(t, inputs[2].Err, "non-UTF-8 text is reported, not crashed on")
	assert.Error(t, inputs[3].Err, "missing file becomes a skip, not a failure")
}
