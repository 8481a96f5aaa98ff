package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CallMeChewy/Finder/internal/config"
	"github.com/CallMeChewy/Finder/internal/errors"
	"github.com/CallMeChewy/Finder/internal/formula"
	"github.com/CallMeChewy/Finder/internal/phrase"
)

func TestParsePhraseFlags(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		bindings, err := parsePhraseFlags([]string{"A=import", "b=raise error"})
		require.NoError(t, err)
		require.Len(t, bindings, 2)
		assert.Equal(t, phrase.Binding{Variable: 'A', Text: "import"}, bindings[0])
		assert.Equal(t, phrase.Binding{Variable: 'B', Text: "raise error"}, bindings[1])
	})

	t.Run("text_may_contain_equals", func(t *testing.T) {
		bindings, err := parsePhraseFlags([]string{"A=x == y"})
		require.NoError(t, err)
		assert.Equal(t, "x == y", bindings[0].Text)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := parsePhraseFlags([]string{"noequals"})
		assert.Error(t, err)

		_, err = parsePhraseFlags([]string{"G=text"})
		assert.Error(t, err)
	})
}

func TestMarkCaseSensitive(t *testing.T) {
	cfg := config.Default()
	cfg.Phrases = []phrase.Binding{
		{Variable: 'A', Text: "import"},
		{Variable: 'B', Text: "Error"},
	}
	markCaseSensitive(cfg, []string{"b", "Z"})
	assert.False(t, cfg.Phrases[0].CaseSensitive)
	assert.True(t, cfg.Phrases[1].CaseSensitive)
}

func TestExitCodeFor(t *testing.T) {
	_, parseErr := formula.Parse("(A")
	require.Error(t, parseErr)
	assert.Equal(t, exitFormula, exitCodeFor(parseErr))

	invalid := &errors.FormulaInvalidError{}
	assert.Equal(t, exitFormula, exitCodeFor(invalid))

	assert.Equal(t, exitUsage, exitCodeFor(os.ErrPermission))
}

func TestRunSearchEndToEnd(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "f1.txt"), []byte("import os\nclass X:\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "f2.txt"), []byte("import sys\n"), 0o644))

	cfg := config.Default()
	cfg.Phrases = []phrase.Binding{{Variable: 'A', Text: "import"}}
	cfg.Search.Formula = "A"

	result, err := runSearch(context.Background(), cfg, root)
	require.NoError(t, err)
	require.Len(t, result.Matches, 2)
	assert.Equal(t, "f1.txt", result.Matches[0].File)
	assert.Equal(t, 1, result.Matches[0].SequenceIndex)
	assert.Equal(t, "import os", result.Matches[0].Text)
	assert.True(t, result.Matches[0].FirstOccurrence)
	assert.Equal(t, "f2.txt", result.Matches[1].File)
}

func TestRunSearchAutoFormula(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("alpha beta\nalpha\n"), 0o644))

	cfg := config.Default()
	cfg.Phrases = []phrase.Binding{
		{Variable: 'A', Text: "alpha"},
		{Variable: 'B', Text: "beta"},
	}

	// No formula configured: bound variables are ANDed together.
	result, err := runSearch(context.Background(), cfg, root)
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "alpha beta", result.Matches[0].Text)
}

func TestRunSearchNoPhrases(t *testing.T) {
	cfg := config.Default()
	_, err := runSearch(context.Background(), cfg, t.TempDir())
	var noPhrases *errors.NoPhrasesError
	require.ErrorAs(t, err, &noPhrases)
}

func TestAppCommandWiring(t *testing.T) {
	app := newApp()
	names := make(map[string]bool)
	for _, cmd := range app.Commands {
		names[cmd.Name] = true
	}
	for _, want := range []string{"search", "validate", "examples", "serve", "watch"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}
