package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	lex, err := Load(" ")
	require.NoError(t, err)
	require.Equal(t, Default(), lex)
}

func TestLoad_OverridesOnlyGivenCategories(t *testing.T) {
	path := writeFile(t, `
version: "chiro-2"
affirmatives:
  - "yes"
  - "absolutely"
`)
	lex, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "chiro-2", lex.Version)
	require.Equal(t, []string{"yes", "absolutely"}, lex.Affirmatives)
	require.Equal(t, Default().Negatives, lex.Negatives)
}

func TestLoadMatcher_UsesFileLists(t *testing.T) {
	path := writeFile(t, `
version: "v3"
affirmatives: ["absolutely"]
`)
	m, err := LoadMatcher(path)
	require.NoError(t, err)
	require.Equal(t, "v3", m.Version())
	require.True(t, m.LooksAffirmative("Absolutely, go ahead"))
	require.False(t, m.LooksAffirmative("yes"))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "read")
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeFile(t, "affirmatives: [unterminated")
	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse")
}

func TestLoadMatcher_InvalidContent(t *testing.T) {
	path := writeFile(t, "negatives: []\n")
	_, err := LoadMatcher(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid lexicon")
}

func TestLoadMatcher_WhitespaceOnlyPhrase(t *testing.T) {
	path := writeFile(t, "affirmatives: [\"   \"]\n")
	_, err := LoadMatcher(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid lexicon")
}
