package lexicon

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML lexicon from path. Categories missing from the file keep
// their built-in lists, so a file may tune a single category. An empty path
// returns the built-in lexicon.
func Load(path string) (Lexicon, error) {
	lex := Default()
	path = strings.TrimSpace(path)
	if path == "" {
		return lex, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Lexicon{}, fmt.Errorf("lexicon: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return Lexicon{}, fmt.Errorf("lexicon: parse %q: %w", path, err)
	}
	return lex, nil
}

// LoadMatcher loads path and builds a validated Matcher from it.
func LoadMatcher(path string) (*Matcher, error) {
	lex, err := Load(path)
	if err != nil {
		return nil, err
	}
	m, err := NewMatcher(lex)
	if err != nil {
		return nil, fmt.Errorf("lexicon: %q: %w", path, err)
	}
	return m, nil
}
