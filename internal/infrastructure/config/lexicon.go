package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ersonp/lore-oracle/internal/domain/entities"
)

//go:embed lexicon.yaml
var defaultLexiconYAML []byte

// DefaultLexicon returns the built-in intent lexicon.
func DefaultLexicon() entities.IntentLexicon {
	lex, err := ParseLexicon(defaultLexiconYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded lexicon is invalid: %v", err))
	}
	return lex
}

// LoadLexicon reads an intent lexicon from a YAML file. An empty path
// returns the built-in lexicon.
func LoadLexicon(path string) (entities.IntentLexicon, error) {
	if path == "" {
		return DefaultLexicon(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return entities.IntentLexicon{}, fmt.Errorf("reading lexicon file: %w", err)
	}

	lex, err := ParseLexicon(data)
	if err != nil {
		return entities.IntentLexicon{}, fmt.Errorf("lexicon %s: %w", path, err)
	}
	return lex, nil
}

// ParseLexicon decodes a YAML lexicon and rejects empty or duplicate keys.
func ParseLexicon(data []byte) (entities.IntentLexicon, error) {
	var lex entities.IntentLexicon

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&lex); err != nil {
		return entities.IntentLexicon{}, fmt.Errorf("parsing lexicon: %w", err)
	}

	if len(lex.Intents) == 0 {
		return entities.IntentLexicon{}, fmt.Errorf("lexicon has no intents")
	}

	seen := make(map[entities.IntentKey]bool, len(lex.Intents))
	for _, g := range lex.Intents {
		if g.Key == "" {
			return entities.IntentLexicon{}, fmt.Errorf("intent without key")
		}
		if seen[g.Key] {
			return entities.IntentLexicon{}, fmt.Errorf("duplicate intent %q", g.Key)
		}
		seen[g.Key] = true
	}

	return lex, nil
}
