package translate

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// LoadGlossary reads a TOML glossary for the static provider. Each table
// is a target language mapping source text to translated text:
//
//	[en]
//	"こんにちは" = "hello"
func LoadGlossary(path string) (map[string]map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read glossary: %w", err)
	}
	table := make(map[string]map[string]string)
	if err := toml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse glossary %s: %w", path, err)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("glossary %s defines no languages", path)
	}
	return table, nil
}
