package utils

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// DecodeTOMLFile decodes path over the values already present in v, so
// keys missing from the file keep their defaults.
func DecodeTOMLFile(path string, v any) error {
	meta, err := toml.DecodeFile(path, v)
	if err != nil {
		log.Warnf("TOML parsing error in %s: %v. Attempting partial recovery...", path, err)
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		log.Warnf("Ignoring unknown keys in %s: %v", path, undecoded)
	}
	return nil
}

// DecodeTOMLSections parses path into generic tables. It is the fallback
// when a file does not match the typed config, e.g. a string where an
// integer was expected.
func DecodeTOMLSections(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tables := make(map[string]any)
	if _, err := toml.Decode(string(data), &tables); err != nil {
		return nil, fmt.Errorf("no valid TOML in %s: %w", path, err)
	}
	return tables, nil
}

// Section returns the named table from decoded TOML data.
func Section(data map[string]any, name string) (map[string]any, bool) {
	section, ok := data[name].(map[string]any)
	return section, ok
}

// Int reads an integer key. TOML integers decode as int64.
func Int(data map[string]any, key string) (int, bool) {
	if val, ok := data[key].(int64); ok {
		return int(val), true
	}
	return 0, false
}

// String reads a string key.
func String(data map[string]any, key string) (string, bool) {
	val, ok := data[key].(string)
	return val, ok
}

// SaveTOMLFile encodes v into path, replacing any existing file.
func SaveTOMLFile(v any, path string) error {
	file, err := os.Create(path)
	if err != nil {
		log.Errorf("Failed to create file: %v", err)
		return err
	}
	defer file.Close()
	return toml.NewEncoder(file).Encode(v)
}
