package levels

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/levels.yaml
var defaultLevelsYAML []byte

// file is the YAML layout of a levels file.
type file struct {
	Levels []Level `yaml:"levels"`
}

// Parse decodes a levels file.
func Parse(data []byte) (*Set, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return NewSet(f.Levels)
}

// Default returns the built-in stages.
func Default() *Set {
	s, err := Parse(defaultLevelsYAML)
	if err != nil {
		panic(fmt.Sprintf("levels: embedded defaults are broken: %v", err))
	}
	return s
}

// Load loads the stage definitions.
// Search order: customPath -> ~/.runes/configs/levels.yaml -> ./configs/levels.yaml -> embedded default
func Load(customPath string) (*Set, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read levels %s: %w", customPath, err)
		}
		s, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse levels %s: %w", customPath, err)
		}
		return s, nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		if data, err := os.ReadFile(filepath.Join(home, ".runes", "configs", "levels.yaml")); err == nil {
			if s, err := Parse(data); err == nil {
				return s, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "levels.yaml")); err == nil {
		if s, err := Parse(data); err == nil {
			return s, nil
		}
	}

	return Default(), nil
}
