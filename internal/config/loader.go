package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/runes/internal/levels"
)

// Load loads the game configuration.
// Search order: customPath -> ~/.runes/configs/game.yaml -> ./configs/game.yaml -> embedded default
func Load(customPath string) (GameConfig, error) {
	var cfg GameConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("game.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/game.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultGameYAML, &cfg); err != nil {
		return DefaultGameConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".runes", "configs", filename)
}

// ApplyPreset modifies the endless difficulty based on a preset.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Endless.Difficulty.Enabled = false
		return
	}
	cfg.Endless.Difficulty.Enabled = true
	cfg.Endless.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Endless.LowWater = max(cfg.Endless.LowWater, 1)
		cfg.Endless.SpawnInterval *= 1.25
	case DifficultyHard:
		cfg.Endless.TargetDifficulty += cfg.Endless.TargetDifficulty / 2
	}
}

// Paths names the files a session loads. Empty paths use the search chain.
type Paths struct {
	Config string
	Levels string
}

// Bundle is everything a session needs before its first frame.
type Bundle struct {
	Game   GameConfig
	Levels *levels.Set
}

// LoadAll reads the game configuration and the stage definitions
// concurrently, then validates them against each other.
func LoadAll(ctx context.Context, paths Paths) (Bundle, error) {
	var b Bundle
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		cfg, err := Load(paths.Config)
		if err != nil {
			return err
		}
		b.Game = cfg
		return nil
	})
	g.Go(func() error {
		set, err := levels.Load(paths.Levels)
		if err != nil {
			return err
		}
		b.Levels = set
		return nil
	})
	if err := g.Wait(); err != nil {
		return Bundle{}, err
	}
	if err := b.Game.Validate(); err != nil {
		return Bundle{}, err
	}
	if err := b.Levels.Validate(b.Game.Arena.Lanes, func(name string) bool {
		_, ok := b.Game.EnemyByName(name)
		return ok
	}); err != nil {
		return Bundle{}, fmt.Errorf("config: %w", err)
	}
	return b, nil
}
