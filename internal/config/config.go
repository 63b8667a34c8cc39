// Package config provides YAML-based game configuration loading and
// difficulty management for the lane-defense simulation.
package config

import (
	"github.com/vovakirdan/runes/internal/gesture"
)

// GameConfig contains all tunable values of a session.
type GameConfig struct {
	Arena      ArenaConfig          `yaml:"arena"`
	Recognizer RecognizerConfig     `yaml:"recognizer"`
	Gestures   []gesture.Definition `yaml:"gestures"`
	Enemies    []EnemyConfig        `yaml:"enemies"`
	Avatar     string               `yaml:"avatar"`
	Avatars    []AvatarConfig       `yaml:"avatars"`
	PowerUps   []PowerUpConfig      `yaml:"power_ups"`
	Mana       ManaConfig           `yaml:"mana"`
	Combat     CombatConfig         `yaml:"combat"`
	Units      UnitConfig           `yaml:"units"`
	Endless    EndlessConfig        `yaml:"endless"`
}

// ArenaConfig defines the playfield in arena units (y grows upwards).
type ArenaConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Lanes          int     `yaml:"lanes"`
	SpawnOffset    float64 `yaml:"spawn_offset"`     // distance below the top edge as a ratio of height
	EndPointY      float64 `yaml:"end_point_y"`      // centre of the defended line
	EndPointHeight float64 `yaml:"end_point_height"` // thickness of the defended line
	EnemyWidth     float64 `yaml:"enemy_width"`
	EnemyHeight    float64 `yaml:"enemy_height"`
	MarkerOffset   float64 `yaml:"marker_offset"` // gesture marker distance above its enemy
}

// RecognizerConfig tunes the stroke recognizer.
type RecognizerConfig struct {
	gesture.Params `yaml:",inline"`
	Circle         gesture.CircleParams `yaml:"circle"`
}

// EnemyConfig describes one enemy type.
type EnemyConfig struct {
	Name             string       `yaml:"name"`
	Health           int          `yaml:"health"`
	Speed            float64      `yaml:"speed"`
	Acceleration     float64      `yaml:"acceleration"`
	Difficulty       int          `yaml:"difficulty"`
	Score            int          `yaml:"score"`
	Gestures         []gesture.ID `yaml:"gestures"`
	DisablesPowerUps []string     `yaml:"disables_power_ups,omitempty"`
}

// AvatarConfig describes a playable hero.
type AvatarConfig struct {
	Name      string   `yaml:"name"`
	Title     string   `yaml:"title"`
	Health    int      `yaml:"health"`
	ManaUnits int      `yaml:"mana_units"`
	PowerUps  []string `yaml:"power_ups"`
}

// PowerUpConfig holds the numbers behind a power-up kind.
type PowerUpConfig struct {
	Kind      string  `yaml:"kind"`
	ManaUnits int     `yaml:"mana_units"`
	Duration  float64 `yaml:"duration,omitempty"` // seconds, 0 for instant effects
	Radius    float64 `yaml:"radius,omitempty"`   // area of effect around the activation point
	Amount    int     `yaml:"amount,omitempty"`   // damage or healing
}

// ManaConfig defines the mana economy.
type ManaConfig struct {
	PerUnit      int     `yaml:"per_unit"`
	StartUnits   int     `yaml:"start_units"`
	Regenerates  bool    `yaml:"regenerates"`
	DropMin      int     `yaml:"drop_min"`
	DropMax      int     `yaml:"drop_max"`
	DropLifetime float64 `yaml:"drop_lifetime"`
	RareChance   float64 `yaml:"rare_chance"`
	EpicChance   float64 `yaml:"epic_chance"`
	DropSize     float64 `yaml:"drop_size"`
}

// CombatConfig defines damage and scoring.
type CombatConfig struct {
	HitDamage  int     `yaml:"hit_damage"`
	LineDamage int     `yaml:"line_damage"`
	ComboStep  float64 `yaml:"combo_step"`
	ComboMax   float64 `yaml:"combo_max"`
	Separation float64 `yaml:"separation"` // weight of the separation steering term
}

// UnitConfig describes player units summoned onto the field.
type UnitConfig struct {
	Speed        float64 `yaml:"speed"`
	Acceleration float64 `yaml:"acceleration"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
}

// EndlessConfig drives generated waves.
type EndlessConfig struct {
	TargetDifficulty int              `yaml:"target_difficulty"`
	LowWater         int              `yaml:"low_water"`
	SpawnInterval    float64          `yaml:"spawn_interval"`
	Roster           []string         `yaml:"roster"`
	Difficulty       DifficultyConfig `yaml:"difficulty"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier      float64 `yaml:"speed_multiplier"`      // added to enemy speed at max difficulty
	DifficultyMultiplier float64 `yaml:"difficulty_multiplier"` // added to wave target difficulty at max difficulty
	IntervalReduction    float64 `yaml:"interval_reduction"`    // fraction of the spawn interval removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// EnemyByName returns the enemy type with the given name.
func (c GameConfig) EnemyByName(name string) (EnemyConfig, bool) {
	for _, e := range c.Enemies {
		if e.Name == name {
			return e, true
		}
	}
	return EnemyConfig{}, false
}

// AvatarByName returns the avatar with the given name.
func (c GameConfig) AvatarByName(name string) (AvatarConfig, bool) {
	for _, a := range c.Avatars {
		if a.Name == name {
			return a, true
		}
	}
	return AvatarConfig{}, false
}

// SelectedAvatar returns the configured avatar, falling back to the first.
func (c GameConfig) SelectedAvatar() AvatarConfig {
	if a, ok := c.AvatarByName(c.Avatar); ok {
		return a
	}
	if len(c.Avatars) > 0 {
		return c.Avatars[0]
	}
	return AvatarConfig{}
}

// PowerUp returns the numbers for a power-up kind.
func (c GameConfig) PowerUp(kind string) (PowerUpConfig, bool) {
	for _, p := range c.PowerUps {
		if p.Kind == kind {
			return p, true
		}
	}
	return PowerUpConfig{}, false
}
