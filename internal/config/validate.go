package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/runes/internal/ecs"
	"github.com/vovakirdan/runes/internal/gesture"
	"github.com/vovakirdan/runes/internal/levels"
)

// Validate checks the configuration for values the simulation cannot run with.
func (c GameConfig) Validate() error {
	var errs []error
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		errs = append(errs, fmt.Errorf("arena size must be positive, got %vx%v", c.Arena.Width, c.Arena.Height))
	}
	if c.Arena.Lanes < 1 {
		errs = append(errs, fmt.Errorf("arena needs at least one lane, got %d", c.Arena.Lanes))
	}
	if err := c.Recognizer.Params.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(c.Gestures) == 0 {
		errs = append(errs, gesture.ErrNoTemplates)
	}

	known := make(map[gesture.ID]bool, len(c.Gestures))
	for _, g := range c.Gestures {
		known[g.ID] = true
	}
	if len(c.Enemies) == 0 {
		errs = append(errs, errors.New("no enemy types defined"))
	}
	for _, e := range c.Enemies {
		if e.Health <= 0 || e.Difficulty <= 0 {
			errs = append(errs, fmt.Errorf("enemy %q needs positive health and difficulty", e.Name))
		}
		if len(e.Gestures) == 0 {
			errs = append(errs, fmt.Errorf("enemy %q has no gestures", e.Name))
		}
		for _, id := range e.Gestures {
			if !known[id] {
				errs = append(errs, fmt.Errorf("enemy %q uses unknown gesture %q", e.Name, id))
			}
		}
	}
	if c.Combat.HitDamage <= 0 {
		errs = append(errs, fmt.Errorf("combat hit_damage must be positive, got %d", c.Combat.HitDamage))
	}
	if c.Combat.LineDamage <= 0 {
		errs = append(errs, fmt.Errorf("combat line_damage must be positive, got %d", c.Combat.LineDamage))
	}
	if c.Combat.ComboStep < 0 {
		errs = append(errs, fmt.Errorf("combat combo_step must not be negative, got %v", c.Combat.ComboStep))
	}
	// combo_max 0 leaves the multiplier uncapped.
	if c.Combat.ComboMax < 0 || (c.Combat.ComboMax > 0 && c.Combat.ComboMax < 1) {
		errs = append(errs, fmt.Errorf("combat combo_max must be 0 or at least 1, got %v", c.Combat.ComboMax))
	}

	if len(c.Endless.Roster) == 0 {
		errs = append(errs, errors.New("endless roster is empty"))
	}
	for _, name := range c.Endless.Roster {
		if _, ok := c.EnemyByName(name); !ok {
			errs = append(errs, fmt.Errorf("endless roster names unknown enemy %q", name))
		}
	}

	if len(c.Avatars) == 0 {
		errs = append(errs, errors.New("no avatars defined"))
	}
	for _, a := range c.Avatars {
		if a.Health <= 0 {
			errs = append(errs, fmt.Errorf("avatar %q needs positive health", a.Name))
		}
		for _, kind := range a.PowerUps {
			if _, ok := c.PowerUp(kind); !ok {
				errs = append(errs, fmt.Errorf("avatar %q uses unknown power-up %q", a.Name, kind))
			}
		}
	}
	if c.Mana.PerUnit <= 0 {
		errs = append(errs, fmt.Errorf("mana per_unit must be positive, got %d", c.Mana.PerUnit))
	}
	if c.Mana.DropMin > c.Mana.DropMax {
		errs = append(errs, fmt.Errorf("mana drop_min %d exceeds drop_max %d", c.Mana.DropMin, c.Mana.DropMax))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Templates resolves the gesture definitions.
func (c GameConfig) Templates() ([]gesture.Template, error) {
	t, err := gesture.Templates(c.Gestures)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return t, nil
}

// Roster builds the shared enemy descriptors keyed by name.
func (c GameConfig) Roster() map[string]*ecs.EnemyType {
	out := make(map[string]*ecs.EnemyType, len(c.Enemies))
	for _, e := range c.Enemies {
		out[e.Name] = &ecs.EnemyType{
			Name:             e.Name,
			Health:           e.Health,
			Speed:            e.Speed,
			Acceleration:     e.Acceleration,
			Difficulty:       e.Difficulty,
			Score:            e.Score,
			Gestures:         append([]gesture.ID(nil), e.Gestures...),
			DisablesPowerUps: append([]string(nil), e.DisablesPowerUps...),
		}
	}
	return out
}

// EndlessRoster returns the generator roster for endless mode.
func (c GameConfig) EndlessRoster() []levels.Monster {
	out := make([]levels.Monster, 0, len(c.Endless.Roster))
	for _, name := range c.Endless.Roster {
		if e, ok := c.EnemyByName(name); ok {
			out = append(out, levels.Monster{Name: e.Name, Difficulty: e.Difficulty})
		}
	}
	return out
}
