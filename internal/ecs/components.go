package ecs

import (
	"slices"

	"github.com/vovakirdan/runes/internal/core"
	"github.com/vovakirdan/runes/internal/gesture"
)

// Move holds kinematic state and steering limits.
type Move struct {
	Position        core.Vec2
	Velocity        core.Vec2
	MaxSpeed        float64
	MaxAcceleration float64
	Radius          float64   // separation radius
	Size            core.Vec2 // visual bounds
	Target          EntityID  // current steering target, NoEntity when idle
	Frozen          float64   // seconds left without integration
	Removed         bool      // set once the owner is queued for removal
}

// Bounds returns the axis-aligned box around the position.
func (m *Move) Bounds() core.Rect {
	return core.RectAround(m.Position, m.Size)
}

// Health is a non-negative point counter with an optional cap.
type Health struct {
	points int
	max    int
}

// NewHealth returns full health with the given points as cap.
func NewHealth(points int) Health {
	points = max(points, 0)
	return Health{points: points, max: points}
}

func (h *Health) Points() int { return h.points }
func (h *Health) Max() int    { return h.max }

// Decrease removes n points, stopping at zero, and returns the new value.
func (h *Health) Decrease(n int) int {
	h.points = max(h.points-n, 0)
	return h.points
}

// Increase adds n points up to the cap and returns the new value.
func (h *Health) Increase(n int) int {
	h.points += n
	if h.max > 0 && h.points > h.max {
		h.points = h.max
	}
	h.points = max(h.points, 0)
	return h.points
}

// Set overwrites the points, clamped at zero.
func (h *Health) Set(n int) {
	h.points = max(n, 0)
}

// Mana is a non-negative resource. A regenerating holder gains one point
// per elapsed second.
type Mana struct {
	points      int
	max         int
	Regenerates bool
	elapsed     float64
}

// NewMana returns a mana pool. A zero cap means unbounded.
func NewMana(points, cap int, regenerates bool) Mana {
	m := Mana{max: max(cap, 0), Regenerates: regenerates}
	m.Set(points)
	return m
}

func (m *Mana) Points() int { return m.points }
func (m *Mana) Max() int    { return m.max }

// Set overwrites the points, clamped to [0, cap].
func (m *Mana) Set(n int) {
	n = max(n, 0)
	if m.max > 0 {
		n = min(n, m.max)
	}
	m.points = n
}

// Add grants n points within the cap and returns the new value.
func (m *Mana) Add(n int) int {
	m.Set(m.points + n)
	return m.points
}

// Spend removes n points if they are available.
func (m *Mana) Spend(n int) bool {
	if n < 0 || n > m.points {
		return false
	}
	m.points -= n
	return true
}

// Tick advances the regeneration clock and returns the points gained.
func (m *Mana) Tick(dt float64) int {
	if !m.Regenerates || dt <= 0 {
		return 0
	}
	m.elapsed += dt
	gained := 0
	for m.elapsed >= 1 {
		m.elapsed--
		before := m.points
		m.Add(1)
		gained += m.points - before
	}
	return gained
}

// Score is the point value an entity is worth.
type Score struct {
	Points int
}

// Gesture marks an enemy with the gesture that hits it.
type Gesture struct {
	ID     gesture.ID
	Parent EntityID
}

// MarkerRef points from an enemy to its current gesture marker.
type MarkerRef struct {
	Marker EntityID
}

// Timer counts whole seconds up or down.
type Timer struct {
	Current   float64
	Countdown bool
	sinceTick float64
}

// Tick advances the timer and reports whether its value changed.
func (t *Timer) Tick(dt float64) bool {
	t.sinceTick += dt
	changed := false
	for t.sinceTick >= 1 {
		t.sinceTick--
		if t.Countdown {
			if t.Current > 0 {
				t.Current = max(t.Current-1, 0)
				changed = true
			}
		} else {
			t.Current++
			changed = true
		}
	}
	return changed
}

// Expired reports whether a countdown reached zero.
func (t *Timer) Expired() bool {
	return t.Countdown && t.Current <= 0
}

// EnemyType is the immutable descriptor shared by all enemies of a kind.
type EnemyType struct {
	Name             string
	Health           int
	Speed            float64
	Acceleration     float64
	Difficulty       int
	Score            int
	Gestures         []gesture.ID
	DisablesPowerUps []string
}

// Disables reports whether enemies of this type block the power-up kind.
func (e *EnemyType) Disables(kind string) bool {
	return slices.Contains(e.DisablesPowerUps, kind)
}

// PowerUp marks an active power-up entity.
type PowerUp struct {
	Kind   string
	Radius float64
	Shield bool // enemies reaching the line are absorbed while active
}

// DropTier is the rarity of a dropped mana resource.
type DropTier uint8

const (
	DropCommon DropTier = iota
	DropRare
	DropEpic
)

// String returns a human-readable name for the tier.
func (t DropTier) String() string {
	switch t {
	case DropRare:
		return "rare"
	case DropEpic:
		return "epic"
	default:
		return "common"
	}
}

// Drop is mana left behind by a defeated enemy.
type Drop struct {
	Mana int
	Tier DropTier
}

// Combo tracks consecutive kills and the resulting score multiplier.
type Combo struct {
	Kills      int
	Multiplier float64
}

// Visual is the presentation handle of an entity.
type Visual struct {
	Handle uint64
}
