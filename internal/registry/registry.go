// Package registry provides a global registry for power-up factories.
// Power-ups register themselves in init() functions, allowing the engine
// to activate them by kind without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/runes/internal/core"
	"github.com/vovakirdan/runes/internal/ecs"
)

// Arena is the part of the simulation a power-up may act on.
type Arena interface {
	// SpawnAttractor places a player-side point enemies steer towards.
	SpawnAttractor(kind string, at core.Vec2, radius, seconds float64) ecs.EntityID

	// StartShield absorbs line breaches for the given time.
	StartShield(kind string, seconds float64) ecs.EntityID

	// EnemiesWithin returns live enemies whose centre lies inside the circle.
	EnemiesWithin(at core.Vec2, radius float64) []ecs.EntityID

	// DamageEnemy removes health and reports whether the enemy died.
	DamageEnemy(id ecs.EntityID, amount int) bool

	// FreezeEnemy stops an enemy for the given time.
	FreezeEnemy(id ecs.EntityID, seconds float64)

	// HealPlayer restores health and returns the new value.
	HealPlayer(amount int) int

	// SpawnPlayerUnitWave places one player unit per lane and returns the count.
	SpawnPlayerUnitWave() int
}

// Activation carries where and how strongly a power-up fires.
type Activation struct {
	Position core.Vec2
	Radius   float64
	Duration float64
	Amount   int
}

// PowerUp is an ability the player can trigger for mana.
type PowerUp interface {
	// Kind returns the unique identifier, e.g. "darkVortex".
	Kind() string

	// Title returns a human-readable name for display.
	Title() string

	// Activate applies the effect.
	Activate(a Arena, act Activation)
}

// Info contains metadata about a registered power-up.
type Info struct {
	Kind  string
	Title string
}

// Factory is a function that creates a new instance of a power-up.
type Factory func() PowerUp

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a power-up factory to the registry.
// Panics if a power-up with the same kind is already registered.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[kind]; exists {
		panic(fmt.Sprintf("registry: power-up %q already registered", kind))
	}

	factories[kind] = f
	titles[kind] = f().Title()
}

// List returns information about all registered power-ups, sorted by kind.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for kind := range factories {
		result = append(result, Info{
			Kind:  kind,
			Title: titles[kind],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Kind < result[j].Kind
	})

	return result
}

// Create instantiates a power-up by its kind.
func Create(kind string) (PowerUp, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[kind]
	if !ok {
		return nil, fmt.Errorf("registry: unknown power-up %q", kind)
	}

	return f(), nil
}

// Title returns the display name of a kind, or the kind itself.
func Title(kind string) string {
	mu.RLock()
	defer mu.RUnlock()

	if t, ok := titles[kind]; ok {
		return t
	}
	return kind
}

// Exists checks if a power-up with the given kind is registered.
func Exists(kind string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[kind]
	return ok
}
