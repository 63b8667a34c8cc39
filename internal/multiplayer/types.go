// Package multiplayer mirrors a remote peer's field into a local engine.
// Peers exchange deltas keyed by uuid; each side maps keys to its own
// entity ids and applies changes through the engine's store primitives.
package multiplayer

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/runes/internal/core"
	"github.com/vovakirdan/runes/internal/ecs"
	"github.com/vovakirdan/runes/internal/engine"
	"github.com/vovakirdan/runes/internal/gesture"
)

// PeerID identifies one side of a mirrored session.
type PeerID = uuid.UUID

// EnemyState is the replicated part of one enemy.
type EnemyState struct {
	Key      uuid.UUID  `yaml:"key"`
	Type     string     `yaml:"type"`
	Position core.Vec2  `yaml:"position"`
	Gesture  gesture.ID `yaml:"gesture"`
}

// Metadata is the replicated player state.
type Metadata struct {
	Health int `yaml:"health"`
	Mana   int `yaml:"mana"`
	Score  int `yaml:"score"`
	Level  int `yaml:"level"`
}

// Delta is one update from a peer. A full delta lists every enemy; enemies
// missing from it are removed.
type Delta struct {
	From    PeerID       `yaml:"from"`
	Tick    int          `yaml:"tick"`
	Full    bool         `yaml:"full"`
	Enemies []EnemyState `yaml:"enemies"`
	Removed []uuid.UUID  `yaml:"removed,omitempty"`
	Meta    *Metadata    `yaml:"meta,omitempty"`
}

// Field is the part of the engine a mirror drives.
type Field interface {
	Enemies() []engine.EnemyView
	Enemy(id ecs.EntityID) (engine.EnemyView, bool)
	SpawnEnemy(name string, pos core.Vec2) (ecs.EntityID, error)
	RemoveEntity(id ecs.EntityID) bool
	SetEnemyGesture(id ecs.EntityID, g gesture.ID) bool
	SetPosition(id ecs.EntityID, pos core.Vec2) bool
	SetPlayerHealth(points int)
	SetPlayerMana(points int)
	State() engine.State
}
