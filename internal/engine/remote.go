package engine

import (
	"github.com/vovakirdan/runes/internal/core"
	"github.com/vovakirdan/runes/internal/ecs"
	"github.com/vovakirdan/runes/internal/gesture"
)

// EnemyView is a read-only description of a live enemy.
type EnemyView struct {
	ID        ecs.EntityID
	Type      string
	Position  core.Vec2
	Size      core.Vec2
	Health    int
	MaxHealth int
	Gesture   gesture.ID
	Frozen    bool
}

// Enemies lists live enemies in spawn order.
func (e *Engine) Enemies() []EnemyView {
	ids := e.store.Query(ecs.TypeEnemy)
	out := make([]EnemyView, 0, len(ids))
	for _, id := range ids {
		if v, ok := e.Enemy(id); ok {
			out = append(out, v)
		}
	}
	return out
}

// Enemy describes one live enemy.
func (e *Engine) Enemy(id ecs.EntityID) (EnemyView, bool) {
	if !e.store.IsLive(id) {
		return EnemyView{}, false
	}
	if t, _ := e.store.Type(id); t != ecs.TypeEnemy {
		return EnemyView{}, false
	}
	v := EnemyView{ID: id}
	if et, ok := e.store.EnemyType(id); ok {
		v.Type = et.Name
	}
	if m, ok := e.store.Move(id); ok {
		v.Position, v.Size, v.Frozen = m.Position, m.Size, m.Frozen > 0
	}
	if h, ok := e.store.Health(id); ok {
		v.Health, v.MaxHealth = h.Points(), h.Max()
	}
	if ref, ok := e.store.MarkerRef(id); ok {
		if g, ok := e.store.Gesture(ref.Marker); ok && e.store.IsLive(ref.Marker) {
			v.Gesture = g.ID
		}
	}
	return v, true
}

// SpawnEnemy places an enemy outside the wave schedule, as a remote peer or
// a power-up would.
func (e *Engine) SpawnEnemy(name string, pos core.Vec2) (ecs.EntityID, error) {
	return e.spawnEnemy(name, pos)
}

// RemoveEntity queues any live entity for removal without scoring it.
func (e *Engine) RemoveEntity(id ecs.EntityID) bool {
	if !e.store.IsLive(id) {
		return false
	}
	if t, _ := e.store.Type(id); t == ecs.TypeEnemy {
		e.removeEnemy(id, RemovalRemote)
		return true
	}
	if m, ok := e.store.Move(id); ok {
		m.Removed = true
	}
	return e.store.Remove(id)
}

// SetEnemyGesture replaces the marker of a live enemy.
func (e *Engine) SetEnemyGesture(id ecs.EntityID, g gesture.ID) bool {
	if !e.store.IsLive(id) || !e.recognizer.Matcher().Has(g) {
		return false
	}
	if _, ok := e.store.EnemyType(id); !ok {
		return false
	}
	if ref, ok := e.store.MarkerRef(id); ok {
		if cur, ok := e.store.Gesture(ref.Marker); ok && cur.ID == g && e.store.IsLive(ref.Marker) {
			return true
		}
		e.store.Remove(ref.Marker)
	}
	return e.attachMarker(id, g) != ecs.NoEntity
}

// SetPosition moves a live entity.
func (e *Engine) SetPosition(id ecs.EntityID, pos core.Vec2) bool {
	m, ok := e.store.Move(id)
	if !ok || !e.store.IsLive(id) {
		return false
	}
	m.Position = pos
	return true
}

// SetPlayerHealth overwrites the player's health.
func (e *Engine) SetPlayerHealth(points int) {
	if h, ok := e.store.Health(e.player); ok {
		h.Set(points)
	}
}

// SetPlayerMana overwrites the player's mana.
func (e *Engine) SetPlayerMana(points int) {
	if m, ok := e.store.Mana(e.player); ok {
		m.Set(points)
	}
}

// Settle drains pending removals and syncs visuals without advancing time.
// Fields driven only by remote updates call it instead of Update.
func (e *Engine) Settle() {
	e.store.Drain(e.teardown)
	e.syncVisuals()
}
