package engine

import (
	"github.com/vovakirdan/runes/internal/core"
	"github.com/vovakirdan/runes/internal/ecs"
)

// updateTimers regenerates player mana and expires timed entities.
func (e *Engine) updateTimers(dt float64) {
	if m, ok := e.store.Mana(e.player); ok {
		m.Tick(dt)
	}
	for _, id := range e.store.Registered(ecs.KindTimer) {
		t, ok := e.store.Timer(id)
		if !ok {
			continue
		}
		if t.Tick(dt) && t.Expired() {
			e.expire(id)
		}
	}
}

func (e *Engine) expire(id ecs.EntityID) {
	var pos core.Vec2
	if m, ok := e.store.Move(id); ok {
		m.Removed = true
		pos = m.Position
	}
	if !e.store.Remove(id) {
		return
	}
	t, _ := e.store.Type(id)
	e.presenter.PlayRemovalAnimation(pos, RemovalExpired, func() {})
	e.logger.Debug("timer expired", "id", id, "type", t.String())
}

// CollectDrop picks up the dropped mana under pos and reports whether any
// was collected.
func (e *Engine) CollectDrop(pos core.Vec2) bool {
	if e.over {
		return false
	}
	for _, id := range e.store.Query(ecs.TypeDroppedMana) {
		m, ok := e.store.Move(id)
		if !ok || !m.Bounds().Contains(pos) {
			continue
		}
		d, _ := e.store.Drop(id)
		if mana, ok := e.store.Mana(e.player); ok && d != nil {
			mana.Add(d.Mana)
		}
		m.Removed = true
		e.store.Remove(id)
		e.presenter.PlayRemovalAnimation(m.Position, RemovalCollected, func() {})
		e.logger.Debug("mana collected", "id", id)
		return true
	}
	return false
}
