package engine

import (
	"math"

	"github.com/vovakirdan/runes/internal/ecs"
	"github.com/vovakirdan/runes/internal/gesture"
)

// GestureActivated strikes every enemy marked with the gesture and returns
// the number of hits. While a frame is running the gesture is queued and
// resolved before removals are drained; the call then returns 0.
func (e *Engine) GestureActivated(id gesture.ID) int {
	if e.over {
		return 0
	}
	if e.updating {
		e.queued = append(e.queued, id)
		return 0
	}
	return e.resolveGesture(id)
}

func (e *Engine) resolveGesture(g gesture.ID) int {
	hits := 0
	for _, marker := range e.store.Query(ecs.TypeGestureMarker) {
		gc, ok := e.store.Gesture(marker)
		if !ok || gc.ID != g {
			continue
		}
		if !e.store.IsLive(gc.Parent) {
			e.logger.Warn("orphan gesture marker", "marker", marker, "parent", gc.Parent)
			e.store.Remove(marker)
			continue
		}
		hits++
		e.damageEnemy(gc.Parent, e.cfg.Combat.HitDamage)
	}
	if hits == 0 {
		e.logger.Debug("gesture missed", "gesture", g)
		e.resetCombo()
	}
	return hits
}

// damageEnemy takes health from a live enemy. A survivor gets a fresh
// gesture marker; a dead enemy is scored and removed. It reports whether
// the enemy died.
func (e *Engine) damageEnemy(id ecs.EntityID, amount int) bool {
	if !e.store.IsLive(id) {
		return false
	}
	h, ok := e.store.Health(id)
	if !ok {
		return false
	}
	if h.Decrease(amount) <= 0 {
		e.killEnemy(id, true)
		return true
	}
	e.replaceMarker(id)
	return false
}

// replaceMarker swaps the enemy's marker for one with a different gesture.
func (e *Engine) replaceMarker(enemy ecs.EntityID) {
	et, ok := e.store.EnemyType(enemy)
	if !ok {
		return
	}
	var prev gesture.ID
	if ref, ok := e.store.MarkerRef(enemy); ok {
		if g, ok := e.store.Gesture(ref.Marker); ok {
			prev = g.ID
		}
		e.store.Remove(ref.Marker)
	}
	e.attachMarker(enemy, e.pickGesture(et, prev))
}

// killEnemy scores the enemy with the current multiplier, advances the
// combo and removes it.
func (e *Engine) killEnemy(id ecs.EntityID, drop bool) {
	points := 0
	if sc, ok := e.store.Score(id); ok {
		points = sc.Points
	}
	if c, ok := e.store.Combo(e.player); ok {
		awarded := int(math.Round(float64(points) * c.Multiplier))
		if ps, ok := e.store.Score(e.player); ok {
			ps.Points += awarded
		}
		c.Kills++
		c.Multiplier = e.multiplier(c.Kills)
	}
	if m, ok := e.store.Move(id); ok && drop {
		e.spawnDrop(m.Position)
	}
	e.removeEnemy(id, RemovalDefeated)
}

// multiplier returns the combo multiplier after kills consecutive kills.
func (e *Engine) multiplier(kills int) float64 {
	c := e.cfg.Combat
	m := 1 + float64(kills)*c.ComboStep
	if c.ComboMax > 0 {
		m = math.Min(m, c.ComboMax)
	}
	return m
}

func (e *Engine) resetCombo() {
	if c, ok := e.store.Combo(e.player); ok {
		c.Kills = 0
		c.Multiplier = 1
	}
}

// removeEnemy queues the enemy and its marker for removal and plays the
// animation. The enemy leaves the field count once the animation is done.
func (e *Engine) removeEnemy(id ecs.EntityID, style RemovalStyle) {
	if !e.store.IsLive(id) {
		return
	}
	m, _ := e.store.Move(id)
	if m != nil {
		m.Removed = true
	}
	if ref, ok := e.store.MarkerRef(id); ok {
		e.store.Remove(ref.Marker)
	}
	e.store.Remove(id)

	var done bool
	finish := func() {
		if done {
			return
		}
		done = true
		e.enemiesOnField = max(e.enemiesOnField-1, 0)
	}
	if m != nil {
		e.presenter.PlayRemovalAnimation(m.Position, style, finish)
	} else {
		finish()
	}
	e.logger.Debug("enemy removed", "id", id, "style", style.String())
}

// EnemyReachedLine handles an enemy touching the defended line. The player
// loses health and the combo unless a shield is active.
func (e *Engine) EnemyReachedLine(id ecs.EntityID) {
	if !e.store.IsLive(id) {
		return
	}
	if e.shieldActive() {
		e.removeEnemy(id, RemovalShielded)
		return
	}
	e.removeEnemy(id, RemovalBreach)
	if h, ok := e.store.Health(e.player); ok {
		left := h.Decrease(e.cfg.Combat.LineDamage)
		e.logger.Info("line breached", "enemy", id, "health", left)
	}
	e.resetCombo()
}

// UnitClash trades a player unit for an enemy. The enemy is scored.
func (e *Engine) UnitClash(unit, enemy ecs.EntityID) {
	if !e.store.IsLive(unit) || !e.store.IsLive(enemy) {
		return
	}
	um, _ := e.store.Move(unit)
	if um != nil {
		um.Removed = true
		e.presenter.PlayRemovalAnimation(um.Position, RemovalDefeated, func() {})
	}
	e.store.Remove(unit)
	e.killEnemy(enemy, false)
}
