package engine

import (
	"github.com/vovakirdan/runes/internal/core"
	"github.com/vovakirdan/runes/internal/ecs"
)

// updateMovement steers every mobile entity towards the nearest opposing
// entity while keeping distance from allies.
func (e *Engine) updateMovement(dt float64) {
	for _, id := range e.store.Registered(ecs.KindMove) {
		m, ok := e.store.Move(id)
		if !ok || m.Removed || m.MaxSpeed <= 0 {
			continue
		}
		if m.Frozen > 0 {
			m.Frozen = max(m.Frozen-dt, 0)
			m.Velocity = core.Vec2{}
			continue
		}
		team, ok := e.store.Team(id)
		if !ok {
			continue
		}

		var desired core.Vec2
		target, tm, found := e.NearestOpposing(m.Position, team)
		if found {
			m.Target = target
			to := closestPoint(tm.Bounds(), m.Position).Sub(m.Position)
			if step := m.MaxSpeed * dt; to.LenSq() <= step*step {
				desired = to.Scale(1 / dt)
			} else {
				desired = to.Normalize().Scale(m.MaxSpeed)
			}
		} else {
			m.Target = ecs.NoEntity
		}
		desired = desired.Add(e.separation(id, m, team).Scale(e.cfg.Combat.Separation * m.MaxSpeed))

		steer := desired.Sub(m.Velocity)
		if m.MaxAcceleration > 0 {
			steer = steer.ClampLen(m.MaxAcceleration * dt)
		}
		m.Velocity = m.Velocity.Add(steer).ClampLen(m.MaxSpeed)
		m.Position = m.Position.Add(m.Velocity.Scale(dt))
	}
}

// separation sums pushes away from mobile allies closer than the combined
// radii. Each push grows linearly as the gap closes.
func (e *Engine) separation(self ecs.EntityID, m *ecs.Move, team ecs.Team) core.Vec2 {
	var push core.Vec2
	for _, id := range e.store.QueryTeam(team) {
		if id == self {
			continue
		}
		o, ok := e.store.Move(id)
		if !ok || o.Removed || o.MaxSpeed <= 0 {
			continue
		}
		reach := m.Radius + o.Radius
		away := m.Position.Sub(o.Position)
		d := away.Len()
		if d == 0 || d >= reach {
			continue
		}
		push = push.Add(away.Scale(1 / d).Scale(1 - d/reach))
	}
	return push
}

// detectContacts reports enemies on the line and units meeting enemies.
func (e *Engine) detectContacts() {
	for _, id := range e.store.Query(ecs.TypeEnemy) {
		m, ok := e.store.Move(id)
		if !ok || m.Removed {
			continue
		}
		if e.LineReached(id, e.endPoint) {
			e.EnemyReachedLine(id)
		}
	}

	for _, unit := range e.store.Query(ecs.TypePlayerUnit) {
		um, ok := e.store.Move(unit)
		if !ok || um.Removed {
			continue
		}
		for _, enemy := range e.store.Query(ecs.TypeEnemy) {
			em, ok := e.store.Move(enemy)
			if !ok || em.Removed {
				continue
			}
			if um.Bounds().Intersects(em.Bounds()) {
				e.UnitClash(unit, enemy)
				break
			}
		}
	}
}

// syncVisuals moves every visual to its entity; markers follow their enemy.
func (e *Engine) syncVisuals() {
	for _, id := range e.store.Registered(ecs.KindVisual) {
		v, _ := e.store.Visual(id)
		if g, ok := e.store.Gesture(id); ok {
			if pm, ok := e.store.Move(g.Parent); ok {
				e.presenter.MoveVisual(VisualHandle(v.Handle), e.markerPosition(pm))
			}
			continue
		}
		if m, ok := e.store.Move(id); ok && m.MaxSpeed > 0 {
			e.presenter.MoveVisual(VisualHandle(v.Handle), m.Position)
		}
	}
}
