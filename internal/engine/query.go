package engine

import (
	"math"

	"github.com/vovakirdan/runes/internal/core"
	"github.com/vovakirdan/runes/internal/ecs"
)

// closestPoint returns the point of r nearest to p.
func closestPoint(r core.Rect, p core.Vec2) core.Vec2 {
	return core.V(core.ClampF(p.X, r.X, r.Right()), core.ClampF(p.Y, r.Y, r.Top()))
}

// NearestOpposing returns the closest live mover fighting against team,
// measured to the nearest point of its bounds. Earlier entities win ties.
func (e *Engine) NearestOpposing(from core.Vec2, team ecs.Team) (ecs.EntityID, *ecs.Move, bool) {
	best := ecs.NoEntity
	var bestMove *ecs.Move
	bestDist := math.Inf(1)
	for _, id := range e.store.QueryTeam(team.Opposite()) {
		m, ok := e.store.Move(id)
		if !ok || m.Removed {
			continue
		}
		d := from.DistSq(closestPoint(m.Bounds(), from))
		if d < bestDist {
			best, bestMove, bestDist = id, m, d
		}
	}
	return best, bestMove, best != ecs.NoEntity
}

// LineReached reports whether the mover overlaps the end point.
func (e *Engine) LineReached(mover, endPoint ecs.EntityID) bool {
	a, ok := e.store.Move(mover)
	if !ok {
		return false
	}
	b, ok := e.store.Move(endPoint)
	if !ok {
		return false
	}
	return a.Bounds().Intersects(b.Bounds())
}

// EnemiesWithin returns live enemies whose centre lies inside the circle.
func (e *Engine) EnemiesWithin(at core.Vec2, radius float64) []ecs.EntityID {
	var out []ecs.EntityID
	r2 := radius * radius
	for _, id := range e.store.Query(ecs.TypeEnemy) {
		m, ok := e.store.Move(id)
		if !ok || m.Removed {
			continue
		}
		if m.Position.DistSq(at) <= r2 {
			out = append(out, id)
		}
	}
	return out
}

// shieldActive reports whether a live power-up absorbs line breaches.
func (e *Engine) shieldActive() bool {
	for _, id := range e.store.Query(ecs.TypePowerUp) {
		if p, ok := e.store.PowerUp(id); ok && p.Shield {
			return true
		}
	}
	return false
}
