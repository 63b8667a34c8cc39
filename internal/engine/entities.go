package engine

import (
	"github.com/vovakirdan/runes/internal/core"
	"github.com/vovakirdan/runes/internal/ecs"
	"github.com/vovakirdan/runes/internal/gesture"
)

// addVisual asks the presenter for a visual and attaches its handle.
func (e *Engine) addVisual(id ecs.EntityID, label string) {
	t, _ := e.store.Type(id)
	spec := VisualSpec{Entity: id, Type: t, Label: label}
	if m, ok := e.store.Move(id); ok {
		spec.Position = m.Position
		spec.Size = m.Size
	}
	h := e.presenter.SpawnVisual(spec)
	e.store.SetVisual(id, ecs.Visual{Handle: uint64(h)})
}

func (e *Engine) spawnEndPoint() ecs.EntityID {
	a := e.cfg.Arena
	id := e.store.NewEntity(ecs.TypeEndPoint)
	e.store.SetTeam(id, ecs.TeamPlayer)
	e.store.SetMove(id, ecs.Move{
		Position: core.V(a.Width/2, a.EndPointY),
		Size:     core.V(a.Width, a.EndPointHeight),
	})
	e.addVisual(id, "")
	e.store.Add(id)
	return id
}

func (e *Engine) spawnPlayer() ecs.EntityID {
	m := e.cfg.Mana
	id := e.store.NewEntity(ecs.TypePlayer)
	e.store.SetHealth(id, ecs.NewHealth(e.avatar.Health))
	e.store.SetMana(id, ecs.NewMana(m.StartUnits*m.PerUnit, e.avatar.ManaUnits*m.PerUnit, m.Regenerates))
	e.store.SetScore(id, ecs.Score{})
	e.store.SetCombo(id, ecs.Combo{Multiplier: 1})
	e.store.Add(id)
	return id
}

// spawnClock creates the stage clock, a timer counting up from zero.
func (e *Engine) spawnClock() ecs.EntityID {
	id := e.store.NewEntity(ecs.TypeTimer)
	e.store.SetTimer(id, ecs.Timer{})
	e.store.Add(id)
	return id
}

// laneX returns the centre of a lane.
func (e *Engine) laneX(lane int) float64 {
	a := e.cfg.Arena
	return a.Width * float64(2*lane+1) / float64(2*a.Lanes)
}

// spawnY returns the height new enemies appear at.
func (e *Engine) spawnY() float64 {
	a := e.cfg.Arena
	return a.Height * (1 - a.SpawnOffset)
}

// spawnEnemy creates an enemy of the named type with a first gesture marker.
func (e *Engine) spawnEnemy(name string, pos core.Vec2) (ecs.EntityID, error) {
	et, ok := e.roster[name]
	if !ok {
		return ecs.NoEntity, ErrUnknownEnemy
	}
	a := e.cfg.Arena
	speed := et.Speed
	if e.level.Endless() {
		speed = e.difficulty.Speed(speed, e.Score(), e.tick)
	}
	size := core.V(a.EnemyWidth, a.EnemyHeight)

	id := e.store.NewEntity(ecs.TypeEnemy)
	e.store.SetTeam(id, ecs.TeamEnemy)
	e.store.SetEnemyType(id, et)
	e.store.SetHealth(id, ecs.NewHealth(et.Health))
	e.store.SetScore(id, ecs.Score{Points: et.Score})
	e.store.SetMove(id, ecs.Move{
		Position:        pos,
		MaxSpeed:        speed,
		MaxAcceleration: et.Acceleration,
		Radius:          size.X / 2,
		Size:            size,
	})
	e.addVisual(id, et.Name)
	e.store.Add(id)
	e.enemiesOnField++

	e.attachMarker(id, e.pickGesture(et, ""))
	e.logger.Debug("enemy spawned", "id", id, "type", name, "x", pos.X, "y", pos.Y)
	return id, nil
}

// pickGesture draws a gesture from the type's set, avoiding prev unless it
// is the only choice.
func (e *Engine) pickGesture(et *ecs.EnemyType, prev gesture.ID) gesture.ID {
	if len(et.Gestures) == 0 {
		return ""
	}
	choices := make([]gesture.ID, 0, len(et.Gestures))
	for _, g := range et.Gestures {
		if g != prev {
			choices = append(choices, g)
		}
	}
	if len(choices) == 0 {
		return prev
	}
	return choices[e.rng.Intn(len(choices))]
}

// attachMarker creates a gesture marker following the enemy.
func (e *Engine) attachMarker(enemy ecs.EntityID, g gesture.ID) ecs.EntityID {
	if g == "" {
		return ecs.NoEntity
	}
	id := e.store.NewEntity(ecs.TypeGestureMarker)
	if e.store.SetGesture(id, ecs.Gesture{ID: g, Parent: enemy}) == nil {
		return ecs.NoEntity
	}
	if m, ok := e.store.Move(enemy); ok {
		spec := VisualSpec{
			Entity:   id,
			Type:     ecs.TypeGestureMarker,
			Position: e.markerPosition(m),
			Label:    string(g),
		}
		e.store.SetVisual(id, ecs.Visual{Handle: uint64(e.presenter.SpawnVisual(spec))})
	}
	e.store.Add(id)
	e.store.SetMarkerRef(enemy, ecs.MarkerRef{Marker: id})
	return id
}

func (e *Engine) markerPosition(m *ecs.Move) core.Vec2 {
	return m.Position.Add(core.V(0, m.Size.Y/2+e.cfg.Arena.MarkerOffset))
}

// spawnDrop leaves collectable mana at pos.
func (e *Engine) spawnDrop(pos core.Vec2) ecs.EntityID {
	mc := e.cfg.Mana
	if mc.DropMax <= 0 {
		return ecs.NoEntity
	}
	amount := mc.DropMin
	if mc.DropMax > mc.DropMin {
		amount += e.rng.Intn(mc.DropMax - mc.DropMin + 1)
	}
	tier := ecs.DropCommon
	switch r := e.rng.Float64(); {
	case r < mc.EpicChance:
		tier = ecs.DropEpic
		amount *= 3
	case r < mc.EpicChance+mc.RareChance:
		tier = ecs.DropRare
		amount *= 2
	}

	id := e.store.NewEntity(ecs.TypeDroppedMana)
	e.store.SetDrop(id, ecs.Drop{Mana: amount, Tier: tier})
	e.store.SetMove(id, ecs.Move{Position: pos, Size: core.V(mc.DropSize, mc.DropSize)})
	if mc.DropLifetime > 0 {
		e.store.SetTimer(id, ecs.Timer{Current: mc.DropLifetime, Countdown: true})
	}
	e.addVisual(id, tier.String())
	e.store.Add(id)
	return id
}

// spawnUnit places a player unit that hunts the nearest enemy.
func (e *Engine) spawnUnit(pos core.Vec2) ecs.EntityID {
	u := e.cfg.Units
	size := core.V(u.Width, u.Height)
	id := e.store.NewEntity(ecs.TypePlayerUnit)
	e.store.SetTeam(id, ecs.TeamPlayer)
	e.store.SetMove(id, ecs.Move{
		Position:        pos,
		MaxSpeed:        u.Speed,
		MaxAcceleration: u.Acceleration,
		Radius:          size.X / 2,
		Size:            size,
	})
	e.addVisual(id, "")
	e.store.Add(id)
	return id
}

// spawnPowerUp creates an active power-up entity. A zero size yields an
// entity nothing can steer towards.
func (e *Engine) spawnPowerUp(p ecs.PowerUp, at core.Vec2, size core.Vec2, seconds float64) ecs.EntityID {
	id := e.store.NewEntity(ecs.TypePowerUp)
	e.store.SetTeam(id, ecs.TeamPlayer)
	e.store.SetPowerUp(id, p)
	if size != (core.Vec2{}) {
		e.store.SetMove(id, ecs.Move{Position: at, Size: size})
	}
	if seconds > 0 {
		e.store.SetTimer(id, ecs.Timer{Current: seconds, Countdown: true})
	}
	e.addVisual(id, p.Kind)
	e.store.Add(id)
	return id
}
