package engine

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vovakirdan/runes/internal/core"
	"github.com/vovakirdan/runes/internal/ecs"
	_ "github.com/vovakirdan/runes/internal/powerups"
	"github.com/vovakirdan/runes/internal/registry"
)

// ErrPowerUpUnavailable is returned when the avatar cannot use a power-up.
var ErrPowerUpUnavailable = errors.New("engine: power-up not available")

// PowerUps returns the kinds the avatar can select, in slot order.
func (e *Engine) PowerUps() []string {
	return slices.Clone(e.avatar.PowerUps)
}

// Selected returns the selected power-up kind, or "".
func (e *Engine) Selected() string {
	return e.selected
}

// SelectPowerUp selects one of the avatar's power-ups. An empty kind clears
// the selection.
func (e *Engine) SelectPowerUp(kind string) error {
	if kind == "" {
		e.selected = ""
		return nil
	}
	if !slices.Contains(e.avatar.PowerUps, kind) || !registry.Exists(kind) {
		return fmt.Errorf("%w: %q", ErrPowerUpUnavailable, kind)
	}
	e.selected = kind
	return nil
}

// SelectPowerUpSlot selects the power-up in the given zero-based slot.
func (e *Engine) SelectPowerUpSlot(slot int) error {
	if slot < 0 || slot >= len(e.avatar.PowerUps) {
		return fmt.Errorf("%w: slot %d", ErrPowerUpUnavailable, slot+1)
	}
	return e.SelectPowerUp(e.avatar.PowerUps[slot])
}

// PowerUpCost returns the mana a power-up kind costs.
func (e *Engine) PowerUpCost(kind string) int {
	pc, ok := e.cfg.PowerUp(kind)
	if !ok {
		return 0
	}
	return pc.ManaUnits * e.cfg.Mana.PerUnit
}

// ActivatePowerUp fires the selected power-up at pos. size is the extent of
// the triggering stroke and sets the radius for kinds without a configured
// one. Failures are reported to the presenter as advisories.
func (e *Engine) ActivatePowerUp(pos, size core.Vec2) bool {
	if e.over {
		return false
	}
	kind := e.selected
	if kind == "" {
		e.presenter.Notify(AdvisoryNoPowerUpSelected)
		return false
	}
	for _, id := range e.store.Query(ecs.TypeEnemy) {
		if et, ok := e.store.EnemyType(id); ok && et.Disables(kind) {
			e.presenter.Notify(AdvisoryPowerUpDisabled)
			return false
		}
	}

	cost := e.PowerUpCost(kind)
	mana, ok := e.store.Mana(e.player)
	if !ok || !mana.Spend(cost) {
		e.presenter.Notify(AdvisoryInsufficientMana)
		return false
	}
	p, err := registry.Create(kind)
	if err != nil {
		mana.Add(cost)
		e.logger.Error("power-up unavailable", "kind", kind, "err", err)
		return false
	}

	pc, _ := e.cfg.PowerUp(kind)
	radius := pc.Radius
	if radius <= 0 {
		radius = max(size.X, size.Y) / 2
	}
	p.Activate(arena{e}, registry.Activation{
		Position: pos,
		Radius:   radius,
		Duration: pc.Duration,
		Amount:   pc.Amount,
	})
	e.logger.Info("power-up activated", "kind", kind, "cost", cost, "mana", mana.Points())
	return true
}

// arena exposes the engine to power-ups.
type arena struct {
	e *Engine
}

func (a arena) SpawnAttractor(kind string, at core.Vec2, radius, seconds float64) ecs.EntityID {
	return a.e.spawnPowerUp(ecs.PowerUp{Kind: kind, Radius: radius}, at, core.V(2*radius, 2*radius), seconds)
}

func (a arena) StartShield(kind string, seconds float64) ecs.EntityID {
	return a.e.spawnPowerUp(ecs.PowerUp{Kind: kind, Shield: true}, core.Vec2{}, core.Vec2{}, seconds)
}

func (a arena) EnemiesWithin(at core.Vec2, radius float64) []ecs.EntityID {
	return a.e.EnemiesWithin(at, radius)
}

func (a arena) DamageEnemy(id ecs.EntityID, amount int) bool {
	return a.e.damageEnemy(id, amount)
}

func (a arena) FreezeEnemy(id ecs.EntityID, seconds float64) {
	if m, ok := a.e.store.Move(id); ok && !m.Removed {
		m.Frozen = max(m.Frozen, seconds)
		m.Velocity = core.Vec2{}
	}
}

func (a arena) HealPlayer(amount int) int {
	h, ok := a.e.store.Health(a.e.player)
	if !ok {
		return 0
	}
	return h.Increase(amount)
}

func (a arena) SpawnPlayerUnitWave() int {
	ar := a.e.cfg.Arena
	y := ar.EndPointY + ar.EndPointHeight/2 + a.e.cfg.Units.Height
	for lane := range ar.Lanes {
		a.e.spawnUnit(core.V(a.e.laneX(lane), y))
	}
	return ar.Lanes
}
