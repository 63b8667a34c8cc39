// Package powerups implements the avatar abilities. Each power-up registers
// itself with the registry on import.
package powerups

import (
	"github.com/vovakirdan/runes/internal/registry"
)

// Kinds of the built-in power-ups.
const (
	DarkVortex     = "darkVortex"
	Hellfire       = "hellfire"
	IcePrison      = "icePrison"
	DivineShield   = "divineShield"
	DivineBlessing = "divineBlessing"
	HeroicCall     = "heroicCall"
)

func init() {
	registry.Register(DarkVortex, func() registry.PowerUp { return darkVortex{} })
	registry.Register(Hellfire, func() registry.PowerUp { return hellfire{} })
	registry.Register(IcePrison, func() registry.PowerUp { return icePrison{} })
	registry.Register(DivineShield, func() registry.PowerUp { return divineShield{} })
	registry.Register(DivineBlessing, func() registry.PowerUp { return divineBlessing{} })
	registry.Register(HeroicCall, func() registry.PowerUp { return heroicCall{} })
}

// darkVortex opens a rift that pulls enemies away from the line.
type darkVortex struct{}

func (darkVortex) Kind() string  { return DarkVortex }
func (darkVortex) Title() string { return "Dark Vortex" }

func (darkVortex) Activate(a registry.Arena, act registry.Activation) {
	a.SpawnAttractor(DarkVortex, act.Position, act.Radius, act.Duration)
}

// hellfire burns every enemy caught in the circle.
type hellfire struct{}

func (hellfire) Kind() string  { return Hellfire }
func (hellfire) Title() string { return "Hellfire" }

func (hellfire) Activate(a registry.Arena, act registry.Activation) {
	damage := max(act.Amount, 1)
	for _, id := range a.EnemiesWithin(act.Position, act.Radius) {
		a.DamageEnemy(id, damage)
	}
}

// icePrison freezes enemies caught in the circle.
type icePrison struct{}

func (icePrison) Kind() string  { return IcePrison }
func (icePrison) Title() string { return "Ice Prison" }

func (icePrison) Activate(a registry.Arena, act registry.Activation) {
	for _, id := range a.EnemiesWithin(act.Position, act.Radius) {
		a.FreezeEnemy(id, act.Duration)
	}
}

// divineShield guards the line for a while.
type divineShield struct{}

func (divineShield) Kind() string  { return DivineShield }
func (divineShield) Title() string { return "Divine Shield" }

func (divineShield) Activate(a registry.Arena, act registry.Activation) {
	a.StartShield(DivineShield, act.Duration)
}

// divineBlessing restores the player's health.
type divineBlessing struct{}

func (divineBlessing) Kind() string  { return DivineBlessing }
func (divineBlessing) Title() string { return "Divine Blessing" }

func (divineBlessing) Activate(a registry.Arena, act registry.Activation) {
	a.HealPlayer(max(act.Amount, 1))
}

// heroicCall summons a unit in every lane.
type heroicCall struct{}

func (heroicCall) Kind() string  { return HeroicCall }
func (heroicCall) Title() string { return "Heroic Call" }

func (heroicCall) Activate(a registry.Arena, _ registry.Activation) {
	a.SpawnPlayerUnitWave()
}
