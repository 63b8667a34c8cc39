// Package sim runs stages headless with a computer player.
package sim

import (
	"math/rand"

	"github.com/vovakirdan/runes/internal/core"
	"github.com/vovakirdan/runes/internal/engine"
	"github.com/vovakirdan/runes/internal/gesture"
)

const (
	DefaultSkill    = 0.85 // chance a stroke is drawn correctly
	DefaultReaction = 0.6  // seconds between strokes
	crowdSize       = 3    // enemies on field before a power-up is worth it
)

// Pilot plays a stage by drawing the gesture of the enemy closest to the
// line. Skill and reaction time make it fallible.
type Pilot struct {
	Skill    float64
	Reaction float64
	PowerUps bool

	rng      *rand.Rand
	cooldown float64
	strokes  int
	misses   int
}

// NewPilot creates a pilot with the default skill.
func NewPilot(seed int64) *Pilot {
	return &Pilot{
		Skill:    DefaultSkill,
		Reaction: DefaultReaction,
		PowerUps: true,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Step lets the pilot act on the stage after dt seconds.
func (p *Pilot) Step(e *engine.Engine, dt float64) {
	p.cooldown -= dt
	if p.cooldown > 0 || e.GameOver() {
		return
	}
	enemies := e.Enemies()
	if len(enemies) == 0 {
		return
	}
	p.cooldown = p.Reaction

	target := enemies[0]
	for _, en := range enemies[1:] {
		if en.Position.Y < target.Position.Y {
			target = en
		}
	}

	if p.PowerUps && len(enemies) >= crowdSize && p.castPowerUp(e, target.Position) {
		return
	}

	p.strokes++
	id := target.Gesture
	if p.rng.Float64() >= p.Skill {
		p.misses++
		id = p.wrongGesture(e, id)
	}
	e.GestureActivated(id)
}

// castPowerUp fires the most expensive power-up the player can afford.
func (p *Pilot) castPowerUp(e *engine.Engine, at core.Vec2) bool {
	mana := e.State().Mana
	best, bestCost := "", 0
	for _, kind := range e.PowerUps() {
		if cost := e.PowerUpCost(kind); cost <= mana && cost > bestCost {
			best, bestCost = kind, cost
		}
	}
	if best == "" || e.SelectPowerUp(best) != nil {
		return false
	}
	return e.ActivatePowerUp(at, core.Vec2{})
}

func (p *Pilot) wrongGesture(e *engine.Engine, avoid gesture.ID) gesture.ID {
	templates := e.Recognizer().Matcher().Templates()
	for range len(templates) {
		if t := templates[p.rng.Intn(len(templates))]; t.ID != avoid {
			return t.ID
		}
	}
	return ""
}

// Strokes returns how many gestures the pilot drew.
func (p *Pilot) Strokes() int {
	return p.strokes
}

// Misses returns how many of them were deliberately wrong.
func (p *Pilot) Misses() int {
	return p.misses
}
