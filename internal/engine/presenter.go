package engine

import (
	"github.com/vovakirdan/runes/internal/core"
	"github.com/vovakirdan/runes/internal/ecs"
)

// VisualHandle is an opaque presentation object id.
type VisualHandle uint64

// VisualSpec describes a visual to create for an entity.
type VisualSpec struct {
	Entity   ecs.EntityID
	Type     ecs.EntityType
	Position core.Vec2
	Size     core.Vec2
	Label    string // enemy type, gesture id, power-up kind or drop tier
}

// RemovalStyle selects the removal animation.
type RemovalStyle int

const (
	RemovalDefeated  RemovalStyle = iota // enemy killed by the player
	RemovalBreach                        // enemy crossed the line
	RemovalShielded                      // enemy absorbed by a shield
	RemovalCollected                     // mana picked up
	RemovalExpired                       // timed entity ran out
	RemovalRemote                        // removed by a remote update
)

// String returns a human-readable name for the style.
func (s RemovalStyle) String() string {
	switch s {
	case RemovalDefeated:
		return "defeated"
	case RemovalBreach:
		return "breach"
	case RemovalShielded:
		return "shielded"
	case RemovalCollected:
		return "collected"
	case RemovalExpired:
		return "expired"
	case RemovalRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// Advisory is a player-facing notice that changes no state.
type Advisory int

const (
	AdvisoryInsufficientMana Advisory = iota
	AdvisoryPowerUpDisabled
	AdvisoryNoPowerUpSelected
)

// String returns the message shown for the advisory.
func (a Advisory) String() string {
	switch a {
	case AdvisoryInsufficientMana:
		return "Insufficient mana"
	case AdvisoryPowerUpDisabled:
		return "Power-up disabled"
	case AdvisoryNoPowerUpSelected:
		return "No power-up selected"
	default:
		return "Unknown"
	}
}

// Presenter is everything the simulation needs from a renderer.
// Calls happen on the simulation goroutine.
type Presenter interface {
	SpawnVisual(spec VisualSpec) VisualHandle
	MoveVisual(h VisualHandle, pos core.Vec2)
	RemoveVisual(h VisualHandle)
	// PlayRemovalAnimation must call done exactly once when the animation ends.
	PlayRemovalAnimation(pos core.Vec2, style RemovalStyle, done func())
	ReportGameEnd(didWin bool, finalScore int)
	Notify(a Advisory)
}

// NopPresenter renders nothing and finishes animations at once.
type NopPresenter struct {
	next VisualHandle
}

func (p *NopPresenter) SpawnVisual(VisualSpec) VisualHandle {
	p.next++
	return p.next
}

func (p *NopPresenter) MoveVisual(VisualHandle, core.Vec2) {}
func (p *NopPresenter) RemoveVisual(VisualHandle)          {}

func (p *NopPresenter) PlayRemovalAnimation(_ core.Vec2, _ RemovalStyle, done func()) {
	if done != nil {
		done()
	}
}

func (p *NopPresenter) ReportGameEnd(bool, int) {}
func (p *NopPresenter) Notify(Advisory)         {}
