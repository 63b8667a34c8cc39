package tui

import (
	"cmp"
	"slices"

	"github.com/vovakirdan/runes/internal/core"
	"github.com/vovakirdan/runes/internal/engine"
	"github.com/vovakirdan/runes/internal/gesture"
)

const (
	animationSeconds = 0.4
	noticeSeconds    = 1.5
)

// visual is what the terminal knows about one engine entity.
type visual struct {
	handle engine.VisualHandle
	spec   engine.VisualSpec
	pos    core.Vec2
}

type animation struct {
	pos   core.Vec2
	style engine.RemovalStyle
	left  float64
	done  func()
}

// Presenter keeps the terminal-side scene the engine draws into.
// Removal animations run on simulated time and call back when finished.
type Presenter struct {
	next    engine.VisualHandle
	visuals map[engine.VisualHandle]*visual
	anims   []*animation
	glyphs  map[gesture.ID]string

	notice     string
	noticeLeft float64

	ended bool
	won   bool
	final int
	onEnd func(won bool, score int)
}

// NewPresenter creates an empty scene. Marker glyphs are derived from the
// templates' direction sequences.
func NewPresenter(templates []gesture.Template, sliceCount int) *Presenter {
	p := &Presenter{
		visuals: make(map[engine.VisualHandle]*visual),
		glyphs:  make(map[gesture.ID]string, len(templates)),
	}
	for _, t := range templates {
		p.glyphs[t.ID] = directionGlyphs(t.Directions, sliceCount)
	}
	return p
}

// OnGameEnd registers a callback for the end of the stage.
func (p *Presenter) OnGameEnd(fn func(won bool, score int)) {
	p.onEnd = fn
}

var arrows = []rune("→↗↑↖←↙↓↘")

// directionGlyphs renders a chain code as arrows, collapsing repeats.
func directionGlyphs(dirs []int, sliceCount int) string {
	if sliceCount <= 0 {
		sliceCount = len(arrows)
	}
	out := make([]rune, 0, len(dirs))
	for _, d := range dirs {
		r := arrows[(d*len(arrows)/sliceCount)%len(arrows)]
		if n := len(out); n > 0 && out[n-1] == r {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

// Glyph returns the marker text for a gesture.
func (p *Presenter) Glyph(id gesture.ID) string {
	if g, ok := p.glyphs[id]; ok {
		return g
	}
	return string(id)
}

// SpawnVisual implements engine.Presenter.
func (p *Presenter) SpawnVisual(spec engine.VisualSpec) engine.VisualHandle {
	p.next++
	p.visuals[p.next] = &visual{handle: p.next, spec: spec, pos: spec.Position}
	return p.next
}

// MoveVisual implements engine.Presenter.
func (p *Presenter) MoveVisual(h engine.VisualHandle, pos core.Vec2) {
	if v, ok := p.visuals[h]; ok {
		v.pos = pos
	}
}

// RemoveVisual implements engine.Presenter.
func (p *Presenter) RemoveVisual(h engine.VisualHandle) {
	delete(p.visuals, h)
}

// PlayRemovalAnimation implements engine.Presenter.
func (p *Presenter) PlayRemovalAnimation(pos core.Vec2, style engine.RemovalStyle, done func()) {
	p.anims = append(p.anims, &animation{pos: pos, style: style, left: animationSeconds, done: done})
}

// ReportGameEnd implements engine.Presenter.
func (p *Presenter) ReportGameEnd(won bool, score int) {
	if p.ended {
		return
	}
	p.ended, p.won, p.final = true, won, score
	if p.onEnd != nil {
		p.onEnd(won, score)
	}
}

// Notify implements engine.Presenter.
func (p *Presenter) Notify(a engine.Advisory) {
	switch a {
	case engine.AdvisoryInsufficientMana:
		p.say("Not enough mana")
	case engine.AdvisoryPowerUpDisabled:
		p.say("Power-up blocked by an enemy")
	case engine.AdvisoryNoPowerUpSelected:
		p.say("Select a power-up first (1-3)")
	default:
		p.say(a.String())
	}
}

// say shows a short-lived notice under the arena.
func (p *Presenter) say(text string) {
	p.notice, p.noticeLeft = text, noticeSeconds
}

// Tick advances animations and notices by dt seconds.
// Finished animations report back to the engine.
func (p *Presenter) Tick(dt float64) {
	var finished []func()
	kept := p.anims[:0]
	for _, a := range p.anims {
		a.left -= dt
		if a.left <= 0 {
			finished = append(finished, a.done)
			continue
		}
		kept = append(kept, a)
	}
	p.anims = kept
	for _, done := range finished {
		if done != nil {
			done()
		}
	}

	if p.noticeLeft > 0 {
		p.noticeLeft -= dt
		if p.noticeLeft <= 0 {
			p.notice = ""
		}
	}
}

// scene returns the visuals in creation order.
func (p *Presenter) scene() []*visual {
	out := make([]*visual, 0, len(p.visuals))
	for _, v := range p.visuals {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b *visual) int {
		return cmp.Compare(a.handle, b.handle)
	})
	return out
}

// Animating reports how many removal animations are in flight.
func (p *Presenter) Animating() int {
	return len(p.anims)
}

// Notice returns the current advisory text, if any.
func (p *Presenter) Notice() string {
	return p.notice
}

// Ended returns the final outcome once the stage is over.
func (p *Presenter) Ended() (ended, won bool, score int) {
	return p.ended, p.won, p.final
}
