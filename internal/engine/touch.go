package engine

import (
	"github.com/vovakirdan/runes/internal/core"
	"github.com/vovakirdan/runes/internal/gesture"
)

// TouchesBegan starts a stroke at the first point.
func (e *Engine) TouchesBegan(points ...core.Vec2) {
	if len(points) == 0 {
		return
	}
	e.recognizer.Begin(points[0])
	for _, p := range points[1:] {
		e.recognizer.Move(p)
	}
}

// TouchesMoved extends the current stroke.
func (e *Engine) TouchesMoved(points ...core.Vec2) {
	for _, p := range points {
		e.recognizer.Move(p)
	}
}

// TouchesEnded finishes the stroke and acts on it: a circle fires the
// selected power-up, a gesture strikes marked enemies and a tap collects
// mana or fires the power-up where it landed.
func (e *Engine) TouchesEnded(points ...core.Vec2) gesture.Result {
	e.TouchesMoved(points...)
	if !e.recognizer.Active() {
		return gesture.Result{}
	}
	start := e.recognizer.Points()[0]
	res := e.recognizer.End()
	if e.over {
		return res
	}

	switch res.Kind {
	case gesture.ResultCircle:
		b := res.Circle.Bounds()
		e.ActivatePowerUp(res.Circle.Center, core.V(b.W, b.H))
	case gesture.ResultGesture:
		hits := e.GestureActivated(res.Match.ID)
		e.logger.Debug("gesture", "id", res.Match.ID, "cost", res.Match.Cost, "hits", hits)
	default:
		if len(res.Path.Points) <= 1 {
			e.tap(start)
		}
	}
	return res
}

// CancelTouches drops the stroke in progress.
func (e *Engine) CancelTouches() {
	e.recognizer.Cancel()
}

// Stroke returns the raw points of the stroke in progress.
func (e *Engine) Stroke() []core.Vec2 {
	return e.recognizer.Points()
}

// Recognizer returns the stroke recognizer.
func (e *Engine) Recognizer() *gesture.Recognizer {
	return e.recognizer
}

func (e *Engine) tap(at core.Vec2) {
	if e.CollectDrop(at) {
		return
	}
	if e.selected != "" {
		e.ActivatePowerUp(at, core.Vec2{})
	}
}
