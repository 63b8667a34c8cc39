package tui

import (
	"math"

	"github.com/vovakirdan/runes/internal/core"
	"github.com/vovakirdan/runes/internal/ecs"
	"github.com/vovakirdan/runes/internal/engine"
	"github.com/vovakirdan/runes/internal/gesture"
)

// viewport maps the y-up arena onto a block of terminal cells.
type viewport struct {
	x, y, w, h int
	arena      core.Vec2
}

// fitViewport places the arena inside a screen, keeping its aspect ratio
// for cells that are about twice as tall as they are wide. One cell of
// margin is left around it for the frame.
func fitViewport(screenW, screenH int, arena core.Vec2) viewport {
	h := max(screenH-2, 1)
	w := int(math.Round(float64(h) * arena.X / arena.Y * 2))
	if w > screenW-2 {
		w = max(screenW-2, 1)
	}
	return viewport{x: (screenW - w) / 2, y: 1, w: w, h: h, arena: arena}
}

// toCell returns the cell containing an arena point, clamped to the viewport.
func (v viewport) toCell(p core.Vec2) (int, int) {
	cx := int(p.X / v.arena.X * float64(v.w))
	cy := v.h - 1 - int(p.Y/v.arena.Y*float64(v.h))
	return v.x + core.Clamp(cx, 0, v.w-1), v.y + core.Clamp(cy, 0, v.h-1)
}

// toArena returns the arena point at the centre of a cell.
func (v viewport) toArena(cx, cy int) core.Vec2 {
	col := float64(cx-v.x) + 0.5
	row := float64(cy-v.y) + 0.5
	return core.V(col/float64(v.w)*v.arena.X, (float64(v.h)-row)/float64(v.h)*v.arena.Y)
}

// contains reports whether a cell lies inside the viewport.
func (v viewport) contains(cx, cy int) bool {
	return cx >= v.x && cx < v.x+v.w && cy >= v.y && cy < v.y+v.h
}

// cellsAcross returns how many cells an arena distance spans horizontally.
func (v viewport) cellsAcross(d float64) int {
	return int(math.Round(d / v.arena.X * float64(v.w)))
}

var enemyGlyphs = map[string]rune{
	"orc1":       'o',
	"orc2":       'O',
	"troll1":     'T',
	"evilKnight": 'K',
}

func enemyGlyph(name string) rune {
	if r, ok := enemyGlyphs[name]; ok {
		return r
	}
	for _, r := range name {
		return r
	}
	return '?'
}

var dropColors = map[string]core.Color{
	ecs.DropCommon.String(): core.ColorBlue,
	ecs.DropRare.String():   core.ColorBrightMagenta,
	ecs.DropEpic.String():   core.ColorOrange,
}

var removalCells = map[engine.RemovalStyle]core.Cell{
	engine.RemovalDefeated:  {Rune: '✶', Color: core.ColorBrightYellow},
	engine.RemovalBreach:    {Rune: '!', Color: core.ColorBrightRed},
	engine.RemovalShielded:  {Rune: '✚', Color: core.ColorYellow},
	engine.RemovalCollected: {Rune: '+', Color: core.ColorBrightBlue},
	engine.RemovalExpired:   {Rune: '·', Color: core.ColorGray},
	engine.RemovalRemote:    {Rune: 'x', Color: core.ColorGray},
}

// drawArena renders the scene, the removal animations and the stroke in
// progress. frozen reports enemies held by ice.
func drawArena(s *core.Screen, v viewport, p *Presenter, stroke []core.Vec2, shield bool, frozen func(ecs.EntityID) bool) {
	s.Clear()
	s.DrawBox(v.x-1, v.y-1, v.w+2, v.h+2, core.ColorGray)

	for _, vis := range p.scene() {
		drawVisual(s, v, p, vis, shield, frozen)
	}
	for _, a := range p.anims {
		x, y := v.toCell(a.pos)
		s.SetCell(x, y, removalCells[a.style])
	}
	for _, pt := range stroke {
		x, y := v.toCell(pt)
		s.SetCell(x, y, core.Cell{Rune: '•', Color: core.ColorBrightWhite})
	}
}

func drawVisual(s *core.Screen, v viewport, p *Presenter, vis *visual, shield bool, frozen func(ecs.EntityID) bool) {
	x, y := v.toCell(vis.pos)
	switch vis.spec.Type {
	case ecs.TypeEndPoint:
		color := core.ColorCyan
		if shield {
			color = core.ColorBrightYellow
		}
		s.DrawHLine(v.x, y, v.w, core.Cell{Rune: '═', Color: color})
	case ecs.TypeEnemy:
		color := core.ColorBrightRed
		if frozen != nil && frozen(vis.spec.Entity) {
			color = core.ColorBrightCyan
		}
		s.SetCell(x, y, core.Cell{Rune: enemyGlyph(vis.spec.Label), Color: color})
	case ecs.TypeGestureMarker:
		glyph := p.Glyph(gesture.ID(vis.spec.Label))
		s.DrawText(x-len([]rune(glyph))/2, y, glyph, core.ColorBrightYellow)
	case ecs.TypeDroppedMana:
		color, ok := dropColors[vis.spec.Label]
		if !ok {
			color = core.ColorBlue
		}
		s.SetCell(x, y, core.Cell{Rune: '◆', Color: color})
	case ecs.TypePlayerUnit:
		s.SetCell(x, y, core.Cell{Rune: '♞', Color: core.ColorBrightGreen})
	case ecs.TypePowerUp:
		if vis.spec.Size == (core.Vec2{}) {
			return
		}
		drawRing(s, v, vis.pos, vis.spec.Size.X/2, core.Cell{Rune: '·', Color: core.ColorMagenta})
		s.SetCell(x, y, core.Cell{Rune: '@', Color: core.ColorBrightMagenta})
	}
}

// drawRing outlines a circle of the given arena radius.
func drawRing(s *core.Screen, v viewport, center core.Vec2, radius float64, c core.Cell) {
	steps := max(v.cellsAcross(radius)*6, 12)
	for i := range steps {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x, y := v.toCell(center.Add(core.V(math.Cos(a)*radius, math.Sin(a)*radius)))
		s.SetCell(x, y, c)
	}
}
