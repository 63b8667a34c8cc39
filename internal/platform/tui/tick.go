// Package tui is the Bubble Tea front end of the lane-defense engine: it
// renders the arena, turns mouse drags into touch strokes and hosts the
// stage menu, the scoreboard and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one simulation frame. Gen identifies the stage the tick
// loop belongs to so a restarted stage never runs two loops.
type TickMsg struct {
	Time time.Time
	Gen  int
}

// tickCmd schedules the next frame at the given rate.
func tickCmd(tickRate, gen int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}
