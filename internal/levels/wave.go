// Package levels defines stages as queues of enemy waves, loads them from
// YAML and generates endless waves from a target difficulty.
package levels

import "strings"

// Empty marks a lane without an enemy.
const Empty = ""

// Wave lists the enemy type spawned in each lane; Empty leaves a lane free.
type Wave []string

// Normalize maps the "-" and "~" placeholders to Empty.
func (w Wave) Normalize() Wave {
	out := make(Wave, len(w))
	for i, name := range w {
		switch name = strings.TrimSpace(name); name {
		case "-", "~":
			out[i] = Empty
		default:
			out[i] = name
		}
	}
	return out
}

// Enemies returns the number of occupied lanes.
func (w Wave) Enemies() int {
	n := 0
	for _, name := range w {
		if name != Empty {
			n++
		}
	}
	return n
}

// String renders the wave as "[orc1 - troll1]".
func (w Wave) String() string {
	parts := make([]string, len(w))
	for i, name := range w {
		if name == Empty {
			name = "-"
		}
		parts[i] = name
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Queue is a FIFO of waves.
type Queue struct {
	waves []Wave
}

// NewQueue creates a queue holding copies of the given waves.
func NewQueue(waves []Wave) *Queue {
	q := &Queue{}
	q.Push(waves...)
	return q
}

// Push appends waves to the back of the queue.
func (q *Queue) Push(waves ...Wave) {
	for _, w := range waves {
		q.waves = append(q.waves, append(Wave(nil), w...))
	}
}

// Pop removes and returns the front wave.
func (q *Queue) Pop() (Wave, bool) {
	if len(q.waves) == 0 {
		return nil, false
	}
	w := q.waves[0]
	q.waves = q.waves[1:]
	return w, true
}

// Len returns the number of queued waves.
func (q *Queue) Len() int {
	return len(q.waves)
}

// Enemies returns the number of enemies still queued.
func (q *Queue) Enemies() int {
	n := 0
	for _, w := range q.waves {
		n += w.Enemies()
	}
	return n
}
