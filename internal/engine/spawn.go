package engine

import (
	"github.com/vovakirdan/runes/internal/core"
	"github.com/vovakirdan/runes/internal/levels"
)

// SpawnPhase is the state of the wave scheduler.
type SpawnPhase int

const (
	PhaseWaiting   SpawnPhase = iota // counting down to the next wave
	PhaseSpawning                    // a wave was released this frame
	PhaseExhausted                   // the last wave has been spawned
)

// String returns a human-readable name for the phase.
func (p SpawnPhase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhaseSpawning:
		return "spawning"
	case PhaseExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Spawner pops waves on a countdown. With a refill function it never runs
// dry: the queue is topped up whenever it drops below the low-water mark.
type Spawner struct {
	queue     *levels.Queue
	interval  func() float64
	spawn     func(levels.Wave)
	refill    func() []levels.Wave
	lowWater  int
	countdown float64
	phase     SpawnPhase
	spawned   int
}

// NewSpawner creates a scheduler over waves. The first wave is released on
// the first update.
func NewSpawner(waves *levels.Queue, interval func() float64, spawn func(levels.Wave)) *Spawner {
	return &Spawner{queue: waves, interval: interval, spawn: spawn}
}

// SetRefill enables endless mode.
func (s *Spawner) SetRefill(lowWater int, refill func() []levels.Wave) {
	s.lowWater = max(lowWater, 1)
	s.refill = refill
}

// Update counts down and releases the next wave when due.
func (s *Spawner) Update(dt float64) {
	if s.phase == PhaseExhausted {
		return
	}
	s.topUp()
	s.countdown -= dt
	if s.countdown > 0 {
		s.phase = PhaseWaiting
		return
	}
	s.phase = PhaseSpawning
	s.next()
}

// StartNextWave releases the next wave immediately and restarts the
// countdown. It reports whether a wave was released.
func (s *Spawner) StartNextWave() bool {
	if s.phase == PhaseExhausted {
		return false
	}
	s.phase = PhaseSpawning
	s.topUp()
	return s.next()
}

func (s *Spawner) topUp() {
	if s.refill != nil && s.queue.Len() < s.lowWater {
		s.queue.Push(s.refill()...)
	}
}

func (s *Spawner) next() bool {
	w, ok := s.queue.Pop()
	if !ok {
		if s.refill == nil {
			s.phase = PhaseExhausted
		}
		return false
	}
	s.spawned++
	s.countdown = s.interval()
	s.spawn(w)
	if s.refill == nil && s.queue.Len() == 0 {
		s.phase = PhaseExhausted
	}
	return true
}

// Phase returns the scheduler state.
func (s *Spawner) Phase() SpawnPhase {
	return s.phase
}

// WavesLeft returns the number of queued waves.
func (s *Spawner) WavesLeft() int {
	return s.queue.Len()
}

// Spawned returns the number of waves released so far.
func (s *Spawner) Spawned() int {
	return s.spawned
}

// Countdown returns the seconds until the next wave.
func (s *Spawner) Countdown() float64 {
	return max(s.countdown, 0)
}

func (e *Engine) newSpawner() *Spawner {
	s := NewSpawner(e.level.Queue(), e.spawnInterval, e.spawnWave)
	if e.level.Endless() {
		s.SetRefill(e.cfg.Endless.LowWater, e.generateWaves)
	}
	return s
}

func (e *Engine) spawnInterval() float64 {
	if e.level.Endless() {
		return e.difficulty.SpawnInterval(e.level.SpawnInterval, e.Score(), e.tick)
	}
	return e.level.SpawnInterval
}

func (e *Engine) spawnWave(w levels.Wave) {
	y := e.spawnY()
	for lane, name := range w {
		if name == levels.Empty {
			continue
		}
		if _, err := e.spawnEnemy(name, core.V(e.laneX(lane), y)); err != nil {
			e.logger.Warn("skipping enemy", "name", name, "lane", lane, "err", err)
		}
	}
	e.logger.Debug("wave spawned", "wave", w.String(), "left", e.spawner.WavesLeft())
}

func (e *Engine) generateWaves() []levels.Wave {
	target := e.difficulty.TargetDifficulty(e.cfg.Endless.TargetDifficulty, e.Score(), e.tick)
	waves, err := levels.Generate(target, e.cfg.EndlessRoster(), e.cfg.Arena.Lanes, e.rng)
	if err != nil {
		e.logger.Error("wave generation failed", "err", err)
		return nil
	}
	e.logger.Debug("waves generated", "target", target, "count", len(waves))
	return waves
}

// StartNextWave releases the next wave without waiting for the countdown.
func (e *Engine) StartNextWave() bool {
	if e.over {
		return false
	}
	return e.spawner.StartNextWave()
}

// Spawner exposes the wave scheduler.
func (e *Engine) Spawner() *Spawner {
	return e.spawner
}
