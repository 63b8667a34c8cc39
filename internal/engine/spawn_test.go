package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/runes/internal/config"
	"github.com/vovakirdan/runes/internal/levels"
)

func TestSpawnerPhases(t *testing.T) {
	var got []levels.Wave
	s := NewSpawner(
		levels.NewQueue([]levels.Wave{{"orc1"}, {"orc2"}}),
		func() float64 { return 1 },
		func(w levels.Wave) { got = append(got, w) },
	)
	assert.Equal(t, PhaseWaiting, s.Phase())

	s.Update(0.1)
	assert.Equal(t, PhaseSpawning, s.Phase())
	assert.Len(t, got, 1, "the first wave is released at once")
	assert.InDelta(t, 1, s.Countdown(), 1e-9)

	s.Update(0.5)
	assert.Len(t, got, 1)
	assert.Equal(t, PhaseWaiting, s.Phase(), "counting down between waves")
	s.Update(0.5)
	require.Len(t, got, 2)
	assert.Equal(t, levels.Wave{"orc2"}, got[1])
	assert.Equal(t, PhaseExhausted, s.Phase())
	assert.Equal(t, 0, s.WavesLeft())

	assert.False(t, s.StartNextWave())
	s.Update(10)
	assert.Len(t, got, 2)
	assert.Equal(t, 2, s.Spawned())
}

func TestSpawnerStartNextWave(t *testing.T) {
	n := 0
	s := NewSpawner(
		levels.NewQueue([]levels.Wave{{"a"}, {"b"}, {"c"}}),
		func() float64 { return 5 },
		func(levels.Wave) { n++ },
	)
	s.Update(0.1)
	require.True(t, s.StartNextWave())
	assert.Equal(t, 2, n)
	assert.InDelta(t, 5, s.Countdown(), 1e-9, "an early wave restarts the countdown")
	s.Update(4.9)
	assert.Equal(t, 2, n)
}

func TestSpawnerRefill(t *testing.T) {
	refills := 0
	spawned := 0
	s := NewSpawner(levels.NewQueue(nil), func() float64 { return 1 }, func(levels.Wave) { spawned++ })
	s.SetRefill(2, func() []levels.Wave {
		refills++
		return []levels.Wave{{"x"}, {"y"}, {"z"}}
	})

	s.Update(0.1)
	assert.Equal(t, 1, refills)
	assert.Equal(t, 2, s.WavesLeft())

	s.Update(1)
	assert.Equal(t, 1, refills, "no refill at the low-water mark")
	assert.Equal(t, 1, s.WavesLeft())

	s.Update(1)
	assert.Equal(t, 2, refills)
	assert.Equal(t, 3, s.WavesLeft())
	assert.Equal(t, 3, spawned)
	assert.Equal(t, PhaseSpawning, s.Phase(), "endless mode never runs dry")
}

func TestEndlessStageKeepsSpawning(t *testing.T) {
	e, rec := newTestEngine(t, config.DefaultGameConfig(), levels.Level{})
	assert.Equal(t, "Endless", e.Level().Name)

	for range 30 * 10 {
		e.Update(frame)
	}
	assert.Greater(t, e.Spawner().Spawned(), 1)
	assert.NotEqual(t, PhaseExhausted, e.State().Phase)
	assert.NotEmpty(t, e.Enemies())
	assert.Zero(t, rec.ended)
}
