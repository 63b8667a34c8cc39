package levels

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLevels(t *testing.T) {
	s := Default()
	assert.Equal(t, []int{-1, 1, 2, 3}, s.Numbers())

	l1, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 3.0, l1.SpawnInterval)
	require.Len(t, l1.Waves, 4)
	assert.Equal(t, Wave{Empty, "orc1", Empty}, l1.Waves[0])
	assert.Equal(t, Wave{"troll1"}, l1.Waves[1])
	assert.Equal(t, "level-1", l1.StageID())

	l3, err := s.Get(3)
	require.NoError(t, err)
	assert.Equal(t, 1.0, l3.SpawnInterval)
	assert.Len(t, l3.Waves, 6)

	test, err := s.Get(-1)
	require.NoError(t, err)
	assert.Equal(t, []Wave{{"orc1"}}, test.Waves)

	known := func(name string) bool {
		switch name {
		case "orc1", "orc2", "troll1", "evilKnight":
			return true
		}
		return false
	}
	assert.NoError(t, s.Validate(3, known))
}

func TestInvalidLevel(t *testing.T) {
	_, err := Default().Get(7)
	assert.True(t, errors.Is(err, ErrInvalidLevel))
}

func TestLevelValidate(t *testing.T) {
	tests := []struct {
		name  string
		level Level
	}{
		{"no interval", Level{Number: 1, Waves: []Wave{{"orc1"}}}},
		{"no waves", Level{Number: 1, SpawnInterval: 1}},
		{"too wide", Level{Number: 1, SpawnInterval: 1, Waves: []Wave{{"orc1", "orc1", "orc1", "orc1"}}}},
		{"unknown enemy", Level{Number: 1, SpawnInterval: 1, Waves: []Wave{{"dragon"}}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.level.Validate(3, func(n string) bool { return n == "orc1" }))
		})
	}
}

func TestNewSetRejectsDuplicatesAndEndless(t *testing.T) {
	_, err := NewSet([]Level{{Number: 1}, {Number: 1}})
	assert.Error(t, err)
	_, err = NewSet([]Level{{Number: EndlessNumber}})
	assert.Error(t, err)
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levels.yaml")
	data := []byte("levels:\n  - number: 9\n    spawn_interval: 0.5\n    waves:\n      - [orc2, \"~\"]\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	l, err := s.Get(9)
	require.NoError(t, err)
	assert.Equal(t, []Wave{{"orc2", Empty}}, l.Waves)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestQueue(t *testing.T) {
	q := NewQueue([]Wave{{"orc1", Empty}, {"troll1"}})
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, 2, q.Enemies())

	w, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, "[orc1 -]", w.String())

	q.Push(Wave{"orc2", "orc2"})
	assert.Equal(t, 2, q.Len())
	q.Pop()
	q.Pop()
	_, ok = q.Pop()
	assert.False(t, ok)
}

func TestPartition(t *testing.T) {
	b := Partition(3)
	require.Len(t, b, 3)
	assert.InDelta(t, 3.0/6, b[0], 1e-9)
	assert.InDelta(t, 5.0/6, b[1], 1e-9)
	assert.Equal(t, 1.0, b[2])
	assert.Nil(t, Partition(0))

	assert.Equal(t, 0, bucketIndex(b, 0))
	assert.Equal(t, 1, bucketIndex(b, 0.6))
	assert.Equal(t, 2, bucketIndex(b, 0.99))
}

func TestAllocateTotals(t *testing.T) {
	difficulties := []int{4, 1, 2, 3}
	for seed := int64(1); seed <= 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		target := 5 + int(seed%40)
		alloc := Allocate(target, difficulties, rng)

		sum := 0
		for _, d := range alloc {
			sum += d
		}
		assert.GreaterOrEqual(t, sum, target, "seed %d", seed)
		assert.Less(t, sum, target+4, "seed %d", seed)
	}
	assert.Nil(t, Allocate(0, difficulties, rand.New(rand.NewSource(1))))
}

func TestAllocateGuardUsesSmallest(t *testing.T) {
	// Only 3s and 5s: a remainder of 1 or 2 forces a 3.
	for seed := int64(1); seed <= 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		alloc := Allocate(7, []int{5, 3}, rng)
		sum := 0
		for _, d := range alloc {
			sum += d
		}
		assert.GreaterOrEqual(t, sum, 7)
		assert.Less(t, sum, 12)
	}
}

func TestPadNeverEmptiesAWave(t *testing.T) {
	for seed := int64(1); seed <= 100; seed++ {
		rng := rand.New(rand.NewSource(seed))
		alloc := Allocate(10+int(seed%25), []int{1, 2, 3, 4}, rng)
		padded := Pad(alloc, 3, rng)
		require.Zero(t, len(padded)%3)
		for _, wave := range Chunk(padded, 3) {
			empty := true
			for _, d := range wave {
				if d != 0 {
					empty = false
				}
			}
			assert.False(t, empty, "seed %d produced an empty wave", seed)
		}
	}
}

func TestGenerate(t *testing.T) {
	roster := []Monster{{"orc1", 1}, {"orc2", 2}, {"troll1", 3}, {"evilKnight", 4}}
	waves, err := Generate(20, roster, 3, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	require.NotEmpty(t, waves)

	total := 0
	weights := map[string]int{"orc1": 1, "orc2": 2, "troll1": 3, "evilKnight": 4}
	for _, w := range waves {
		assert.Len(t, w, 3)
		assert.Positive(t, w.Enemies())
		for _, name := range w {
			total += weights[name]
		}
	}
	assert.GreaterOrEqual(t, total, 20)

	again, err := Generate(20, roster, 3, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.Equal(t, waves, again, "same seed, same waves")

	_, err = Generate(10, nil, 3, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
	_, err = Generate(10, []Monster{{"ghost", 0}}, 3, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}
