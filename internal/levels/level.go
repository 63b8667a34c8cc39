package levels

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidLevel is returned for level numbers without a definition.
var ErrInvalidLevel = errors.New("levels: invalid level number")

// EndlessNumber identifies the generated endless stage.
const EndlessNumber = 0

// Level is a playable stage.
type Level struct {
	Number        int     `yaml:"number"`
	Name          string  `yaml:"name"`
	SpawnInterval float64 `yaml:"spawn_interval"`
	Waves         []Wave  `yaml:"waves"`
}

// Endless reports whether the level is the generated endless stage.
func (l Level) Endless() bool {
	return l.Number == EndlessNumber
}

// StageID is the key scores are stored under.
func (l Level) StageID() string {
	if l.Endless() {
		return "endless"
	}
	return fmt.Sprintf("level-%d", l.Number)
}

// Queue returns a fresh wave queue for the level.
func (l Level) Queue() *Queue {
	return NewQueue(l.Waves)
}

// Validate checks the level against the arena's lane count and the set of
// known enemy type names.
func (l Level) Validate(lanes int, known func(string) bool) error {
	if l.SpawnInterval <= 0 {
		return fmt.Errorf("level %d: spawn_interval must be positive", l.Number)
	}
	if len(l.Waves) == 0 && !l.Endless() {
		return fmt.Errorf("level %d: no waves", l.Number)
	}
	for i, w := range l.Waves {
		if len(w) > lanes {
			return fmt.Errorf("level %d wave %d: %d entries for %d lanes", l.Number, i+1, len(w), lanes)
		}
		for _, name := range w {
			if name != Empty && known != nil && !known(name) {
				return fmt.Errorf("level %d wave %d: unknown enemy %q", l.Number, i+1, name)
			}
		}
	}
	return nil
}

// Set holds every defined level keyed by number.
type Set struct {
	levels map[int]Level
}

// NewSet builds a set, rejecting duplicate numbers.
func NewSet(levels []Level) (*Set, error) {
	s := &Set{levels: make(map[int]Level, len(levels))}
	for _, l := range levels {
		if l.Endless() {
			return nil, fmt.Errorf("levels: number %d is reserved for endless mode", EndlessNumber)
		}
		if _, dup := s.levels[l.Number]; dup {
			return nil, fmt.Errorf("levels: duplicate level %d", l.Number)
		}
		waves := make([]Wave, len(l.Waves))
		for i, w := range l.Waves {
			waves[i] = w.Normalize()
		}
		l.Waves = waves
		s.levels[l.Number] = l
	}
	return s, nil
}

// Get returns the level with the given number.
func (s *Set) Get(number int) (Level, error) {
	l, ok := s.levels[number]
	if !ok {
		return Level{}, fmt.Errorf("%w: %d", ErrInvalidLevel, number)
	}
	return l, nil
}

// Numbers returns the defined level numbers in ascending order.
func (s *Set) Numbers() []int {
	out := make([]int, 0, len(s.levels))
	for n := range s.levels {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Levels returns the levels ordered by number.
func (s *Set) Levels() []Level {
	out := make([]Level, 0, len(s.levels))
	for _, n := range s.Numbers() {
		out = append(out, s.levels[n])
	}
	return out
}

// Validate checks every level.
func (s *Set) Validate(lanes int, known func(string) bool) error {
	for _, l := range s.Levels() {
		if err := l.Validate(lanes, known); err != nil {
			return err
		}
	}
	return nil
}
