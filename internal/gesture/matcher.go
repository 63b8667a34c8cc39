package gesture

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/runes/internal/core"
)

// Reject is the cost sentinel for cells and filters that rule a template out.
const Reject = math.MaxInt16

// ErrNoTemplates is returned when a matcher is built without templates.
var ErrNoTemplates = errors.New("gesture: template table is empty")

// ID names a gesture in the vocabulary, e.g. "horizontalLine".
type ID string

// Params holds the recognizer tuning values.
type Params struct {
	SliceCount int     `yaml:"slice_count"`
	DeltaMove  float64 `yaml:"delta_move"`
	CostMax    int     `yaml:"cost_max"`
}

// DefaultParams returns the standard eight-direction tuning.
func DefaultParams() Params {
	return Params{SliceCount: 8, DeltaMove: 16, CostMax: 10}
}

// Validate checks the parameters for usable values.
func (p Params) Validate() error {
	if p.SliceCount < 2 {
		return fmt.Errorf("gesture: slice_count must be at least 2, got %d", p.SliceCount)
	}
	if p.DeltaMove < 0 {
		return fmt.Errorf("gesture: delta_move must not be negative, got %v", p.DeltaMove)
	}
	if p.CostMax <= 0 {
		return fmt.Errorf("gesture: cost_max must be positive, got %d", p.CostMax)
	}
	return nil
}

// PathInfo describes the encoded stroke handed to template filters.
type PathInfo struct {
	Points     []core.Vec2 // resampled points
	Bounds     core.Rect
	Directions []int
}

// Filter adjusts the raw edit cost of a template for a given stroke.
type Filter func(cost int, info PathInfo) int

// Template is a named direction sequence with an optional cost filter.
type Template struct {
	ID         ID
	Directions []int
	Filter     Filter
}

// Match is the outcome of classifying a stroke.
type Match struct {
	ID   ID
	Cost int
}

// Matcher compares strokes against a fixed table of templates.
// It is immutable after construction and safe for concurrent use.
type Matcher struct {
	params    Params
	encoder   Encoder
	templates []Template
}

// NewMatcher validates params and templates and builds a matcher.
// Templates keep their order; it decides ties.
func NewMatcher(params Params, templates []Template) (*Matcher, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, ErrNoTemplates
	}
	seen := make(map[ID]bool, len(templates))
	for _, t := range templates {
		if t.ID == "" {
			return nil, errors.New("gesture: template without id")
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("gesture: duplicate template %q", t.ID)
		}
		seen[t.ID] = true
		if len(t.Directions) == 0 {
			return nil, fmt.Errorf("gesture: template %q has no directions", t.ID)
		}
		for _, d := range t.Directions {
			if d < 0 || d >= params.SliceCount {
				return nil, fmt.Errorf("gesture: template %q direction %d out of range", t.ID, d)
			}
		}
	}
	return &Matcher{
		params:    params,
		encoder:   Encoder{SliceCount: params.SliceCount, DeltaMove: params.DeltaMove},
		templates: append([]Template(nil), templates...),
	}, nil
}

// Params returns the tuning the matcher was built with.
func (m *Matcher) Params() Params {
	return m.params
}

// Encoder returns the chain-code encoder used by the matcher.
func (m *Matcher) Encoder() Encoder {
	return m.encoder
}

// Templates returns the registered templates in registration order.
func (m *Matcher) Templates() []Template {
	return append([]Template(nil), m.templates...)
}

// Has reports whether a template with the given id is registered.
func (m *Matcher) Has(id ID) bool {
	for _, t := range m.templates {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Describe resamples and encodes raw points.
func (m *Matcher) Describe(points []core.Vec2) PathInfo {
	resampled := m.encoder.Resample(points)
	return PathInfo{
		Points:     resampled,
		Bounds:     core.Bounds(resampled),
		Directions: m.encoder.Directions(resampled),
	}
}

// Match classifies raw stroke points.
func (m *Matcher) Match(points []core.Vec2) (Match, bool) {
	return m.MatchPath(m.Describe(points))
}

// MatchPath classifies an already encoded stroke. The lowest cost under
// CostMax wins; on equal cost the earlier template is kept.
func (m *Matcher) MatchPath(info PathInfo) (Match, bool) {
	if len(info.Directions) == 0 {
		return Match{}, false
	}
	best := Match{Cost: m.params.CostMax}
	found := false
	for _, t := range m.templates {
		cost := EditCost(t.Directions, info.Directions, m.params.SliceCount)
		if t.Filter != nil {
			cost = t.Filter(cost, info)
		}
		if cost < best.Cost {
			best = Match{ID: t.ID, Cost: cost}
			found = true
		}
	}
	return best, found
}

// DirectionCost is the circular distance between two direction codes.
func DirectionCost(a, b, slices int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	return min(d, slices-d)
}

// EditCost returns the edit distance between a template and an input chain
// code where every cell costs the direction difference of its pair.
// Either sequence being empty yields Reject.
func EditCost(template, input []int, slices int) int {
	if len(template) == 0 || len(input) == 0 {
		return Reject
	}
	rows, cols := len(template)+1, len(input)+1
	table := make([]int, rows*cols)
	for x := range rows {
		table[x*cols] = Reject
	}
	for y := range cols {
		table[y] = Reject
	}
	table[0] = 0

	for x := 1; x < rows; x++ {
		for y := 1; y < cols; y++ {
			cost := DirectionCost(template[x-1], input[y-1], slices)
			best := min(table[(x-1)*cols+y], table[x*cols+y-1], table[(x-1)*cols+y-1])
			table[x*cols+y] = best + cost
		}
	}
	return table[rows*cols-1]
}
