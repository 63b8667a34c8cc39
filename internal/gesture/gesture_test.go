package gesture

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/runes/internal/core"
)

func defaultMatcher(t *testing.T) *Matcher {
	t.Helper()
	m, err := NewMatcher(DefaultParams(), DefaultTemplates())
	require.NoError(t, err)
	return m
}

// polyline interpolates n points per segment through the given vertices.
func polyline(n int, vertices ...core.Vec2) []core.Vec2 {
	pts := []core.Vec2{vertices[0]}
	for i := 1; i < len(vertices); i++ {
		a, b := vertices[i-1], vertices[i]
		for k := 1; k <= n; k++ {
			f := float64(k) / float64(n)
			pts = append(pts, a.Add(b.Sub(a).Scale(f)))
		}
	}
	return pts
}

func circlePoints(center core.Vec2, radius float64, n int) []core.Vec2 {
	pts := make([]core.Vec2, 0, n+1)
	for i := 0; i <= n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts = append(pts, center.Add(core.V(math.Cos(a)*radius, math.Sin(a)*radius)))
	}
	return pts
}

func TestEncoderDirection(t *testing.T) {
	e := Encoder{SliceCount: 8, DeltaMove: 16}
	tests := []struct {
		name string
		to   core.Vec2
		want int
	}{
		{"east", core.V(1, 0), 0},
		{"north-east", core.V(1, 1), 1},
		{"north", core.V(0, 1), 2},
		{"west", core.V(-1, 0), 4},
		{"south", core.V(0, -1), 6},
		{"south-east", core.V(1, -1), 7},
		{"just below east", core.V(1, -0.1), 0},
		{"just above east", core.V(1, 0.1), 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, e.Direction(core.V(0, 0), tc.to))
		})
	}
}

func TestEncoderResample(t *testing.T) {
	e := Encoder{SliceCount: 8, DeltaMove: 16}

	pts := []core.Vec2{core.V(0, 0), core.V(5, 0), core.V(16, 0), core.V(17, 0), core.V(40, 0), core.V(41, 0)}
	got := e.Resample(pts)
	// (16,0) sits exactly on the threshold and is dropped; the tail is kept.
	assert.Equal(t, []core.Vec2{core.V(0, 0), core.V(17, 0), core.V(40, 0), core.V(41, 0)}, got)

	assert.Empty(t, e.Resample(nil))
	assert.Equal(t, []core.Vec2{core.V(3, 3)}, e.Resample([]core.Vec2{core.V(3, 3)}))
	assert.Len(t, e.Resample([]core.Vec2{core.V(3, 3), core.V(3, 3)}), 1)
}

func TestEncodeDeterministic(t *testing.T) {
	e := Encoder{SliceCount: 8, DeltaMove: 16}
	pts := polyline(6, core.V(0, 0), core.V(100, 80), core.V(180, -20), core.V(60, -90))
	first := e.Encode(pts)
	require.NotEmpty(t, first)
	for range 5 {
		assert.Equal(t, first, e.Encode(pts))
	}
}

func TestDirectionCost(t *testing.T) {
	for a := range 8 {
		assert.Equal(t, 0, DirectionCost(a, a, 8))
		for b := range 8 {
			assert.Equal(t, DirectionCost(a, b, 8), DirectionCost(b, a, 8))
			assert.LessOrEqual(t, DirectionCost(a, b, 8), 4)
		}
	}
	assert.Equal(t, 1, DirectionCost(0, 7, 8))
	assert.Equal(t, 4, DirectionCost(0, 4, 8))
	assert.Equal(t, 3, DirectionCost(1, 6, 8))
}

func TestEditCost(t *testing.T) {
	tests := []struct {
		name     string
		template []int
		input    []int
		want     int
	}{
		{"repeated direction", []int{0}, []int{0, 0, 0}, 0},
		{"exact", []int{1, 3}, []int{1, 3}, 0},
		{"opposite", []int{0}, []int{4}, 4},
		{"one neighbour", []int{0, 2}, []int{0, 1, 2}, 1},
		{"empty input", []int{0}, nil, Reject},
		{"empty template", nil, []int{0}, Reject},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EditCost(tc.template, tc.input, 8))
		})
	}
}

func TestNewMatcherErrors(t *testing.T) {
	_, err := NewMatcher(DefaultParams(), nil)
	assert.ErrorIs(t, err, ErrNoTemplates)

	_, err = NewMatcher(DefaultParams(), []Template{{ID: "a", Directions: []int{9}}})
	assert.Error(t, err)

	_, err = NewMatcher(DefaultParams(), []Template{{ID: "a", Directions: []int{0}}, {ID: "a", Directions: []int{1}}})
	assert.Error(t, err)

	_, err = NewMatcher(Params{SliceCount: 8, DeltaMove: 16}, DefaultTemplates())
	assert.Error(t, err, "zero cost_max must be rejected")
}

func TestMatchHorizontalLine(t *testing.T) {
	m := defaultMatcher(t)
	got, ok := m.Match([]core.Vec2{core.V(0, 0), core.V(20, 0), core.V(40, 0)})
	require.True(t, ok)
	assert.Equal(t, HorizontalLine, got.ID)
	assert.Equal(t, 0, got.Cost)

	got, ok = m.Match([]core.Vec2{core.V(40, 0), core.V(20, 0), core.V(0, 0)})
	require.True(t, ok)
	assert.Equal(t, HorizontalLine2, got.ID)
}

func TestMatchTooFewSamples(t *testing.T) {
	m := defaultMatcher(t)
	_, ok := m.Match([]core.Vec2{core.V(5, 5)})
	assert.False(t, ok)
	_, ok = m.Match([]core.Vec2{core.V(5, 5), core.V(5, 5)})
	assert.False(t, ok)
	_, ok = m.Match(nil)
	assert.False(t, ok)
}

func TestMatchNoisyTailIsStable(t *testing.T) {
	m := defaultMatcher(t)
	stroke := polyline(4, core.V(0, 0), core.V(60, 60), core.V(120, 0))
	want, ok := m.Match(stroke)
	require.True(t, ok)
	assert.Equal(t, ArrowDown, want.ID)

	noisy := append(append([]core.Vec2(nil), stroke...), stroke[len(stroke)-1], stroke[len(stroke)-1])
	require.Equal(t, m.Describe(stroke).Points, m.Describe(noisy).Points)
	got, ok := m.Match(noisy)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestMatchTieKeepsFirstTemplate(t *testing.T) {
	m, err := NewMatcher(DefaultParams(), []Template{
		{ID: "first", Directions: []int{2}},
		{ID: "second", Directions: []int{2}},
	})
	require.NoError(t, err)
	got, ok := m.Match([]core.Vec2{core.V(0, 0), core.V(0, 50)})
	require.True(t, ok)
	assert.Equal(t, ID("first"), got.ID)
}

func TestMatchCostCeiling(t *testing.T) {
	m, err := NewMatcher(Params{SliceCount: 8, DeltaMove: 16, CostMax: 4}, []Template{
		{ID: "east", Directions: []int{0}},
	})
	require.NoError(t, err)
	_, ok := m.Match([]core.Vec2{core.V(0, 0), core.V(-50, 0)})
	assert.False(t, ok, "cost equal to the ceiling is not a match")
}

func TestElongatedFilter(t *testing.T) {
	m, err := NewMatcher(DefaultParams(), []Template{
		{ID: HorizontalLine, Directions: []int{0}, Filter: Elongated(true, 2)},
	})
	require.NoError(t, err)

	_, ok := m.Match([]core.Vec2{core.V(0, 0), core.V(30, 20), core.V(60, 40)})
	assert.False(t, ok, "a diagonal stroke is not a horizontal line")

	_, ok = m.Match([]core.Vec2{core.V(0, 0), core.V(30, 3), core.V(60, 0)})
	assert.True(t, ok)
}

func TestFilterByName(t *testing.T) {
	f, err := FilterByName("")
	require.NoError(t, err)
	assert.Nil(t, f)

	_, err = FilterByName("diagonal")
	assert.Error(t, err)
}

func TestDefaultTemplates(t *testing.T) {
	templates := DefaultTemplates()
	assert.Len(t, templates, 23)
	assert.Equal(t, HorizontalLine, templates[0].ID)
	assert.Equal(t, Ribbon, templates[len(templates)-1].ID)
}

func TestDetectCircle(t *testing.T) {
	m := defaultMatcher(t)
	info := m.Describe(circlePoints(core.V(200, 300), 100, 32))

	c, ok := DetectCircle(info, DefaultCircleParams())
	require.True(t, ok)
	assert.InDelta(t, 200, c.Center.X, 5)
	assert.InDelta(t, 300, c.Center.Y, 5)
	assert.InDelta(t, 100, c.Radius, 5)
}

func TestDetectCircleRejectsShapes(t *testing.T) {
	m := defaultMatcher(t)
	tests := []struct {
		name   string
		points []core.Vec2
	}{
		{"line", polyline(20, core.V(0, 0), core.V(400, 0))},
		{"diamond", polyline(5, core.V(0, -100), core.V(100, 0), core.V(0, 100), core.V(-100, 0), core.V(0, -100))},
		{"tiny loop", circlePoints(core.V(0, 0), 10, 32)},
		{"open arc", circlePoints(core.V(0, 0), 100, 32)[:16]},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := DetectCircle(m.Describe(tc.points), DefaultCircleParams())
			assert.False(t, ok)
		})
	}
}

func TestRecognizerStroke(t *testing.T) {
	r := NewRecognizer(defaultMatcher(t), DefaultCircleParams())

	assert.Equal(t, ResultNone, r.End().Kind, "End without Begin")

	r.Move(core.V(1, 1))
	assert.False(t, r.Active())

	diamond := polyline(5, core.V(0, -100), core.V(100, 0), core.V(0, 100), core.V(-100, 0), core.V(0, -100))
	r.Begin(diamond[0])
	for _, p := range diamond[1:] {
		r.Move(p)
	}
	res := r.End()
	require.Equal(t, ResultGesture, res.Kind)
	assert.Equal(t, Diamond, res.Match.ID)
	assert.False(t, r.Active())

	circle := circlePoints(core.V(0, 0), 120, 32)
	r.Begin(circle[0])
	for _, p := range circle[1:] {
		r.Move(p)
	}
	res = r.End()
	assert.Equal(t, ResultCircle, res.Kind)
	assert.Equal(t, "circle", res.Kind.String())
}
