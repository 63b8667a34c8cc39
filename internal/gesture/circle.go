package gesture

import (
	"math"

	"github.com/vovakirdan/runes/internal/core"
)

// CircleParams tunes closed-loop detection.
type CircleParams struct {
	MinPoints    int     `yaml:"min_points"`    // resampled points required
	MinRadius    float64 `yaml:"min_radius"`    // smallest accepted mean radius
	MaxDeviation float64 `yaml:"max_deviation"` // radius std-dev relative to the mean
	MinRoundness float64 `yaml:"min_roundness"` // smallest/largest radius
	MaxGap       float64 `yaml:"max_gap"`       // start-end distance relative to the mean radius
	MinSweep     float64 `yaml:"min_sweep"`     // total turned angle in radians
	MinOctants   int     `yaml:"min_octants"`   // distinct chain-code directions
}

// DefaultCircleParams returns a tolerance suited to hand-drawn loops.
func DefaultCircleParams() CircleParams {
	return CircleParams{
		MinPoints:    8,
		MinRadius:    30,
		MaxDeviation: 0.25,
		MinRoundness: 0.6,
		MaxGap:       1.0,
		MinSweep:     1.75 * math.Pi,
		MinOctants:   6,
	}
}

// Circle is a detected closed loop.
type Circle struct {
	Center core.Vec2
	Radius float64
}

// Bounds returns the square enclosing the circle.
func (c Circle) Bounds() core.Rect {
	return core.RectAround(c.Center, core.V(2*c.Radius, 2*c.Radius))
}

// DetectCircle reports whether an encoded stroke is a closed, round loop.
// A polygon with few sides fails the octant or roundness test, so diamonds
// stay available to the template matcher.
func DetectCircle(info PathInfo, p CircleParams) (Circle, bool) {
	pts := info.Points
	if len(pts) < p.MinPoints || len(pts) < 3 {
		return Circle{}, false
	}

	var center core.Vec2
	for _, pt := range pts {
		center = center.Add(pt)
	}
	center = center.Scale(1 / float64(len(pts)))

	radii := make([]float64, len(pts))
	mean := 0.0
	minR, maxR := math.Inf(1), 0.0
	for i, pt := range pts {
		r := pt.Sub(center).Len()
		radii[i] = r
		mean += r
		minR = math.Min(minR, r)
		maxR = math.Max(maxR, r)
	}
	mean /= float64(len(pts))
	if mean < p.MinRadius || maxR == 0 {
		return Circle{}, false
	}

	variance := 0.0
	for _, r := range radii {
		variance += (r - mean) * (r - mean)
	}
	if math.Sqrt(variance/float64(len(radii)))/mean > p.MaxDeviation {
		return Circle{}, false
	}
	if minR/maxR < p.MinRoundness {
		return Circle{}, false
	}
	if pts[0].Sub(pts[len(pts)-1]).Len() > p.MaxGap*mean {
		return Circle{}, false
	}

	sweep := 0.0
	prev := math.Atan2(pts[0].Y-center.Y, pts[0].X-center.X)
	for _, pt := range pts[1:] {
		a := math.Atan2(pt.Y-center.Y, pt.X-center.X)
		d := a - prev
		for d > math.Pi {
			d -= 2 * math.Pi
		}
		for d <= -math.Pi {
			d += 2 * math.Pi
		}
		sweep += d
		prev = a
	}
	if math.Abs(sweep) < p.MinSweep {
		return Circle{}, false
	}

	octants := make(map[int]struct{}, 8)
	for _, d := range info.Directions {
		octants[d] = struct{}{}
	}
	if len(octants) < p.MinOctants {
		return Circle{}, false
	}

	return Circle{Center: center, Radius: mean}, true
}
