// Package gesture classifies a drawn stroke into one of a fixed vocabulary of
// symbolic gestures. A stroke is resampled, turned into a chain code of
// octant directions and compared against direction templates with a
// circular edit distance.
package gesture

import (
	"math"

	"github.com/vovakirdan/runes/internal/core"
)

// Encoder turns raw stroke points into a direction chain code.
type Encoder struct {
	SliceCount int     // number of direction buckets around the circle
	DeltaMove  float64 // minimum distance between kept samples
}

// Resample drops points that are within DeltaMove of the last kept point.
// The first and last raw points are always kept.
func (e Encoder) Resample(points []core.Vec2) []core.Vec2 {
	if len(points) < 2 {
		return append([]core.Vec2(nil), points...)
	}
	minSq := e.DeltaMove * e.DeltaMove
	out := make([]core.Vec2, 0, len(points))
	out = append(out, points[0])
	last := points[0]
	for _, p := range points[1 : len(points)-1] {
		if p.DistSq(last) > minSq {
			out = append(out, p)
			last = p
		}
	}
	if tail := points[len(points)-1]; tail != last {
		out = append(out, tail)
	}
	return out
}

// Direction quantizes the heading from a to b into a bucket in [0, SliceCount).
// Bucket 0 points along +x and buckets grow counter-clockwise.
func (e Encoder) Direction(a, b core.Vec2) int {
	angle := math.Atan2(b.Y-a.Y, b.X-a.X)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	slice := 2 * math.Pi / float64(e.SliceCount)
	if angle < slice/2 || angle >= 2*math.Pi-slice/2 {
		return 0
	}
	return int(math.Round(angle/slice)) % e.SliceCount
}

// Directions encodes consecutive pairs of already resampled points.
func (e Encoder) Directions(resampled []core.Vec2) []int {
	if len(resampled) < 2 {
		return nil
	}
	dirs := make([]int, 0, len(resampled)-1)
	for i := 1; i < len(resampled); i++ {
		dirs = append(dirs, e.Direction(resampled[i-1], resampled[i]))
	}
	return dirs
}

// Encode resamples raw points and returns their chain code.
func (e Encoder) Encode(points []core.Vec2) []int {
	return e.Directions(e.Resample(points))
}
