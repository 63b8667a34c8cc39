package levels

import (
	"errors"
	"fmt"
	"slices"
)

// RNG is the randomness source of the generator. *math/rand.Rand satisfies it.
type RNG interface {
	Float64() float64
	Intn(n int) int
}

// Monster is a roster entry available to the generator.
type Monster struct {
	Name       string
	Difficulty int
}

// Partition returns cumulative bucket thresholds for n difficulties sorted
// ascending. The k-th difficulty gets a share proportional to its rank from
// the top, so easier monsters are drawn more often. The last threshold is 1.
func Partition(n int) []float64 {
	if n <= 0 {
		return nil
	}
	denominator := float64(n) * float64(n+1) / 2
	buckets := make([]float64, 0, n)
	numerator := 0.0
	for i := n; i >= 1; i-- {
		numerator += float64(i)
		buckets = append(buckets, numerator/denominator)
	}
	buckets[n-1] = 1
	return buckets
}

// bucketIndex maps a sample in [0, 1) onto a bucket.
func bucketIndex(buckets []float64, p float64) int {
	for i, upper := range buckets {
		if p < upper {
			return i
		}
	}
	return len(buckets) - 1
}

// Allocate draws difficulties until target is reached. When the remainder
// is positive but below the smallest difficulty, the smallest difficulty is
// allocated once more, so the total lands in [target, target+max).
func Allocate(target int, difficulties []int, rng RNG) []int {
	if target <= 0 || len(difficulties) == 0 {
		return nil
	}
	sorted := slices.Clone(difficulties)
	slices.Sort(sorted)
	buckets := Partition(len(sorted))
	smallest := sorted[0]

	var out []int
	remaining := target
	for remaining > 0 {
		d := sorted[bucketIndex(buckets, rng.Float64())]
		out = append(out, d)
		remaining -= d
		if remaining > 0 && remaining < smallest {
			out = append(out, smallest)
			remaining -= smallest
		}
	}
	return out
}

// Pad sorts the allocation and inserts empty lanes (zero) at random
// positions until its length is a multiple of lanes. Fewer than lanes zeros
// are ever inserted, so no wave ends up empty.
func Pad(allocation []int, lanes int, rng RNG) []int {
	out := slices.Clone(allocation)
	slices.Sort(out)
	if len(out) == 0 || lanes <= 1 {
		return out
	}
	if rem := len(out) % lanes; rem != 0 {
		for range lanes - rem {
			at := rng.Intn(len(out))
			out = slices.Insert(out, at, 0)
		}
	}
	return out
}

// Chunk splits a padded allocation into lane-sized waves.
func Chunk(padded []int, lanes int) [][]int {
	if lanes <= 0 {
		return nil
	}
	var out [][]int
	for i := 0; i < len(padded); i += lanes {
		out = append(out, slices.Clone(padded[i:min(i+lanes, len(padded))]))
	}
	return out
}

// Generate builds waves whose total difficulty approaches target using the
// monsters of roster.
func Generate(target int, roster []Monster, lanes int, rng RNG) ([]Wave, error) {
	if len(roster) == 0 {
		return nil, errors.New("levels: empty roster")
	}
	if lanes <= 0 {
		return nil, fmt.Errorf("levels: invalid lane count %d", lanes)
	}
	byDifficulty := make(map[int]string, len(roster))
	difficulties := make([]int, 0, len(roster))
	for _, m := range roster {
		if m.Difficulty <= 0 {
			return nil, fmt.Errorf("levels: monster %q has non-positive difficulty", m.Name)
		}
		if _, ok := byDifficulty[m.Difficulty]; !ok {
			byDifficulty[m.Difficulty] = m.Name
		}
		difficulties = append(difficulties, m.Difficulty)
	}

	chunks := Chunk(Pad(Allocate(target, difficulties, rng), lanes, rng), lanes)
	waves := make([]Wave, 0, len(chunks))
	for _, c := range chunks {
		w := make(Wave, len(c))
		for i, d := range c {
			w[i] = byDifficulty[d]
		}
		waves = append(waves, w)
	}
	return waves, nil
}
