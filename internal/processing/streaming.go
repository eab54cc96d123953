package processing

import (
	"math"
	"sort"
)

// mean is a running average. ok is false until a value was added.
type mean struct {
	sum   float64
	count int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.count++
}

func (m *mean) result() (float64, bool) {
	if m.count == 0 {
		return 0, false
	}
	return m.sum / float64(m.count), true
}

// minMax tracks the extremes of the values added.
type minMax struct {
	min, max float64
	seen     bool
}

func (m *minMax) add(v float64) {
	if !m.seen {
		m.min, m.max, m.seen = v, v, true
		return
	}
	m.min = math.Min(m.min, v)
	m.max = math.Max(m.max, v)
}

// percentile returns the p-th percentile (0..1) of values using linear
// interpolation between the closest ranks.
func percentile(values []float64, p float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	k := float64(len(sorted)-1) * p
	f := math.Floor(k)
	c := math.Ceil(k)
	if f == c {
		return sorted[int(k)], true
	}
	return sorted[int(f)]*(c-k) + sorted[int(c)]*(k-f), true
}

// round3 rounds to 3 decimal places.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
