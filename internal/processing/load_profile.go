package processing

import (
	"sort"

	"github.com/ankek/terraform-provider-taskchart/internal/renderer"
)

// LoadProfile charts how many iterations ran in parallel over the load
// duration. The axis is padded by two steps so the profile drops back to
// zero at the end.
type LoadProfile struct {
	name    string
	start   float64
	step    float64
	axis    []float64
	running []float64
}

// NewLoadProfile splits the load duration into scale steps.
func NewLoadProfile(info Info, name string, scale int) *LoadProfile {
	if scale <= 0 {
		scale = 100
	}
	duration := info.LoadDuration * (1 + 2.0/float64(scale))
	step := duration / float64(scale)

	var axis []float64
	for x := 0; x < scale; x++ {
		if v := step * float64(x); v < duration {
			axis = append(axis, v)
		}
	}
	axis = append(axis, duration)

	return &LoadProfile{
		name:    name,
		start:   info.TstampStart,
		step:    step,
		axis:    axis,
		running: make([]float64, len(axis)),
	}
}

func (c *LoadProfile) Widget() renderer.Kind { return renderer.KindStackedArea }

// bisect returns the index after the last axis value <= v.
func (c *LoadProfile) bisect(v float64) int {
	return sort.Search(len(c.axis), func(i int) bool { return c.axis[i] > v })
}

func (c *LoadProfile) AddIteration(it Iteration) {
	if c.step <= 0 {
		return
	}
	ts := it.Timestamp - c.start
	end := ts + it.Duration

	started := c.bisect(ts)
	ended := c.bisect(end)
	if ended > 0 && c.axis[ended-1] == end {
		ended--
	}
	last := len(c.axis) - 1
	if started > last {
		return
	}
	if ended > last {
		ended = last
	}

	for idx := started + 1; idx < ended; idx++ {
		c.running[idx]++
	}
	if started == ended {
		c.running[ended] += it.Duration / c.step
		return
	}
	c.running[started] += (c.axis[started] - ts) / c.step
	c.running[ended] += (end - c.axis[ended-1]) / c.step
}

func (c *LoadProfile) Render() any {
	points := make([]renderer.Point, len(c.axis))
	for i, x := range c.axis {
		points[i] = renderer.Point{x, c.running[i]}
	}
	return []renderer.LabeledPoints{{Label: c.name, Points: points}}
}
