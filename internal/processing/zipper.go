package processing

import (
	"github.com/ankek/terraform-provider-taskchart/internal/renderer"
)

// ZippedSize is the most points a series keeps.
const ZippedSize = 1000

type weighted struct {
	weight float64
	value  float64
}

// zipper compresses a stream of values into at most zippedSize points.
// With n expected values every point averages n/zippedSize consecutive
// values; a value on a bucket boundary is split between both buckets.
// Points are numbered by the position of the values they cover.
type zipper struct {
	baseSize int
	ratio    float64
	order    int
	cached   float64
	pending  []weighted
	points   []renderer.Point
}

func newZipper(baseSize, zippedSize int) *zipper {
	ratio := 1.0
	if zippedSize > 0 && baseSize > zippedSize {
		ratio = float64(baseSize) / float64(zippedSize)
	}
	return &zipper{baseSize: baseSize, ratio: ratio}
}

func (z *zipper) add(value float64) {
	z.order++
	if z.ratio <= 1 {
		z.points = append(z.points, renderer.Point{float64(z.order), value})
		return
	}
	if z.cached+1 < z.ratio {
		z.cached++
		z.pending = append(z.pending, weighted{1, value})
		return
	}
	rest := z.ratio - z.cached
	z.pending = append(z.pending, weighted{rest, value})
	z.points = append(z.points, z.point())
	z.pending = append(z.pending[:0], weighted{1 - rest, value})
	z.cached = 1 - rest
}

func (z *zipper) point() renderer.Point {
	var order int
	switch {
	case float64(z.order)-z.ratio <= 1:
		order = 1
	case z.order == z.baseSize:
		order = z.baseSize
	default:
		order = z.order - int(z.ratio/2)
	}
	sum := 0.0
	for _, p := range z.pending {
		sum += p.weight * p.value
	}
	return renderer.Point{float64(order), sum / z.ratio}
}
