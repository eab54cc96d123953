package processing

import (
	"math"

	"github.com/ankek/terraform-provider-taskchart/internal/renderer"
)

// binning is one way to pick the number of histogram bins for n values.
type binning struct {
	name string
	bins func(n float64) int
}

var binnings = []binning{
	{"Square Root Choice", func(n float64) int { return int(math.Ceil(math.Sqrt(n))) }},
	{"Sturges Formula", func(n float64) int { return int(math.Ceil(math.Log2(n) + 1)) }},
	{"Rice Rule", func(n float64) int { return int(math.Ceil(2 * math.Cbrt(n))) }},
}

type histView struct {
	name string
	x    []float64
	y    []float64
}

type histogram struct {
	name     string
	disabled *int
	views    []histView
}

func newHistogram(name string, disabled *int, size int, lo, hi float64) *histogram {
	h := &histogram{name: name, disabled: disabled}
	if size <= 0 {
		return h
	}
	for _, b := range binnings {
		bins := b.bins(float64(size))
		if bins < 1 {
			bins = 1
		}
		width := (hi - lo) / float64(bins)
		v := histView{name: b.name, x: make([]float64, bins), y: make([]float64, bins)}
		for i := range v.x {
			v.x[i] = lo + width*float64(i+1)
		}
		h.views = append(h.views, v)
	}
	return h
}

// add counts value in the first bin whose upper edge is not below it.
func (h *histogram) add(value float64) {
	for _, v := range h.views {
		for i, edge := range v.x {
			if value <= edge {
				v.y[i]++
				break
			}
		}
	}
}

// histograms renders a set of histograms grouped by view.
type histograms struct {
	order []string
	byKey map[string]*histogram
}

func (hs *histograms) put(h *histogram) {
	if hs.byKey == nil {
		hs.byKey = make(map[string]*histogram)
	}
	hs.order = append(hs.order, h.name)
	hs.byKey[h.name] = h
}

func (hs *histograms) render() renderer.HistogramReport {
	var report renderer.HistogramReport
	for _, name := range hs.order {
		h := hs.byKey[name]
		for idx, v := range h.views {
			values := make([]renderer.XY, len(v.x))
			for i := range v.x {
				values[i] = renderer.XY{X: v.x[i], Y: v.y[i]}
			}
			s := renderer.HistogramSeries{Key: h.name, View: v.name, Disabled: h.disabled, Values: values}
			if idx < len(report.Data) {
				report.Data[idx] = append(report.Data[idx], s)
			} else {
				report.Data = append(report.Data, []renderer.HistogramSeries{s})
			}
		}
	}
	for i, group := range report.Data {
		report.Views = append(report.Views, renderer.HistogramView{ID: i, Name: group[0].View})
	}
	return report
}

// MainHistogram is the histogram of iteration durations. Failed
// iterations count as 0.
type MainHistogram struct {
	hists histograms
}

func NewMainHistogram(info Info) *MainHistogram {
	c := &MainHistogram{}
	c.hists.put(newHistogram("task", nil, info.IterationsCount, info.MinDuration, info.MaxDuration))
	return c
}

func (c *MainHistogram) Widget() renderer.Kind { return renderer.KindHistogram }

func (c *MainHistogram) AddIteration(it Iteration) {
	v := it.Duration
	if it.Failed() {
		v = 0
	}
	c.hists.byKey["task"].add(v)
}

func (c *MainHistogram) Render() any { return c.hists.render() }

// AtomicHistogram has one histogram per declared atomic action; only the
// first starts enabled.
type AtomicHistogram struct {
	hists histograms
}

func NewAtomicHistogram(info Info) *AtomicHistogram {
	c := &AtomicHistogram{}
	for i, a := range info.Atomic {
		disabled := i
		c.hists.put(newHistogram(a.Name, &disabled, info.IterationsCount, a.MinDuration, a.MaxDuration))
	}
	return c
}

func (c *AtomicHistogram) Widget() renderer.Kind { return renderer.KindHistogram }

// AddIteration ignores atomic actions that were not declared up front.
func (c *AtomicHistogram) AddIteration(it Iteration) {
	for _, name := range c.hists.order {
		c.hists.byKey[name].add(it.atomic(name))
	}
}

func (c *AtomicHistogram) Render() any { return c.hists.render() }
