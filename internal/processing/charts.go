package processing

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ankek/terraform-provider-taskchart/internal/renderer"
)

// ErrUnknownChart is returned for a chart name that is not registered.
var ErrUnknownChart = errors.New("unknown chart")

// Chart consumes iterations and renders a widget payload.
type Chart interface {
	// Widget is the kind that draws the payload.
	Widget() renderer.Kind
	AddIteration(it Iteration)
	Render() any
}

// Chart names accepted by New.
const (
	MainStackedAreaName   = "main_stacked_area"
	AtomicStackedAreaName = "atomic_stacked_area"
	LoadProfileName       = "load_profile"
	AtomicAvgName         = "atomic_avg"
	MainHistogramName     = "main_histogram"
	AtomicHistogramName   = "atomic_histogram"
	MainStatsTableName    = "main_stats_table"
)

// Names lists every chart New accepts, in report order.
var Names = []string{
	MainStackedAreaName,
	MainHistogramName,
	MainStatsTableName,
	LoadProfileName,
	AtomicAvgName,
	AtomicStackedAreaName,
	AtomicHistogramName,
}

// New returns the chart registered under name.
func New(name string, info Info) (Chart, error) {
	switch name {
	case MainStackedAreaName:
		return NewMainStackedArea(info), nil
	case AtomicStackedAreaName:
		return NewAtomicStackedArea(info), nil
	case LoadProfileName:
		return NewLoadProfile(info, "parallel iterations", 100), nil
	case AtomicAvgName:
		return NewAtomicAvg(info), nil
	case MainHistogramName:
		return NewMainHistogram(info), nil
	case AtomicHistogramName:
		return NewAtomicHistogram(info), nil
	case MainStatsTableName:
		return NewMainStatsTable(info), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownChart, name)
	}
}

// Build runs every iteration of w through the named chart.
func Build(name string, w *Workload) (renderer.Kind, any, error) {
	chart, err := New(name, w.sizedInfo())
	if err != nil {
		return "", nil, err
	}
	for _, it := range w.Iterations {
		chart.AddIteration(it)
	}
	return chart.Widget(), chart.Render(), nil
}

// Process runs w through every chart in one pass and returns the payloads
// keyed by chart name.
func Process(w *Workload) map[string]any {
	info := w.sizedInfo()
	charts := make(map[string]Chart, len(Names))
	for _, name := range Names {
		c, _ := New(name, info)
		charts[name] = c
	}
	for _, it := range w.Iterations {
		for _, name := range Names {
			charts[name].AddIteration(it)
		}
	}
	out := make(map[string]any, len(charts))
	for name, c := range charts {
		out[name] = c.Render()
	}
	return out
}

// series accumulates one zipped value stream per name, in first-seen
// order. A name that misses an iteration gets 0 for it, so every stream
// stays aligned with the iteration number.
type series struct {
	baseSize int
	order    []string
	zips     map[string]*zipper
	n        int
}

func newSeries(baseSize int) *series {
	return &series{baseSize: baseSize, zips: make(map[string]*zipper)}
}

// next starts a new iteration.
func (s *series) next() { s.n++ }

func (s *series) add(name string, value float64) {
	z, ok := s.zips[name]
	if !ok {
		z = newZipper(s.baseSize, ZippedSize)
		s.zips[name] = z
		s.order = append(s.order, name)
	}
	fill(z, s.n-1)
	z.add(value)
}

func fill(z *zipper, upTo int) {
	for z.order < upTo {
		z.add(0)
	}
}

func (s *series) render() []renderer.LabeledPoints {
	out := make([]renderer.LabeledPoints, 0, len(s.order))
	for _, name := range s.order {
		z := s.zips[name]
		fill(z, s.n)
		out = append(out, renderer.LabeledPoints{Label: name, Points: z.points})
	}
	return out
}

// atomicNames returns the declared atomic actions followed by undeclared
// ones found in it, sorted.
func atomicNames(info Info, it Iteration) []string {
	names := info.AtomicNames()
	declared := make(map[string]bool, len(names))
	for _, n := range names {
		declared[n] = true
	}
	var extra []string
	for n := range it.AtomicActions {
		if !declared[n] {
			extra = append(extra, n)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}
