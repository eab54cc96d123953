package processing

import (
	"github.com/ankek/terraform-provider-taskchart/internal/renderer"
)

// MainStackedArea charts duration, idle duration and, when the workload
// has failures, failed duration per iteration.
type MainStackedArea struct {
	info Info
	data *series
}

func NewMainStackedArea(info Info) *MainStackedArea {
	return &MainStackedArea{info: info, data: newSeries(info.IterationsCount)}
}

func (c *MainStackedArea) Widget() renderer.Kind { return renderer.KindStackedArea }

func (c *MainStackedArea) AddIteration(it Iteration) {
	c.data.next()
	if it.Failed() {
		c.data.add("duration", 0)
		c.data.add("idle_duration", 0)
		if c.info.IterationsFailed > 0 {
			c.data.add(renderer.DefaultFailureKey, it.Duration+it.IdleDuration)
		}
		return
	}
	c.data.add("duration", it.Duration)
	c.data.add("idle_duration", it.IdleDuration)
	if c.info.IterationsFailed > 0 {
		c.data.add(renderer.DefaultFailureKey, 0)
	}
}

func (c *MainStackedArea) Render() any { return c.data.render() }

// AtomicStackedArea charts every atomic action per iteration. With failures
// in the workload the unaccounted time of failed iterations is charted too.
type AtomicStackedArea struct {
	info Info
	data *series
}

func NewAtomicStackedArea(info Info) *AtomicStackedArea {
	return &AtomicStackedArea{info: info, data: newSeries(info.IterationsCount)}
}

func (c *AtomicStackedArea) Widget() renderer.Kind { return renderer.KindStackedArea }

func (c *AtomicStackedArea) AddIteration(it Iteration) {
	c.data.next()
	total := 0.0
	for _, name := range atomicNames(c.info, it) {
		v := it.atomic(name)
		total += v
		c.data.add(name, v)
	}
	if c.info.IterationsFailed > 0 {
		failed := 0.0
		if it.Failed() {
			failed = it.Duration + it.IdleDuration - total
		}
		c.data.add(renderer.DefaultFailureKey, failed)
	}
}

func (c *AtomicStackedArea) Render() any { return c.data.render() }
