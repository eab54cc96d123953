package processing

import (
	"github.com/ankek/terraform-provider-taskchart/internal/renderer"
)

// AtomicAvg is a pie of the mean duration of every atomic action.
// Iterations that skipped an action count as 0 for it.
type AtomicAvg struct {
	info  Info
	order []string
	means map[string]*mean
}

func NewAtomicAvg(info Info) *AtomicAvg {
	return &AtomicAvg{info: info, means: make(map[string]*mean)}
}

func (c *AtomicAvg) Widget() renderer.Kind { return renderer.KindPie }

func (c *AtomicAvg) AddIteration(it Iteration) {
	for _, name := range atomicNames(c.info, it) {
		m, ok := c.means[name]
		if !ok {
			m = &mean{}
			c.means[name] = m
			c.order = append(c.order, name)
		}
		m.add(it.atomic(name))
	}
}

func (c *AtomicAvg) Render() any {
	out := make([]renderer.LabeledValue, 0, len(c.order))
	for _, name := range c.order {
		v, _ := c.means[name].result()
		out = append(out, renderer.LabeledValue{Label: name, Value: v})
	}
	return out
}
