package processing

import (
	"fmt"
	"sort"

	"github.com/ankek/terraform-provider-taskchart/internal/renderer"
)

// TotalRow is the last row of the stats table.
const TotalRow = "total"

const notAvailable = "n/a"

// StatsColumns are the stats table headers.
var StatsColumns = []string{
	"Action", "Min (sec)", "Median (sec)", "90%ile (sec)",
	"95%ile (sec)", "Max (sec)", "Avg (sec)", "Success", "Count",
}

type statsRow struct {
	values  []float64
	extr    minMax
	avg     mean
	success mean
	count   int
}

func (r *statsRow) add(value float64, failed bool) {
	r.count++
	if failed {
		r.success.add(0)
		return
	}
	r.success.add(1)
	r.values = append(r.values, value)
	r.extr.add(value)
	r.avg.add(value)
}

func (r *statsRow) cells(name string) []any {
	row := []any{name}
	if !r.extr.seen {
		for i := 0; i < 6; i++ {
			row = append(row, notAvailable)
		}
	} else {
		median, _ := percentile(r.values, 0.5)
		p90, _ := percentile(r.values, 0.9)
		p95, _ := percentile(r.values, 0.95)
		avg, _ := r.avg.result()
		row = append(row,
			round3(r.extr.min), round3(median), round3(p90),
			round3(p95), round3(r.extr.max), round3(avg))
	}
	if s, ok := r.success.result(); ok && r.extr.seen {
		row = append(row, fmt.Sprintf("%.1f%%", s*100))
	} else {
		row = append(row, notAvailable)
	}
	return append(row, r.count)
}

// MainStatsTable summarizes every atomic action and the whole iteration.
// Rows follow the declared atomic order, undeclared actions are appended
// as they appear, and the total row is always last.
type MainStatsTable struct {
	order    []string
	rows     map[string]*statsRow
	totalRow *statsRow
}

func NewMainStatsTable(info Info) *MainStatsTable {
	t := &MainStatsTable{rows: make(map[string]*statsRow)}
	for _, name := range info.AtomicNames() {
		t.row(name)
	}
	return t
}

func (t *MainStatsTable) row(name string) *statsRow {
	r, ok := t.rows[name]
	if !ok {
		r = &statsRow{}
		t.rows[name] = r
		t.order = append(t.order, name)
	}
	return r
}

func (t *MainStatsTable) Widget() renderer.Kind { return renderer.KindTable }

func (t *MainStatsTable) AddIteration(it Iteration) {
	failed := it.Failed()
	for _, name := range t.ranActions(it) {
		t.row(name).add(it.AtomicActions[name], failed)
	}
	t.totals().add(it.Duration, failed)
}

// ranActions returns the actions it ran, known rows first.
func (t *MainStatsTable) ranActions(it Iteration) []string {
	var names []string
	for _, name := range t.order {
		if _, ran := it.AtomicActions[name]; ran {
			names = append(names, name)
		}
	}
	var extra []string
	for name := range it.AtomicActions {
		if _, known := t.rows[name]; !known {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

func (t *MainStatsTable) totals() *statsRow {
	if t.totalRow == nil {
		t.totalRow = &statsRow{}
	}
	return t.totalRow
}

func (t *MainStatsTable) Render() any {
	data := renderer.TableData{Cols: StatsColumns}
	for _, name := range t.order {
		data.Rows = append(data.Rows, t.rows[name].cells(name))
	}
	data.Rows = append(data.Rows, t.totals().cells(TotalRow))
	return data
}
