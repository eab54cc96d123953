package processing

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ankek/terraform-provider-taskchart/internal/renderer"
)

// Chart plugins a scenario can name for its output.
const (
	PluginStackedArea = "StackedArea"
	PluginLines       = "Lines"
	PluginPie         = "Pie"
	PluginTable       = "Table"
	PluginStatsTable  = "StatsTable"
	PluginTextArea    = "TextArea"
)

// Sources for scenario output. They need an OutputRef to pick the item.
const (
	AdditiveOutputName = "additive_output"
	CompleteOutputName = "complete_output"
)

// OutputNames lists the scenario output sources.
var OutputNames = []string{AdditiveOutputName, CompleteOutputName}

// DefaultAxisLabel names the x axis of additive output.
const DefaultAxisLabel = "Iteration sequence number"

var (
	// ErrNoOutput is returned when the selected output item does not exist.
	ErrNoOutput = errors.New("no such output")
	// ErrUnknownPlugin is returned for an output chart plugin that is not supported.
	ErrUnknownPlugin = errors.New("unknown output chart plugin")
)

// SourceNames returns every name a widget source can take.
func SourceNames() []string {
	names := make([]string, 0, len(Names)+len(OutputNames))
	names = append(names, Names...)
	return append(names, OutputNames...)
}

// IsOutput reports whether name is a scenario output source.
func IsOutput(name string) bool {
	return name == AdditiveOutputName || name == CompleteOutputName
}

// OutputItem is one chart a scenario attached to an iteration.
type OutputItem struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	ChartPlugin string          `json:"chart_plugin"`
	Data        json.RawMessage `json:"data"`
	Label       string          `json:"label,omitempty"`
	AxisLabel   string          `json:"axis_label,omitempty"`
}

// Output is what a scenario reported for one iteration. Additive items are
// merged across iterations by position, complete items are shown as they are.
type Output struct {
	Additive []OutputItem `json:"additive,omitempty"`
	Complete []OutputItem `json:"complete,omitempty"`
}

// OutputRef selects a scenario output item. Index is the position of the
// item in the output list, Iteration the 1-based iteration whose complete
// output is shown.
type OutputRef struct {
	Index     int
	Iteration int
}

// OutputChart is a processed scenario output.
type OutputChart struct {
	Title       string
	Description string
	Label       string
	AxisLabel   string
	Widget      renderer.Kind
	// Data is the widget payload. Complete output keeps the JSON the
	// scenario reported.
	Data any
	// Collapsed is set when a series with a single point became a table.
	Collapsed bool
}

// Decorate sets the widget kind of attrs and fills its title, description
// and axis names where they are empty.
func (o *OutputChart) Decorate(attrs renderer.Attributes) renderer.Attributes {
	attrs.Widget = o.Widget
	if attrs.Title == "" {
		attrs.Title = o.Title
	}
	if attrs.Description == "" {
		attrs.Description = o.Description
	}
	if attrs.NameY == "" {
		attrs.NameY = o.Label
	}
	if attrs.NameX == "" {
		attrs.NameX = o.AxisLabel
	}
	return attrs
}

func pluginWidget(plugin string) (renderer.Kind, error) {
	switch plugin {
	case PluginStackedArea:
		return renderer.KindStackedArea, nil
	case PluginLines:
		return renderer.KindLines, nil
	case PluginPie:
		return renderer.KindPie, nil
	case PluginTable, PluginStatsTable:
		return renderer.KindTable, nil
	case PluginTextArea:
		return renderer.KindTextArea, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPlugin, plugin)
	}
}

// BuildOutput processes the scenario output source name of w.
func BuildOutput(name string, w *Workload, ref OutputRef) (*OutputChart, error) {
	switch name {
	case AdditiveOutputName:
		return buildAdditive(w, ref.Index)
	case CompleteOutputName:
		return buildComplete(w, ref.Iteration, ref.Index)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownChart, name)
	}
}

// additiveChart merges one additive output item across iterations.
type additiveChart interface {
	add(values []renderer.LabeledValue)
	render(out *OutputChart)
}

func newAdditive(plugin, label string, baseSize int) (additiveChart, error) {
	switch plugin {
	case PluginStackedArea:
		return &outputSeries{kind: renderer.KindStackedArea, label: label, data: newSeries(baseSize)}, nil
	case PluginLines:
		return &outputSeries{kind: renderer.KindLines, label: label, data: newSeries(baseSize)}, nil
	case PluginPie:
		return &outputAvg{means: make(map[string]*mean)}, nil
	case PluginStatsTable:
		return &outputStats{rows: make(map[string]*statsRow)}, nil
	case PluginTable, PluginTextArea:
		return nil, fmt.Errorf("%s output cannot be additive", plugin)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlugin, plugin)
	}
}

func buildAdditive(w *Workload, index int) (*OutputChart, error) {
	if index < 0 {
		return nil, fmt.Errorf("%w: additive output %d", ErrNoOutput, index)
	}
	info := w.sizedInfo()

	var (
		chart additiveChart
		out   *OutputChart
	)
	for i, it := range w.Iterations {
		if index >= len(it.Output.Additive) {
			continue
		}
		item := it.Output.Additive[index]
		if chart == nil {
			c, err := newAdditive(item.ChartPlugin, item.Label, info.IterationsCount)
			if err != nil {
				return nil, fmt.Errorf("additive output %d: %w", index, err)
			}
			chart = c
			out = &OutputChart{
				Title:       item.Title,
				Description: item.Description,
				Label:       item.Label,
				AxisLabel:   item.AxisLabel,
			}
			if out.AxisLabel == "" {
				out.AxisLabel = DefaultAxisLabel
			}
		}

		var values []renderer.LabeledValue
		if err := json.Unmarshal(item.Data, &values); err != nil {
			return nil, fmt.Errorf("additive output %d of iteration %d: %w", index, i+1, err)
		}
		chart.add(values)
	}
	if chart == nil {
		return nil, fmt.Errorf("%w: additive output %d", ErrNoOutput, index)
	}
	chart.render(out)
	return out, nil
}

func buildComplete(w *Workload, iteration, index int) (*OutputChart, error) {
	if iteration < 1 || iteration > len(w.Iterations) {
		return nil, fmt.Errorf("%w: iteration %d of %d", ErrNoOutput, iteration, len(w.Iterations))
	}
	items := w.Iterations[iteration-1].Output.Complete
	if index < 0 || index >= len(items) {
		return nil, fmt.Errorf("%w: complete output %d of iteration %d", ErrNoOutput, index, iteration)
	}
	item := items[index]
	kind, err := pluginWidget(item.ChartPlugin)
	if err != nil {
		return nil, fmt.Errorf("complete output %d of iteration %d: %w", index, iteration, err)
	}
	return &OutputChart{
		Title:       item.Title,
		Description: item.Description,
		Label:       item.Label,
		AxisLabel:   item.AxisLabel,
		Widget:      kind,
		Data:        item.Data,
	}, nil
}

// outputSeries charts additive values per iteration. A single iteration
// has nothing to draw a line through and is shown as a table instead.
type outputSeries struct {
	kind  renderer.Kind
	label string
	data  *series
}

func (c *outputSeries) add(values []renderer.LabeledValue) {
	c.data.next()
	for _, v := range values {
		c.data.add(v.Label, v.Value)
	}
}

func (c *outputSeries) render(out *OutputChart) {
	points := c.data.render()
	if len(points) == 0 || len(points[0].Points) != 1 {
		out.Widget, out.Data = c.kind, points
		return
	}

	valueCol := c.label
	if valueCol == "" {
		valueCol = "Value"
	}
	table := renderer.TableData{Cols: []string{"Name", valueCol}}
	for _, p := range points {
		row := []any{p.Label, 0.0}
		if len(p.Points) > 0 {
			row[1] = p.Points[0].Y()
		}
		table.Rows = append(table.Rows, row)
	}
	out.Widget, out.Data, out.Collapsed = renderer.KindTable, table, true
}

// outputAvg is a pie of the mean of every additive value.
type outputAvg struct {
	order []string
	means map[string]*mean
}

func (c *outputAvg) add(values []renderer.LabeledValue) {
	for _, v := range values {
		m, ok := c.means[v.Label]
		if !ok {
			m = &mean{}
			c.means[v.Label] = m
			c.order = append(c.order, v.Label)
		}
		m.add(v.Value)
	}
}

func (c *outputAvg) render(out *OutputChart) {
	data := make([]renderer.LabeledValue, 0, len(c.order))
	for _, name := range c.order {
		v, _ := c.means[name].result()
		data = append(data, renderer.LabeledValue{Label: name, Value: v})
	}
	out.Widget, out.Data = renderer.KindPie, data
}

// OutputStatsColumns are the headers of a stats table over additive output.
var OutputStatsColumns = []string{
	"Action", "Min (sec)", "Median (sec)", "90%ile (sec)",
	"95%ile (sec)", "Max (sec)", "Avg (sec)", "Count",
}

// outputStats summarizes every additive value like the main stats table,
// without the success column.
type outputStats struct {
	order []string
	rows  map[string]*statsRow
}

func (c *outputStats) add(values []renderer.LabeledValue) {
	for _, v := range values {
		r, ok := c.rows[v.Label]
		if !ok {
			r = &statsRow{}
			c.rows[v.Label] = r
			c.order = append(c.order, v.Label)
		}
		r.add(v.Value, false)
	}
}

func (c *outputStats) render(out *OutputChart) {
	data := renderer.TableData{Cols: OutputStatsColumns}
	for _, name := range c.order {
		cells := c.rows[name].cells(name)
		// drop the success column
		data.Rows = append(data.Rows, append(cells[:7:7], cells[8]))
	}
	out.Widget, out.Data = renderer.KindTable, data
}
