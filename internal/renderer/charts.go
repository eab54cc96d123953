package renderer

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"
)

const (
	// ChartWidth is the nominal chart width in pixels.
	ChartWidth = 890
	// ChartHeight is the chart height in pixels.
	ChartHeight = 350
	// yTickCount is the approximate number of y axis ticks.
	yTickCount = 5
)

type buildFunc func(id string, width int) render.Renderer

// Chart is the handle of a drawn chart. It can be redrawn at the width its
// node currently declares.
type Chart struct {
	id      string
	node    *Element
	width   int
	build   buildFunc
	yLabels []string
	painted bool
	updates int
}

// ID returns the chart element id.
func (c *Chart) ID() string { return c.id }

// Width returns the width the chart was last drawn at.
func (c *Chart) Width() int { return c.width }

// Painted reports whether the deferred draw has run.
func (c *Chart) Painted() bool { return c.painted }

// Updates returns how many times the chart was redrawn after its first paint.
func (c *Chart) Updates() int { return c.updates }

// YAxisLabels returns the formatted y tick labels.
func (c *Chart) YAxisLabels() []string { return c.yLabels }

// Node returns the element the chart is drawn into.
func (c *Chart) Node() *Element { return c.node }

func (c *Chart) mount() error {
	snippet := c.build(c.id, c.width).RenderSnippet()
	c.node.Empty()
	if err := c.node.AppendHTML(snippet.Element + snippet.Script); err != nil {
		return fmt.Errorf("failed to mount chart %s: %w", c.id, err)
	}
	c.painted = true
	return nil
}

// Update redraws the chart at the width declared by its node's style.
func (c *Chart) Update() error {
	c.width = parsePx(c.node.Style("width"), ChartWidth)
	c.updates++
	return c.mount()
}

func initOpts(id string, width int) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		ChartID: id,
		Width:   px(width),
		Height:  px(ChartHeight),
	})
}

func tooltipOpts(guide bool, trigger string) charts.GlobalOpts {
	t := opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}
	if guide {
		t.Trigger = trigger
		t.AxisPointer = &opts.AxisPointer{Type: "line"}
	}
	return charts.WithTooltipOpts(t)
}

func toolboxOpts(controls bool) charts.GlobalOpts {
	if !controls {
		return charts.WithToolboxOpts(opts.Toolbox{Show: opts.Bool(false)})
	}
	return charts.WithToolboxOpts(opts.Toolbox{
		Show: opts.Bool(true),
		Feature: &opts.ToolBoxFeature{
			SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{Show: opts.Bool(true)},
			DataView:    &opts.ToolBoxFeatureDataView{Show: opts.Bool(true)},
			Restore:     &opts.ToolBoxFeatureRestore{Show: opts.Bool(true)},
		},
	})
}

// xCategories returns the sorted union of x values across all series.
func xCategories(series []Series[[]Point]) []float64 {
	seen := make(map[float64]struct{})
	var xs []float64
	for _, s := range series {
		for _, p := range s.Values {
			if _, ok := seen[p.X()]; ok {
				continue
			}
			seen[p.X()] = struct{}{}
			xs = append(xs, p.X())
		}
	}
	sort.Float64s(xs)
	return xs
}

func formatXs(xs []float64, format func(float64) string) []string {
	labels := make([]string, len(xs))
	for i, x := range xs {
		labels[i] = format(x)
	}
	return labels
}

// alignValues maps a series onto the x categories. Missing points become
// gap, which is either a number (stacking) or "-" (echarts gap).
func alignValues(s Series[[]Point], xs []float64, gap any) []opts.LineData {
	byX := make(map[float64]float64, len(s.Values))
	for _, p := range s.Values {
		byX[p.X()] = p.Y()
	}
	data := make([]opts.LineData, len(xs))
	for i, x := range xs {
		if y, ok := byX[x]; ok {
			data[i] = opts.LineData{Value: y}
		} else {
			data[i] = opts.LineData{Value: gap}
		}
	}
	return data
}

// yRange returns the y extent. With stacked set the per-x sums are used and
// the range always includes zero.
func yRange(series []Series[[]Point], xs []float64, stacked bool) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	if stacked {
		sums := make(map[float64]float64, len(xs))
		for _, s := range series {
			for _, p := range s.Values {
				sums[p.X()] += p.Y()
			}
		}
		lo, hi = 0, 0
		for _, v := range sums {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		return lo, hi
	}
	for _, s := range series {
		for _, p := range s.Values {
			lo = math.Min(lo, p.Y())
			hi = math.Max(hi, p.Y())
		}
	}
	if math.IsInf(lo, 0) {
		return 0, 0
	}
	return lo, hi
}

func yLabels(lo, hi float64, format NumberFormat) []string {
	var labels []string
	for _, t := range ticks(lo, hi, yTickCount) {
		labels = append(labels, format.Format(t))
	}
	return labels
}

func (r *Registry) newChart(node *Element, build buildFunc, labels []string) *Chart {
	return &Chart{
		id:      r.nextID(),
		node:    node,
		width:   ChartWidth,
		build:   build,
		yLabels: labels,
	}
}

// schedule defers the first draw and then calls after.
func (r *Registry) schedule(chart *Chart, after AfterPaintFunc) *Chart {
	r.scheduler.AfterPaint(func() {
		if err := chart.mount(); err != nil {
			r.logger.Warn("chart draw failed", "chart", chart.id, "error", err)
			return
		}
		if after != nil {
			after(chart.node, chart)
		}
	})
	return chart
}

// pieBorderDarken is how much darker a slice border is than its fill, in percent.
const pieBorderDarken = 20

func (r *Registry) drawPie(node *Element, data any, options RenderOptions, after AfterPaintFunc) *Chart {
	slices, _ := data.([]LabeledValue)
	series, err := AdaptPie(slices, NewColorizer("errors", ""))
	if err != nil {
		r.logger.Warn("cannot draw pie chart", "error", err)
		return nil
	}

	items := make([]opts.PieData, 0, len(series))
	for _, s := range series {
		items = append(items, opts.PieData{
			Name:  s.Key,
			Value: s.Values,
			ItemStyle: &opts.ItemStyle{
				Color:       s.Color,
				BorderColor: darkenColor(s.Color, pieBorderDarken),
			},
		})
	}

	build := func(id string, width int) render.Renderer {
		pie := charts.NewPie()
		pie.SetGlobalOptions(
			initOpts(id, width),
			tooltipOpts(false, "item"),
			charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
			toolboxOpts(options.Controls),
		)
		pie.AddSeries("", items,
			charts.WithPieChartOpts(opts.PieChart{Radius: []string{"17%", "70%"}}),
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Position:  "outside",
				Formatter: "{d}%",
			}),
		)
		return pie
	}
	return r.schedule(r.newChart(node, build, nil), after)
}

func (r *Registry) drawArea(node *Element, data any, options RenderOptions, after AfterPaintFunc) *Chart {
	return r.drawPoints(node, data, options, after, true)
}

func (r *Registry) drawLines(node *Element, data any, options RenderOptions, after AfterPaintFunc) *Chart {
	return r.drawPoints(node, data, options, after, false)
}

func (r *Registry) drawPoints(node *Element, data any, options RenderOptions, after AfterPaintFunc, stacked bool) *Chart {
	points, _ := data.([]LabeledPoints)
	series, err := AdaptPoints(points, NewColorizer("", ""))
	if err != nil {
		r.logger.Warn("cannot draw point chart", "stacked", stacked, "error", err)
		return nil
	}

	xs := xCategories(series)
	xLabels := formatXs(xs, options.XFormat)
	lo, hi := yRange(series, xs, stacked)
	labels := yLabels(lo, hi, options.YFormat)

	rotate := 0.0
	var gap any = "-"
	if stacked {
		gap = 0.0
	} else {
		rotate = options.XRotate
	}

	build := func(id string, width int) render.Renderer {
		line := charts.NewLine()
		line.SetGlobalOptions(
			initOpts(id, width),
			tooltipOpts(options.Guide, "axis"),
			charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
			toolboxOpts(options.Controls),
			charts.WithXAxisOpts(opts.XAxis{
				Name: options.XName,
				Type: "category",
				AxisLabel: &opts.AxisLabel{
					Rotate:       rotate,
					ShowMinLabel: opts.Bool(options.ShowMaxMin),
					ShowMaxLabel: opts.Bool(options.ShowMaxMin),
				},
			}),
			charts.WithYAxisOpts(opts.YAxis{
				Type:      "value",
				AxisLabel: &opts.AxisLabel{Formatter: opts.FuncOpts(options.YFormat.JS())},
			}),
		)
		line.SetXAxis(xLabels)
		for _, s := range series {
			seriesOpts := []charts.SeriesOpts{
				charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
				charts.WithLineStyleOpts(opts.LineStyle{Color: s.Color}),
			}
			if stacked {
				seriesOpts = append(seriesOpts,
					charts.WithLineChartOpts(opts.LineChart{Stack: "total", ShowSymbol: opts.Bool(false)}),
					charts.WithAreaStyleOpts(opts.AreaStyle{Color: lightenColor(s.Color, 20), Opacity: opts.Float(0.8)}),
				)
			} else {
				seriesOpts = append(seriesOpts,
					charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
				)
			}
			line.AddSeries(s.Key, alignValues(s, xs, gap), seriesOpts...)
		}
		return line
	}
	return r.schedule(r.newChart(node, build, labels), after)
}

func (r *Registry) drawHistogram(node *Element, data any, options RenderOptions, after AfterPaintFunc) *Chart {
	series, ok := histogramSeries(data, options.View)
	if !ok || len(series) == 0 {
		r.logger.Warn("cannot draw histogram", "error", ErrInsufficientData)
		return nil
	}

	xFormat := MustNumberFormat(HistogramXFormat)
	yFormat := MustNumberFormat(HistogramYFormat)

	var xLabels []string
	for _, v := range series[0].Values {
		xLabels = append(xLabels, xFormat.Format(v.X))
	}
	hi := 0.0
	selected := make(map[string]bool, len(series))
	for _, s := range series {
		selected[s.Key] = s.Visible()
		for _, v := range s.Values {
			hi = math.Max(hi, v.Y)
		}
	}
	labels := yLabels(0, hi, yFormat)

	build := func(id string, width int) render.Renderer {
		bar := charts.NewBar()
		bar.SetGlobalOptions(
			initOpts(id, width),
			tooltipOpts(true, "axis"),
			charts.WithColorsOpts(opts.Colors(Palette)),
			charts.WithLegendOpts(opts.Legend{
				Show:         opts.Bool(true),
				SelectedMode: "single",
				Selected:     selected,
			}),
			toolboxOpts(options.Controls),
			charts.WithTitleOpts(opts.Title{Subtitle: series[0].View, Right: "10%"}),
			charts.WithXAxisOpts(opts.XAxis{Name: "Duration (seconds)", Type: "category"}),
			charts.WithYAxisOpts(opts.YAxis{
				Name:      "Iterations (frequency)",
				Type:      "value",
				AxisLabel: &opts.AxisLabel{Formatter: opts.FuncOpts(yFormat.JS())},
			}),
		)
		bar.SetXAxis(xLabels)
		for _, s := range series {
			values := make([]opts.BarData, len(s.Values))
			for i, v := range s.Values {
				values[i] = opts.BarData{Value: v.Y}
			}
			bar.AddSeries(s.Key, values, charts.WithBarChartOpts(opts.BarChart{BarCategoryGap: "5%"}))
		}
		return bar
	}
	return r.schedule(r.newChart(node, build, labels), after)
}
