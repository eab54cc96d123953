package renderer

import (
	"math"
)

// AxisPadding is added to the measured y axis width before comparing it
// against ChartWidth.
const AxisPadding = 30

// CorrectedWidth returns the chart width to use given the measured y axis
// width. ok is false when no correction applies.
func CorrectedWidth(axisWidth float64) (width float64, ok bool) {
	if math.IsNaN(axisWidth) || math.IsInf(axisWidth, 0) {
		return 0, false
	}
	w := axisWidth + AxisPadding
	if w <= ChartWidth {
		return 0, false
	}
	width = 2*ChartWidth - w
	if width <= 0 {
		return 0, false
	}
	return width, true
}

// adjustWidth shrinks the chart node when a wide y axis pushes the chart
// past ChartWidth, then redraws the chart. Measurement failures leave the
// chart as it is.
func (w *Widget) adjustWidth(node *Element, chart *Chart) {
	axisWidth, err := safeMeasure(w.measurer, chart)
	if err != nil {
		w.logger.Debug("skipping width correction", "widget", w.id, "error", err)
		return
	}

	width, ok := CorrectedWidth(axisWidth)
	if !ok {
		return
	}

	w.logger.Debug("correcting chart width", "widget", w.id, "axis_width", axisWidth, "width", width)
	node.SetStyle("width", px(int(width)))
	if err := chart.Update(); err != nil {
		w.logger.Warn("chart update failed", "widget", w.id, "error", err)
	}
}
