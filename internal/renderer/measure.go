package renderer

import (
	"errors"
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ErrMeasurement is returned when the y axis of a chart cannot be measured.
var ErrMeasurement = errors.New("cannot measure y axis")

// Measurer reports the rendered width of a chart's y axis in pixels.
type Measurer interface {
	MeasureYAxis(chart *Chart) (float64, error)
}

// MeasurerFunc adapts a function to Measurer.
type MeasurerFunc func(chart *Chart) (float64, error)

// MeasureYAxis calls f.
func (f MeasurerFunc) MeasureYAxis(chart *Chart) (float64, error) { return f(chart) }

// FontMeasurer measures the widest y tick label with a font face and adds
// the tick padding.
type FontMeasurer struct {
	Face        font.Face
	TickPadding float64
}

// NewFontMeasurer returns a FontMeasurer using the 7x13 bitmap face.
func NewFontMeasurer() *FontMeasurer {
	return &FontMeasurer{Face: basicfont.Face7x13, TickPadding: 9}
}

// MeasureYAxis implements Measurer.
func (m *FontMeasurer) MeasureYAxis(chart *Chart) (float64, error) {
	if chart == nil || !chart.Painted() {
		return 0, fmt.Errorf("%w: chart not painted", ErrMeasurement)
	}
	if m.Face == nil {
		return 0, fmt.Errorf("%w: no font face", ErrMeasurement)
	}
	labels := chart.YAxisLabels()
	if len(labels) == 0 {
		return 0, fmt.Errorf("%w: no tick labels", ErrMeasurement)
	}

	d := &font.Drawer{Face: m.Face}
	var widest fixed.Int26_6
	for _, l := range labels {
		if w := d.MeasureString(l); w > widest {
			widest = w
		}
	}
	return float64(widest.Ceil()) + m.TickPadding, nil
}

// safeMeasure turns a panicking Measurer into an ErrMeasurement.
func safeMeasure(m Measurer, chart *Chart) (width float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			width, err = 0, fmt.Errorf("%w: %v", ErrMeasurement, r)
		}
	}()
	return m.MeasureYAxis(chart)
}
