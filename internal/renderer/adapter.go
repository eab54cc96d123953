package renderer

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInsufficientData is returned when a payload is present but has nothing
// a chart could draw.
var ErrInsufficientData = errors.New("insufficient data")

// Point is an (x, y) pair.
type Point [2]float64

// X returns the x coordinate.
func (p Point) X() float64 { return p[0] }

// Y returns the y coordinate.
func (p Point) Y() float64 { return p[1] }

// LabeledValue is one pie slice. On the wire it is a ["label", value] pair.
type LabeledValue struct {
	Label string
	Value float64
}

// UnmarshalJSON decodes the ["label", value] pair form.
func (lv *LabeledValue) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("failed to decode labeled value: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("labeled value must have 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &lv.Label); err != nil {
		return fmt.Errorf("failed to decode label: %w", err)
	}
	if err := json.Unmarshal(pair[1], &lv.Value); err != nil {
		return fmt.Errorf("failed to decode value for %q: %w", lv.Label, err)
	}
	return nil
}

// MarshalJSON encodes the ["label", value] pair form.
func (lv LabeledValue) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{lv.Label, lv.Value})
}

// LabeledPoints is one line or area series. On the wire it is a
// ["label", [[x, y], ...]] pair.
type LabeledPoints struct {
	Label  string
	Points []Point
}

// UnmarshalJSON decodes the ["label", [[x, y], ...]] pair form.
func (lp *LabeledPoints) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("failed to decode labeled points: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("labeled points must have 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &lp.Label); err != nil {
		return fmt.Errorf("failed to decode label: %w", err)
	}
	if err := json.Unmarshal(pair[1], &lp.Points); err != nil {
		return fmt.Errorf("failed to decode points for %q: %w", lp.Label, err)
	}
	return nil
}

// MarshalJSON encodes the ["label", [[x, y], ...]] pair form.
func (lp LabeledPoints) MarshalJSON() ([]byte, error) {
	points := lp.Points
	if points == nil {
		points = []Point{}
	}
	return json.Marshal([]any{lp.Label, points})
}

// Series is the charting-library shape of one series.
type Series[V any] struct {
	Key    string `json:"key"`
	Values V      `json:"values"`
	Color  string `json:"color"`
}

// XY is one histogram bin.
type XY struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// HistogramSeries is one histogram view as produced by the results
// processing. Disabled is nil or 0 for a visible series.
type HistogramSeries struct {
	Key      string `json:"key"`
	View     string `json:"view"`
	Disabled *int   `json:"disabled,omitempty"`
	Values   []XY   `json:"values"`
}

// Visible reports whether the series starts enabled.
func (h HistogramSeries) Visible() bool {
	return h.Disabled == nil || *h.Disabled == 0
}

// HistogramView names one binning strategy.
type HistogramView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// HistogramReport is the full histogram payload: one group of series per
// chart with the list of available views.
type HistogramReport struct {
	Data  [][]HistogramSeries `json:"data"`
	Views []HistogramView     `json:"views"`
}

// Select returns the series of group idx, or the first group when idx is
// out of range.
func (r HistogramReport) Select(idx int) []HistogramSeries {
	if len(r.Data) == 0 {
		return nil
	}
	if idx < 0 || idx >= len(r.Data) {
		idx = 0
	}
	return r.Data[idx]
}

// TableData is a header row plus body rows. Cells are rendered as-is.
type TableData struct {
	Cols []string `json:"cols"`
	Rows [][]any  `json:"rows"`
}

// AdaptPie converts pie slices into series, one per slice, colored in input
// order. Duplicate labels are kept.
func AdaptPie(data []LabeledValue, c *Colorizer) ([]Series[float64], error) {
	if len(data) == 0 {
		return nil, ErrInsufficientData
	}
	series := make([]Series[float64], 0, len(data))
	for _, d := range data {
		series = append(series, Series[float64]{
			Key:    d.Label,
			Values: d.Value,
			Color:  c.Color(d.Label),
		})
	}
	return series, nil
}

// AdaptPoints converts labeled point lists into series with colors
// assigned in input order. Points are passed through unchanged. The first
// series needs at least two points to draw a line.
func AdaptPoints(data []LabeledPoints, c *Colorizer) ([]Series[[]Point], error) {
	if len(data) == 0 || len(data[0].Points) < 2 {
		return nil, ErrInsufficientData
	}
	series := make([]Series[[]Point], 0, len(data))
	for _, d := range data {
		series = append(series, Series[[]Point]{
			Key:    d.Label,
			Values: d.Points,
			Color:  c.Color(d.Label),
		})
	}
	return series, nil
}

// histogramSeries accepts either a bare series list or a full report.
func histogramSeries(data any, view int) ([]HistogramSeries, bool) {
	switch d := data.(type) {
	case []HistogramSeries:
		return d, true
	case HistogramReport:
		return d.Select(view), true
	case *HistogramReport:
		if d == nil {
			return nil, false
		}
		return d.Select(view), true
	default:
		return nil, false
	}
}

func pieInsufficient(data any) bool {
	d, ok := data.([]LabeledValue)
	return !ok || len(d) == 0
}

func pointsInsufficient(data any) bool {
	d, ok := data.([]LabeledPoints)
	return !ok || len(d) == 0 || len(d[0].Points) < 2
}
