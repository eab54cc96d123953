package renderer

import (
	"errors"
	"math"
	"testing"

	"golang.org/x/image/font/basicfont"
)

func TestCorrectedWidth(t *testing.T) {
	tests := []struct {
		name      string
		axisWidth float64
		want      float64
		wantOK    bool
	}{
		{name: "fits", axisWidth: 100, wantOK: false},
		{name: "exactly at threshold", axisWidth: 860, wantOK: false},
		{name: "one pixel over", axisWidth: 861, want: 889, wantOK: true},
		{name: "wide axis", axisWidth: 900, want: 850, wantOK: true},
		{name: "result would be zero", axisWidth: 1750, wantOK: false},
		{name: "result negative", axisWidth: 5000, wantOK: false},
		{name: "NaN", axisWidth: math.NaN(), wantOK: false},
		{name: "infinite", axisWidth: math.Inf(1), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CorrectedWidth(tt.axisWidth)
			if ok != tt.wantOK {
				t.Fatalf("CorrectedWidth(%v) ok = %v, want %v", tt.axisWidth, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("CorrectedWidth(%v) = %v, want %v", tt.axisWidth, got, tt.want)
			}
		})
	}
}

func TestFontMeasurer(t *testing.T) {
	m := NewFontMeasurer()
	chart := &Chart{painted: true, yLabels: []string{"0.000", "1,234.000", "50.000"}}

	got, err := m.MeasureYAxis(chart)
	if err != nil {
		t.Fatalf("MeasureYAxis() error = %v", err)
	}
	// The widest label has 9 glyphs of the 7px face.
	if want := float64(9*basicfont.Face7x13.Advance) + m.TickPadding; got != want {
		t.Errorf("MeasureYAxis() = %v, want %v", got, want)
	}
}

func TestFontMeasurerErrors(t *testing.T) {
	tests := []struct {
		name  string
		m     *FontMeasurer
		chart *Chart
	}{
		{name: "nil chart", m: NewFontMeasurer(), chart: nil},
		{name: "not painted", m: NewFontMeasurer(), chart: &Chart{yLabels: []string{"1"}}},
		{name: "no labels", m: NewFontMeasurer(), chart: &Chart{painted: true}},
		{name: "no face", m: &FontMeasurer{}, chart: &Chart{painted: true, yLabels: []string{"1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.m.MeasureYAxis(tt.chart); !errors.Is(err, ErrMeasurement) {
				t.Errorf("error = %v, want %v", err, ErrMeasurement)
			}
		})
	}
}

func TestSafeMeasureRecovers(t *testing.T) {
	m := MeasurerFunc(func(*Chart) (float64, error) { panic("no layout") })
	if _, err := safeMeasure(m, nil); !errors.Is(err, ErrMeasurement) {
		t.Errorf("error = %v, want %v", err, ErrMeasurement)
	}
}

func TestStackedAreaYLabels(t *testing.T) {
	w := NewWidget("w", Attributes{Widget: KindStackedArea, FormatY: ".1f"})
	w.Render([]LabeledPoints{
		{Label: "a", Points: []Point{{1, 4}, {2, 2}}},
		{Label: "b", Points: []Point{{1, 6}, {2, 1}}},
	})

	labels := w.Chart().YAxisLabels()
	want := []string{"0.0", "2.0", "4.0", "6.0", "8.0", "10.0"}
	if len(labels) != len(want) {
		t.Fatalf("labels = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("labels[%d] = %s, want %s", i, labels[i], want[i])
		}
	}
}
