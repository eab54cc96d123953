// Package renderer renders task-result widgets into an HTML tree. A widget
// is a chart (pie, stacked area, lines, histogram), a table or a text block.
// Charts are drawn with go-echarts after the surrounding markup is in place,
// and a chart whose y axis is too wide is shrunk and redrawn.
package renderer

import (
	"errors"

	"github.com/hashicorp/go-hclog"
)

var (
	// ErrMissingData is logged when a render is triggered without data.
	ErrMissingData = errors.New("chart has no data to render")
	// ErrUnknownKind is logged when no chart is registered for a kind.
	ErrUnknownKind = errors.New("unexpected widget")
)

// Kind is the widget kind attribute.
type Kind string

const (
	KindPie         Kind = "Pie"
	KindStackedArea Kind = "StackedArea"
	KindLines       Kind = "Lines"
	KindHistogram   Kind = "Histogram"
	KindTable       Kind = "Table"
	KindTextArea    Kind = "TextArea"
)

// Kinds lists every supported kind.
var Kinds = []Kind{KindPie, KindStackedArea, KindLines, KindHistogram, KindTable, KindTextArea}

// KindNames returns Kinds as strings.
func KindNames() []string {
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return names
}

// IsChart reports whether kind is drawn by the charting library.
func (k Kind) IsChart() bool {
	switch k {
	case KindPie, KindStackedArea, KindLines, KindHistogram:
		return true
	}
	return false
}

// Valid reports whether k is a supported kind.
func (k Kind) Valid() bool {
	return k.IsChart() || k == KindTable || k == KindTextArea
}

// Attributes are the declarative widget attributes.
type Attributes struct {
	Widget           Kind
	NameX            string
	RotateX          float64
	FormatX          string
	FormatDateX      string
	FormatY          string
	Controls         bool
	Guide            bool
	ShowMaxMin       bool
	Title            string
	TitleClass       string
	Description      string
	DescriptionClass string
	NameY            string
	LastRowClass     string
	// View selects the histogram view when the data carries several.
	View int
}

// RenderOptions contains the resolved options for drawing one chart.
type RenderOptions struct {
	XName      string
	XRotate    float64
	XFormat    func(float64) string
	YFormat    NumberFormat
	Controls   bool
	Guide      bool
	ShowMaxMin bool
	View       int
}

// Options resolves the attributes into RenderOptions. Invalid number
// formats fall back to the defaults with a warning, and an invalid date
// format falls back to the x number format.
func (a Attributes) Options(logger hclog.Logger) RenderOptions {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	yFormat := parseOrDefault(logger, "format_y", a.FormatY, DefaultYFormat)

	xFormat := parseOrDefault(logger, "format_x", a.FormatX, DefaultXFormat).Format
	if a.FormatDateX != "" {
		df, err := ParseDateFormat(a.FormatDateX)
		if err != nil {
			logger.Warn("invalid date format, using format_x", "format", a.FormatDateX, "error", err)
		} else {
			xFormat = df.Format
		}
	}

	return RenderOptions{
		XName:      a.NameX,
		XRotate:    a.RotateX,
		XFormat:    xFormat,
		YFormat:    yFormat,
		Controls:   a.Controls,
		Guide:      a.Guide,
		ShowMaxMin: a.ShowMaxMin,
		View:       a.View,
	}
}

func parseOrDefault(logger hclog.Logger, attr, spec, def string) NumberFormat {
	if spec == "" {
		return MustNumberFormat(def)
	}
	f, err := ParseNumberFormat(spec)
	if err != nil {
		logger.Warn("invalid number format, using default", "attribute", attr, "format", spec, "default", def, "error", err)
		return MustNumberFormat(def)
	}
	return f
}
