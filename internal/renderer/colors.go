package renderer

import (
	"fmt"
	"strconv"
)

// DefaultFailureKey is the series key that always receives FailureColor.
const DefaultFailureKey = "failed_duration"

// FailureColor is the color reserved for the failure series.
const FailureColor = "#d62728"

// Palette is the categorical color cycle used for chart series.
// FailureColor is deliberately absent so failures stay distinguishable.
var Palette = []string{
	"#1f77b4", "#aec7e8", "#ff7f0e", "#ffbb78", "#2ca02c",
	"#98df8a", "#ff9896", "#9467bd", "#c5b0d5", "#8c564b",
	"#c49c94", "#e377c2", "#f7b6d2", "#7f7f7f", "#c7c7c7",
	"#bcbd22", "#dbdb8d", "#17becf", "#9edae5",
}

// Colorizer hands out palette colors in a fixed cycle. The failure key is
// answered with the failure color and does not advance the cycle.
type Colorizer struct {
	failureKey   string
	failureColor string
	idx          int
}

// NewColorizer returns a Colorizer. Empty arguments fall back to
// DefaultFailureKey and FailureColor.
func NewColorizer(failureKey, failureColor string) *Colorizer {
	if failureKey == "" {
		failureKey = DefaultFailureKey
	}
	if failureColor == "" {
		failureColor = FailureColor
	}
	return &Colorizer{failureKey: failureKey, failureColor: failureColor, idx: -1}
}

// Color returns the color for key.
func (c *Colorizer) Color(key string) string {
	if key == c.failureKey {
		return c.failureColor
	}
	if c.idx > len(Palette)-2 {
		c.idx = 0
	} else {
		c.idx++
	}
	return Palette[c.idx]
}

func parseHexColor(hexColor string) (r, g, b int64, ok bool) {
	if len(hexColor) > 0 && hexColor[0] == '#' {
		hexColor = hexColor[1:]
	}
	if len(hexColor) != 6 {
		return 0, 0, 0, false
	}

	var err error
	if r, err = strconv.ParseInt(hexColor[0:2], 16, 64); err != nil {
		return 0, 0, 0, false
	}
	if g, err = strconv.ParseInt(hexColor[2:4], 16, 64); err != nil {
		return 0, 0, 0, false
	}
	if b, err = strconv.ParseInt(hexColor[4:6], 16, 64); err != nil {
		return 0, 0, 0, false
	}
	return r, g, b, true
}

// lightenColor lightens a hex color by a percentage. Unparseable input is
// returned unchanged.
func lightenColor(hexColor string, percent int) string {
	r, g, b, ok := parseHexColor(hexColor)
	if !ok {
		return hexColor
	}

	factor := float64(percent) / 100.0
	r = int64(float64(r) + (255-float64(r))*factor)
	g = int64(float64(g) + (255-float64(g))*factor)
	b = int64(float64(b) + (255-float64(b))*factor)

	return fmt.Sprintf("#%02X%02X%02X", clamp(r), clamp(g), clamp(b))
}

// darkenColor darkens a hex color by a percentage. Unparseable input is
// returned unchanged.
func darkenColor(hexColor string, percent int) string {
	r, g, b, ok := parseHexColor(hexColor)
	if !ok {
		return hexColor
	}

	factor := 1.0 - (float64(percent) / 100.0)
	r = int64(float64(r) * factor)
	g = int64(float64(g) * factor)
	b = int64(float64(b) * factor)

	return fmt.Sprintf("#%02X%02X%02X", clamp(r), clamp(g), clamp(b))
}

func clamp(v int64) int64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
