package renderer

import (
	"testing"
)

func TestColorizerCycle(t *testing.T) {
	c := NewColorizer("", "")

	for i, want := range Palette {
		if got := c.Color("series"); got != want {
			t.Fatalf("call %d: Color() = %s, want %s", i+1, got, want)
		}
	}

	// The 20th call wraps to the start of the palette.
	if got := c.Color("series"); got != Palette[0] {
		t.Errorf("wrapped Color() = %s, want %s", got, Palette[0])
	}
	if got := c.Color("series"); got != Palette[1] {
		t.Errorf("Color() after wrap = %s, want %s", got, Palette[1])
	}
}

func TestColorizerFailureKey(t *testing.T) {
	c := NewColorizer("", "")

	if got := c.Color("duration"); got != "#1f77b4" {
		t.Errorf("first color = %s, want #1f77b4", got)
	}
	if got := c.Color(DefaultFailureKey); got != FailureColor {
		t.Errorf("failure color = %s, want %s", got, FailureColor)
	}
	// The failure key does not advance the cycle.
	if got := c.Color("idle_duration"); got != "#aec7e8" {
		t.Errorf("second color = %s, want #aec7e8", got)
	}
}

func TestColorizerCustomFailure(t *testing.T) {
	c := NewColorizer("errors", "#000000")

	if got := c.Color("errors"); got != "#000000" {
		t.Errorf("Color(errors) = %s, want #000000", got)
	}
	if got := c.Color(DefaultFailureKey); got != Palette[0] {
		t.Errorf("Color(%s) = %s, want %s", DefaultFailureKey, got, Palette[0])
	}
}

func TestColorizersAreIndependent(t *testing.T) {
	a := NewColorizer("", "")
	b := NewColorizer("", "")

	a.Color("x")
	a.Color("y")
	if got := b.Color("x"); got != Palette[0] {
		t.Errorf("fresh colorizer = %s, want %s", got, Palette[0])
	}
}

func TestPaletteExcludesFailureColor(t *testing.T) {
	if len(Palette) != 19 {
		t.Fatalf("palette has %d colors, want 19", len(Palette))
	}
	for _, c := range Palette {
		if c == FailureColor {
			t.Errorf("palette contains failure color %s", FailureColor)
		}
	}
}

func TestLightenDarkenColor(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string, int) string
		in   string
		pct  int
		want string
	}{
		{name: "lighten black", fn: lightenColor, in: "#000000", pct: 50, want: "#7F7F7F"},
		{name: "lighten white", fn: lightenColor, in: "#FFFFFF", pct: 50, want: "#FFFFFF"},
		{name: "lighten no hash", fn: lightenColor, in: "000000", pct: 100, want: "#FFFFFF"},
		{name: "darken white", fn: darkenColor, in: "#ffffff", pct: 50, want: "#7F7F7F"},
		{name: "darken zero", fn: darkenColor, in: "#1f77b4", pct: 0, want: "#1F77B4"},
		{name: "invalid kept", fn: darkenColor, in: "red", pct: 10, want: "red"},
		{name: "empty kept", fn: lightenColor, in: "", pct: 10, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in, tt.pct); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}
