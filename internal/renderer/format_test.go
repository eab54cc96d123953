package renderer

import (
	"reflect"
	"strings"
	"testing"
)

func TestNumberFormat(t *testing.T) {
	tests := []struct {
		spec  string
		value float64
		want  string
	}{
		{spec: ".2f", value: 3.14159, want: "3.14"},
		{spec: ".3f", value: 1.5, want: "1.500"},
		{spec: ",.3f", value: 1234.5678, want: "1,234.568"},
		{spec: ",.2f", value: 0.5, want: "0.50"},
		{spec: "d", value: 42, want: "42"},
		{spec: "d", value: 1.5, want: ""},
		{spec: "d", value: -3, want: "-3"},
		{spec: ",d", value: 1234567, want: "1,234,567"},
		{spec: ".1%", value: 0.123, want: "12.3%"},
		{spec: "%", value: 0.5, want: "50%"},
		{spec: "+.1f", value: 2, want: "+2.0"},
		{spec: "+.1f", value: -2, want: "-2.0"},
		{spec: "f", value: 2.25, want: "2.25"},
		{spec: "", value: 7, want: "7"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			f, err := ParseNumberFormat(tt.spec)
			if err != nil {
				t.Fatalf("ParseNumberFormat(%q) error = %v", tt.spec, err)
			}
			if got := f.Format(tt.value); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseNumberFormatInvalid(t *testing.T) {
	for _, spec := range []string{"abc", "$,.2f", ".f", ",.3x", "%Y"} {
		t.Run(spec, func(t *testing.T) {
			if _, err := ParseNumberFormat(spec); err == nil {
				t.Errorf("ParseNumberFormat(%q) expected error", spec)
			}
		})
	}
}

func TestNumberFormatJS(t *testing.T) {
	tests := []struct {
		spec     string
		contains string
	}{
		{spec: ".2f", contains: "toFixed(2)"},
		{spec: ",.3f", contains: "minimumFractionDigits: 3"},
		{spec: "d", contains: "Math.trunc"},
		{spec: ".1%", contains: "* 100"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			js := MustNumberFormat(tt.spec).JS()
			if !strings.HasPrefix(js, "function (value)") {
				t.Errorf("JS() = %q, want a function", js)
			}
			if !strings.Contains(js, tt.contains) {
				t.Errorf("JS() = %q, want it to contain %q", js, tt.contains)
			}
		})
	}
}

func TestDateFormat(t *testing.T) {
	tests := []struct {
		pattern string
		ms      float64
		want    string
	}{
		{pattern: "%Y-%m-%d %H:%M", ms: 0, want: "1970-01-01 00:00"},
		{pattern: "%Y-%m-%d %H:%M:%S", ms: 1700000000000, want: "2023-11-14 22:13:20"},
		{pattern: "%H:%M:%S.%L", ms: 1500, want: "00:00:01.500"},
		{pattern: "%b %e", ms: 0, want: "Jan  1"},
		{pattern: "%I %p", ms: 1700000000000, want: "10 PM"},
		{pattern: "100%%", ms: 0, want: "100%"},
		{pattern: "day 2", ms: 0, want: "day 2"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			f, err := ParseDateFormat(tt.pattern)
			if err != nil {
				t.Fatalf("ParseDateFormat() error = %v", err)
			}
			if got := f.Format(tt.ms); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.ms, got, tt.want)
			}
		})
	}
}

func TestParseDateFormatRejectsUnknownConversion(t *testing.T) {
	if _, err := ParseDateFormat("%Q"); err == nil {
		t.Error("ParseDateFormat(%Q) expected error")
	}
}

func TestOptionsInvalidDateFallsBackToNumberFormat(t *testing.T) {
	options := Attributes{FormatDateX: "%Q", FormatX: ".1f"}.Options(nil)
	if got := options.XFormat(2); got != "2.0" {
		t.Errorf("XFormat(2) = %q, want 2.0", got)
	}
	options = Attributes{FormatDateX: "%Y"}.Options(nil)
	if got := options.XFormat(0); got != "1970" {
		t.Errorf("XFormat(0) = %q, want 1970", got)
	}
}

func TestTicks(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi float64
		want   []float64
	}{
		{name: "zero to ten", lo: 0, hi: 10, want: []float64{0, 2, 4, 6, 8, 10}},
		{name: "unit range", lo: 0, hi: 1, want: []float64{0, 0.2, 0.4, 0.6, 0.8, 1}},
		{name: "reversed", lo: 10, hi: 0, want: []float64{0, 2, 4, 6, 8, 10}},
		{name: "single value", lo: 3, hi: 3, want: []float64{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ticks(tt.lo, tt.hi, 5); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ticks(%v, %v) = %v, want %v", tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestAttributesOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		o := Attributes{}.Options(nil)
		if o.YFormat.String() != DefaultYFormat {
			t.Errorf("YFormat = %q, want %q", o.YFormat, DefaultYFormat)
		}
		if got := o.XFormat(3); got != "3" {
			t.Errorf("XFormat(3) = %q, want %q", got, "3")
		}
	})

	t.Run("invalid y format falls back", func(t *testing.T) {
		o := Attributes{FormatY: "bogus"}.Options(nil)
		if o.YFormat.String() != DefaultYFormat {
			t.Errorf("YFormat = %q, want %q", o.YFormat, DefaultYFormat)
		}
	})

	t.Run("date format wins over number format", func(t *testing.T) {
		o := Attributes{FormatX: ".2f", FormatDateX: "%Y"}.Options(nil)
		if got := o.XFormat(0); got != "1970" {
			t.Errorf("XFormat(0) = %q, want %q", got, "1970")
		}
	})

	t.Run("x number format", func(t *testing.T) {
		o := Attributes{FormatX: ".2f", NameX: "Iteration", RotateX: -45}.Options(nil)
		if got := o.XFormat(1); got != "1.00" {
			t.Errorf("XFormat(1) = %q, want %q", got, "1.00")
		}
		if o.XName != "Iteration" || o.XRotate != -45 {
			t.Errorf("XName/XRotate = %q/%v", o.XName, o.XRotate)
		}
	})
}
