package renderer

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/lestrrat-go/strftime"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// DefaultXFormat is used when neither a date nor a number format is set for x.
	DefaultXFormat = "d"
	// DefaultYFormat is used when no y format is set.
	DefaultYFormat = ",.3f"
	// HistogramXFormat formats histogram bin edges.
	HistogramXFormat = ",.2f"
	// HistogramYFormat formats histogram frequencies.
	HistogramYFormat = "d"
)

var numberFormatRe = regexp.MustCompile(`^([-+ ])?(,)?(?:\.(\d+))?([dfeg%])?$`)

var groupedPrinter = message.NewPrinter(language.English)

// NumberFormat is a parsed d3-style number format specifier. The supported
// subset is [sign][,][.precision][type] with types d, f, e, g and %.
type NumberFormat struct {
	spec      string
	sign      byte
	group     bool
	precision int
	verb      byte
}

// ParseNumberFormat parses spec.
func ParseNumberFormat(spec string) (NumberFormat, error) {
	m := numberFormatRe.FindStringSubmatch(spec)
	if m == nil {
		return NumberFormat{}, fmt.Errorf("unsupported number format %q", spec)
	}

	f := NumberFormat{spec: spec, precision: -1}
	if m[1] != "" {
		f.sign = m[1][0]
	}
	f.group = m[2] == ","
	if m[3] != "" {
		p, err := strconv.Atoi(m[3])
		if err != nil || p > 20 {
			return NumberFormat{}, fmt.Errorf("invalid precision in number format %q", spec)
		}
		f.precision = p
	}
	if m[4] != "" {
		f.verb = m[4][0]
	}
	return f, nil
}

// MustNumberFormat is like ParseNumberFormat but panics on error.
func MustNumberFormat(spec string) NumberFormat {
	f, err := ParseNumberFormat(spec)
	if err != nil {
		panic(err)
	}
	return f
}

// String returns the original specifier.
func (f NumberFormat) String() string { return f.spec }

// Format formats v. Type d yields an empty string for non-integers.
func (f NumberFormat) Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	var s string
	switch f.verb {
	case 'd':
		if v != math.Trunc(v) {
			return ""
		}
		s = f.fixed(math.Abs(v), 0)
	case 'f':
		s = f.fixed(math.Abs(v), f.precision)
	case '%':
		prec := f.precision
		if prec < 0 {
			prec = 0
		}
		s = f.fixed(math.Abs(v)*100, prec) + "%"
	case 'e':
		s = strconv.FormatFloat(math.Abs(v), 'e', f.precision, 64)
	case 'g':
		s = strconv.FormatFloat(math.Abs(v), 'g', f.precision, 64)
	default:
		if f.precision >= 0 {
			s = strconv.FormatFloat(math.Abs(v), 'g', f.precision, 64)
		} else {
			s = f.fixed(math.Abs(v), -1)
		}
	}

	return f.signPrefix(v) + s
}

func (f NumberFormat) fixed(v float64, prec int) string {
	if !f.group {
		return strconv.FormatFloat(v, 'f', prec, 64)
	}
	if prec < 0 {
		return groupedPrinter.Sprint(v)
	}
	return groupedPrinter.Sprintf("%."+strconv.Itoa(prec)+"f", v)
}

func (f NumberFormat) signPrefix(v float64) string {
	switch {
	case v < 0:
		return "-"
	case f.sign == '+':
		return "+"
	case f.sign == ' ':
		return " "
	default:
		return ""
	}
}

// JS returns an equivalent JavaScript formatter for the chart axis.
func (f NumberFormat) JS() string {
	abs := "Math.abs(value)"
	var body string
	switch f.verb {
	case 'd':
		body = fmt.Sprintf("if (value !== Math.trunc(value)) { return ''; } s = %s;", f.jsFixed(abs, 0))
	case 'f':
		body = fmt.Sprintf("s = %s;", f.jsFixed(abs, f.precision))
	case '%':
		prec := f.precision
		if prec < 0 {
			prec = 0
		}
		body = fmt.Sprintf("s = %s + '%%';", f.jsFixed(abs+" * 100", prec))
	case 'e':
		if f.precision >= 0 {
			body = fmt.Sprintf("s = %s.toExponential(%d);", abs, f.precision)
		} else {
			body = fmt.Sprintf("s = %s.toExponential();", abs)
		}
	default:
		if f.precision >= 0 {
			body = fmt.Sprintf("s = %s.toPrecision(%d);", abs, f.precision)
		} else {
			body = fmt.Sprintf("s = %s;", f.jsFixed(abs, -1))
		}
	}

	positive := "''"
	switch f.sign {
	case '+':
		positive = "'+'"
	case ' ':
		positive = "' '"
	}
	return fmt.Sprintf("function (value) { var s; %s return (value < 0 ? '-' : %s) + s; }", body, positive)
}

func (f NumberFormat) jsFixed(expr string, prec int) string {
	if f.group {
		if prec < 0 {
			return fmt.Sprintf("(%s).toLocaleString('en-US')", expr)
		}
		return fmt.Sprintf("(%s).toLocaleString('en-US', {minimumFractionDigits: %d, maximumFractionDigits: %d})", expr, prec, prec)
	}
	if prec < 0 {
		return fmt.Sprintf("String(%s)", expr)
	}
	return fmt.Sprintf("(%s).toFixed(%d)", expr, prec)
}

// DateFormat formats epoch-millisecond values with a strftime pattern in
// UTC. %L is milliseconds.
type DateFormat struct {
	pattern string
	f       *strftime.Strftime
}

// ParseDateFormat compiles pattern. Unknown conversions are an error.
func ParseDateFormat(pattern string) (DateFormat, error) {
	f, err := strftime.New(pattern, strftime.WithMilliseconds('L'))
	if err != nil {
		return DateFormat{}, fmt.Errorf("invalid date format %q: %w", pattern, err)
	}
	return DateFormat{pattern: pattern, f: f}, nil
}

// String returns the pattern.
func (f DateFormat) String() string { return f.pattern }

// Format formats ms, milliseconds since the Unix epoch.
func (f DateFormat) Format(ms float64) string {
	return f.f.FormatString(time.UnixMilli(int64(ms)).UTC())
}

// ticks returns round tick values covering [lo, hi], roughly count of them.
func ticks(lo, hi float64, count int) []float64 {
	if math.IsNaN(lo) || math.IsNaN(hi) || count <= 0 {
		return nil
	}
	if lo == hi {
		return []float64{lo}
	}
	if lo > hi {
		lo, hi = hi, lo
	}

	step := tickStep(lo, hi, count)
	start := math.Ceil(lo / step)
	stop := math.Floor(hi / step)
	out := make([]float64, 0, int(stop-start)+1)
	for i := start; i <= stop; i++ {
		v := i * step
		// Trim float noise such as 0.30000000000000004.
		v, _ = strconv.ParseFloat(strconv.FormatFloat(v, 'g', 12, 64), 64)
		out = append(out, v)
	}
	return out
}

func tickStep(lo, hi float64, count int) float64 {
	raw := (hi - lo) / float64(count)
	step := math.Pow(10, math.Floor(math.Log10(raw)))
	switch ratio := raw / step; {
	case ratio >= math.Sqrt(50):
		step *= 10
	case ratio >= math.Sqrt(10):
		step *= 5
	case ratio >= math.Sqrt(2):
		step *= 2
	}
	return step
}
