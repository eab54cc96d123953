package renderer

import (
	"errors"
	"strings"
	"testing"
)

func samplePie() []LabeledValue {
	return []LabeledValue{{Label: "success", Value: 9}, {Label: "errors", Value: 1}}
}

func sampleArea() []LabeledPoints {
	return []LabeledPoints{
		{Label: "duration", Points: []Point{{1, 1.5}, {2, 2.5}, {3, 1.25}}},
		{Label: "idle_duration", Points: []Point{{1, 0.1}, {2, 0.2}, {3, 0.1}}},
	}
}

func TestWidgetMissingData(t *testing.T) {
	host := NewElement("div")
	host.Append(NewElement("p").SetText("previous"))
	w := NewWidget("w1", Attributes{Widget: KindPie, Title: "Title"}, WithHost(host))

	var typedNil []LabeledValue
	for _, data := range []any{nil, typedNil} {
		if got := w.Render(data); got != StatusNoData {
			t.Errorf("Render(%v) = %s, want %s", data, got, StatusNoData)
		}
	}

	if got := host.Text(); got != "previous" {
		t.Errorf("host text = %q, want it untouched", got)
	}
	if w.Chart() != nil {
		t.Error("expected no chart for missing data")
	}
}

func TestWidgetHidesInsufficientData(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		data any
	}{
		{name: "empty pie", kind: KindPie, data: []LabeledValue{}},
		{name: "empty stacked area", kind: KindStackedArea, data: []LabeledPoints{}},
		{name: "lines without points", kind: KindLines, data: []LabeledPoints{{Label: "a"}}},
		{name: "stacked area with one point", kind: KindStackedArea, data: []LabeledPoints{{Label: "s", Points: []Point{{0, 1}}}}},
		{name: "lines with one point", kind: KindLines, data: []LabeledPoints{{Label: "s", Points: []Point{{0, 1}}}}},
		{name: "pie with wrong shape", kind: KindPie, data: []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWidget("w", Attributes{Widget: tt.kind, Title: "Title"})
			if got := w.Render(tt.data); got != StatusHidden {
				t.Fatalf("Render() = %s, want %s", got, StatusHidden)
			}
			if got := w.Host().Style("display"); got != "none" {
				t.Errorf("display = %q, want none", got)
			}
			if w.Host().FirstChild() != nil {
				t.Error("hidden host should be empty, decorations included")
			}
		})
	}
}

func TestWidgetDrawsTwoPoints(t *testing.T) {
	for _, kind := range []Kind{KindStackedArea, KindLines} {
		t.Run(string(kind), func(t *testing.T) {
			w := NewWidget("w", Attributes{Widget: kind})
			if got := w.Render([]LabeledPoints{{Label: "s", Points: []Point{{0, 1}, {1, 2}}}}); got != StatusRendered {
				t.Fatalf("Render() = %s, want %s", got, StatusRendered)
			}
			if w.Chart() == nil {
				t.Error("expected a chart")
			}
		})
	}
}

func TestWidgetRendersPie(t *testing.T) {
	w := NewWidget("load-pie", Attributes{Widget: KindPie})

	if got := w.Render(samplePie()); got != StatusRendered {
		t.Fatalf("Render() = %s, want %s", got, StatusRendered)
	}

	host := w.Host()
	if !host.HasClass("chart") || host.Style("display") != "block" {
		t.Errorf("host = %s, want class chart and display block", host)
	}
	canvas := host.Find("chart-canvas")
	if canvas == nil {
		t.Fatal("chart canvas not found")
	}

	chart := w.Chart()
	if chart == nil || !chart.Painted() {
		t.Fatal("expected a painted chart")
	}
	if chart.ID() != "chart_load_pie_1" {
		t.Errorf("chart ID = %s, want chart_load_pie_1", chart.ID())
	}
	markup := canvas.String()
	if !strings.Contains(markup, `id="chart_load_pie_1"`) {
		t.Errorf("canvas does not hold the chart element: %s", markup)
	}
	if !strings.Contains(markup, FailureColor) {
		t.Error("errors slice should carry the failure color")
	}
	// #d62728 darkened by 20%.
	if !strings.Contains(markup, "#AB1F20") {
		t.Error("errors slice border should be the failure color darkened by 20%")
	}
}

func TestWidgetDecorationOrder(t *testing.T) {
	attrs := Attributes{
		Widget:      KindPie,
		Title:       "Load",
		Description: "Per action",
		NameY:       "Seconds",
		TitleClass:  "h4",
	}
	w := NewWidget("w", attrs)
	w.Render(samplePie())

	children := w.Host().Children()
	if len(children) != 5 {
		t.Fatalf("got %d children, want 5: %s", len(children), w.HTML())
	}

	checks := []struct {
		class string
		text  string
	}{
		{class: "h4", text: "Load"},
		{class: "h3", text: "Per action"},
		{class: "chart-label-y", text: "Seconds"},
		{class: "chart-canvas"},
	}
	for i, c := range checks {
		if !children[i].HasClass(c.class) {
			t.Errorf("child %d = %s, want class %s", i, children[i], c.class)
		}
		if c.text != "" && children[i].Text() != c.text {
			t.Errorf("child %d text = %q, want %q", i, children[i].Text(), c.text)
		}
	}
	if got := children[4].Style("clear"); got != "both" {
		t.Errorf("last child clear = %q, want both", got)
	}
}

func TestWidgetRerenderReplacesContent(t *testing.T) {
	w := NewWidget("w", Attributes{Widget: KindPie, Title: "T"})
	b := NewBinding(samplePie())
	unwatch := w.Bind(b)
	defer unwatch()

	b.Set(samplePie())
	b.Set(samplePie())

	if got := w.Renders(); got != 3 {
		t.Errorf("Renders() = %d, want 3", got)
	}
	if got := len(w.Host().Children()); got != 3 {
		t.Errorf("got %d children after re-render, want 3", got)
	}
	if got := w.Chart().ID(); got != "chart_w_3" {
		t.Errorf("chart ID = %s, want chart_w_3", got)
	}

	b.Set([]LabeledValue{})
	if got := w.Host().Style("display"); got != "none" {
		t.Errorf("display = %q after empty data, want none", got)
	}
}

func TestWidgetUnknownKind(t *testing.T) {
	w := NewWidget("w", Attributes{Widget: "Radar", Title: "Radar"})

	if got := w.Render([]int{1, 2}); got != StatusUnknownKind {
		t.Fatalf("Render() = %s, want %s", got, StatusUnknownKind)
	}
	if w.Chart() != nil {
		t.Error("unknown kind should not draw a chart")
	}
	if first := w.Host().FirstChild(); first == nil || first.Text() != "Radar" {
		t.Errorf("title not applied: %s", w.HTML())
	}
}

func TestWidgetTable(t *testing.T) {
	data := TableData{
		Cols: []string{"Action", "Count"},
		Rows: [][]any{{"boot", 10}, {"total", 10}},
	}
	w := NewWidget("stats", Attributes{Widget: KindTable, LastRowClass: "bold", Title: "Stats"})

	if got := w.Render(data); got != StatusRendered {
		t.Fatalf("Render() = %s, want %s", got, StatusRendered)
	}

	rows := w.Host().FindTag("tr")
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if !rows[2].HasClass("bold") {
		t.Errorf("last row = %s, want class bold", rows[2])
	}
	if rows[1].HasClass("bold") {
		t.Errorf("row 1 = %s, should not have class bold", rows[1])
	}
	children := w.Host().Children()
	if children[0].Text() != "Stats" || children[1].Tag() != "table" {
		t.Errorf("unexpected layout: %s", w.HTML())
	}
}

func TestWidgetTextArea(t *testing.T) {
	w := NewWidget("notes", Attributes{Widget: KindTextArea})

	if got := w.Render([]string{"first", "second"}); got != StatusRendered {
		t.Fatalf("Render() = %s, want %s", got, StatusRendered)
	}

	children := w.Host().Children()
	if len(children) != 4 {
		t.Fatalf("got %d children, want 4: %s", len(children), w.HTML())
	}
	if children[0].Text() != "first" || children[1].Text() != "second" {
		t.Errorf("unexpected text blocks: %s", w.HTML())
	}
	if children[0].Style("padding") != "0 0 5px" {
		t.Errorf("text block padding = %q", children[0].Style("padding"))
	}
}

func TestWidgetWrongTableShape(t *testing.T) {
	w := NewWidget("w", Attributes{Widget: KindTable})
	if got := w.Render([]string{"not a table"}); got != StatusHidden {
		t.Errorf("Render() = %s, want %s", got, StatusHidden)
	}
}

func TestWidgetHistogram(t *testing.T) {
	one := 1
	report := HistogramReport{
		Data: [][]HistogramSeries{
			{{Key: "task", View: "Square Root Choice", Values: []XY{{X: 0.5, Y: 3}, {X: 1, Y: 1}}}},
			{{Key: "task", View: "Sturges Formula", Disabled: &one, Values: []XY{{X: 1, Y: 4}}}},
		},
		Views: []HistogramView{{ID: 0, Name: "Square Root Choice"}, {ID: 1, Name: "Sturges Formula"}},
	}
	w := NewWidget("hist", Attributes{Widget: KindHistogram})

	if got := w.Render(report); got != StatusRendered {
		t.Fatalf("Render() = %s, want %s", got, StatusRendered)
	}
	markup := w.HTML()
	for _, want := range []string{`"selectedMode":"single"`, "Duration (seconds)", "Iterations (frequency)", "0.50"} {
		if !strings.Contains(markup, want) {
			t.Errorf("histogram markup missing %q", want)
		}
	}
}

func TestWidgetDefersDraw(t *testing.T) {
	q := NewFrameQueue()
	w := NewWidget("w", Attributes{Widget: KindStackedArea}, WithScheduler(q))

	if got := w.Render(sampleArea()); got != StatusRendered {
		t.Fatalf("Render() = %s, want %s", got, StatusRendered)
	}
	if w.Chart().Painted() {
		t.Fatal("chart painted before the frame was flushed")
	}
	if w.Host().Find("chart-canvas").FirstChild() != nil {
		t.Error("canvas should be empty before the draw")
	}

	q.Flush()
	if !w.Chart().Painted() {
		t.Error("chart not painted after Flush")
	}
}

func TestWidgetWidthCorrection(t *testing.T) {
	tests := []struct {
		name        string
		measure     MeasurerFunc
		kind        Kind
		wantWidth   int
		wantUpdates int
	}{
		{
			name:        "wide axis shrinks chart",
			measure:     func(*Chart) (float64, error) { return 900, nil },
			kind:        KindStackedArea,
			wantWidth:   850,
			wantUpdates: 1,
		},
		{
			name:        "narrow axis untouched",
			measure:     func(*Chart) (float64, error) { return 500, nil },
			kind:        KindLines,
			wantWidth:   ChartWidth,
			wantUpdates: 0,
		},
		{
			name:        "threshold is exclusive",
			measure:     func(*Chart) (float64, error) { return 860, nil },
			kind:        KindLines,
			wantWidth:   ChartWidth,
			wantUpdates: 0,
		},
		{
			name:        "non-positive result skipped",
			measure:     func(*Chart) (float64, error) { return 2000, nil },
			kind:        KindStackedArea,
			wantWidth:   ChartWidth,
			wantUpdates: 0,
		},
		{
			name:        "measurement error skipped",
			measure:     func(*Chart) (float64, error) { return 0, errors.New("boom") },
			kind:        KindStackedArea,
			wantWidth:   ChartWidth,
			wantUpdates: 0,
		},
		{
			name:        "measurement panic skipped",
			measure:     func(*Chart) (float64, error) { panic("detached") },
			kind:        KindLines,
			wantWidth:   ChartWidth,
			wantUpdates: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWidget("w", Attributes{Widget: tt.kind}, WithMeasurer(tt.measure))
			if got := w.Render(sampleArea()); got != StatusRendered {
				t.Fatalf("Render() = %s, want %s", got, StatusRendered)
			}

			chart := w.Chart()
			if chart.Width() != tt.wantWidth {
				t.Errorf("Width() = %d, want %d", chart.Width(), tt.wantWidth)
			}
			if chart.Updates() != tt.wantUpdates {
				t.Errorf("Updates() = %d, want %d", chart.Updates(), tt.wantUpdates)
			}
			if tt.wantUpdates > 0 {
				if got := chart.Node().Style("width"); got != px(tt.wantWidth) {
					t.Errorf("node width = %q, want %q", got, px(tt.wantWidth))
				}
				if !strings.Contains(chart.Node().String(), "width:"+px(tt.wantWidth)) {
					t.Error("redrawn chart does not use the corrected width")
				}
			}
		})
	}
}

func TestPieSkipsWidthCorrection(t *testing.T) {
	calls := 0
	measure := MeasurerFunc(func(*Chart) (float64, error) {
		calls++
		return 900, nil
	})
	w := NewWidget("w", Attributes{Widget: KindPie}, WithMeasurer(measure))
	w.Render(samplePie())

	if calls != 0 {
		t.Errorf("measurer called %d times for a pie chart", calls)
	}
}

func TestStatusString(t *testing.T) {
	tests := map[Status]string{
		StatusRendered:    "rendered",
		StatusNoData:      "no_data",
		StatusHidden:      "hidden",
		StatusUnknownKind: "unknown_kind",
		Status(42):        "status(42)",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("String() = %s, want %s", got, want)
		}
	}
}
