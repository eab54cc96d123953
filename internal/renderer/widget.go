package renderer

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// Status is the outcome of one render pass.
type Status int

const (
	// StatusRendered means content was produced.
	StatusRendered Status = iota
	// StatusNoData means the data was missing and nothing changed.
	StatusNoData
	// StatusHidden means the host was emptied and hidden.
	StatusHidden
	// StatusUnknownKind means the kind has no renderer; decorations were still applied.
	StatusUnknownKind
)

func (s Status) String() string {
	switch s {
	case StatusRendered:
		return "rendered"
	case StatusNoData:
		return "no_data"
	case StatusHidden:
		return "hidden"
	case StatusUnknownKind:
		return "unknown_kind"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Widget renders one bound data source into its host element.
type Widget struct {
	id        string
	attrs     Attributes
	host      *Element
	logger    hclog.Logger
	scheduler Scheduler
	measurer  Measurer
	registry  *Registry
	chart     *Chart
	renders   int
}

// Option configures a Widget.
type Option func(*Widget)

// WithLogger sets the diagnostics logger.
func WithLogger(logger hclog.Logger) Option {
	return func(w *Widget) { w.logger = logger }
}

// WithScheduler sets how chart draws are deferred.
func WithScheduler(s Scheduler) Option {
	return func(w *Widget) { w.scheduler = s }
}

// WithMeasurer sets the y axis measurer used for width correction.
func WithMeasurer(m Measurer) Option {
	return func(w *Widget) { w.measurer = m }
}

// WithHost renders into an existing element instead of a fresh div.
func WithHost(host *Element) Option {
	return func(w *Widget) { w.host = host }
}

// NewWidget returns a widget with the given id and attributes.
func NewWidget(id string, attrs Attributes, options ...Option) *Widget {
	w := &Widget{id: id, attrs: attrs}
	for _, opt := range options {
		opt(w)
	}
	if w.logger == nil {
		w.logger = hclog.NewNullLogger()
	}
	w.logger = w.logger.Named("widget")
	if w.scheduler == nil {
		w.scheduler = Immediate()
	}
	if w.measurer == nil {
		w.measurer = NewFontMeasurer()
	}
	if w.host == nil {
		w.host = NewElement("div")
	}
	w.host.SetAttr("id", id)
	w.registry = NewRegistry(id, w.logger, w.scheduler)
	return w
}

// ID returns the widget id.
func (w *Widget) ID() string { return w.id }

// Attributes returns the widget attributes.
func (w *Widget) Attributes() Attributes { return w.attrs }

// Host returns the host element.
func (w *Widget) Host() *Element { return w.host }

// Chart returns the handle of the most recent chart, or nil.
func (w *Widget) Chart() *Chart { return w.chart }

// Renders returns how many render passes have run.
func (w *Widget) Renders() int { return w.renders }

// HTML returns the rendered host element.
func (w *Widget) HTML() string { return w.host.String() }

// Bind renders on every value of b, starting with the current one.
func (w *Widget) Bind(b *Binding) (unwatch func()) {
	return b.Watch(func(v any) { w.Render(v) })
}

// Render runs one render pass for data.
func (w *Widget) Render(data any) Status {
	w.renders++

	if isMissing(data) {
		w.logger.Warn(ErrMissingData.Error(), "widget", w.id)
		return StatusNoData
	}

	var (
		content *Element
		status  = StatusRendered
		err     error
	)
	switch kind := w.attrs.Widget; kind {
	case KindTable:
		content, err = w.renderTable(data)
	case KindTextArea:
		content, err = w.renderTextArea(data)
	default:
		content, status = w.renderChart(kind, data)
		if status == StatusHidden {
			return status
		}
	}
	if err != nil {
		w.logger.Warn("cannot render widget", "widget", w.id, "kind", string(w.attrs.Widget), "error", err)
		w.hide()
		return StatusHidden
	}

	w.decorate(content)
	return status
}

func (w *Widget) hide() {
	w.host.Empty().SetStyle("display", "none")
}

func (w *Widget) renderChart(kind Kind, data any) (*Element, Status) {
	w.host.AddClass("chart").SetStyle("display", "block").Empty()
	node := NewElement("div").AddClass("chart-canvas")
	w.host.Append(node)

	if w.registry.Insufficient(kind, data) {
		w.logger.Debug("insufficient data, hiding widget", "widget", w.id, "kind", string(kind))
		w.hide()
		return nil, StatusHidden
	}

	var after AfterPaintFunc
	if kind == KindStackedArea || kind == KindLines {
		after = w.adjustWidth
	}

	w.chart = w.registry.Chart(kind)(node, data, w.attrs.Options(w.logger), after)
	if !kind.IsChart() {
		return node, StatusUnknownKind
	}
	return node, StatusRendered
}

func (w *Widget) renderTable(data any) (*Element, error) {
	var table TableData
	switch d := data.(type) {
	case TableData:
		table = d
	case *TableData:
		table = *d
	default:
		return nil, fmt.Errorf("table data has unexpected type %T", data)
	}

	markup, err := renderTable(table, w.attrs.LastRowClass)
	if err != nil {
		return nil, err
	}
	return w.replaceContent(markup)
}

func (w *Widget) renderTextArea(data any) (*Element, error) {
	lines, ok := data.([]string)
	if !ok {
		return nil, fmt.Errorf("text data has unexpected type %T", data)
	}

	markup, err := renderText(lines)
	if err != nil {
		return nil, err
	}
	return w.replaceContent(markup)
}

func (w *Widget) replaceContent(markup string) (*Element, error) {
	w.host.Empty().SetStyle("display", "")
	if err := w.host.AppendHTML(markup); err != nil {
		return nil, err
	}
	content := w.host.FirstChild()
	if content == nil {
		return nil, fmt.Errorf("widget %s produced no content", w.id)
	}
	return content, nil
}

// decorate puts the y label, description and title before the content, in
// that order of insertion, and a clearing div after it.
func (w *Widget) decorate(content *Element) {
	parent := content.Parent()
	if parent == nil {
		return
	}

	if w.attrs.NameY != "" {
		parent.Prepend(NewElement("div").AddClass("chart-label-y").SetText(w.attrs.NameY))
	}
	if w.attrs.Description != "" {
		parent.Prepend(NewElement("div").AddClass(classOr(w.attrs.DescriptionClass, "h3")).SetText(w.attrs.Description))
	}
	if w.attrs.Title != "" {
		parent.Prepend(NewElement("div").AddClass(classOr(w.attrs.TitleClass, "h2")).SetText(w.attrs.Title))
	}
	parent.Append(NewElement("div").SetStyle("clear", "both"))
}

func classOr(class, def string) string {
	if class == "" {
		return def
	}
	return class
}
