package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ankek/terraform-provider-taskchart/internal/interfaces"
	"github.com/ankek/terraform-provider-taskchart/internal/parser"
	"github.com/ankek/terraform-provider-taskchart/internal/processing"
	"github.com/ankek/terraform-provider-taskchart/internal/validation"
	"github.com/hashicorp/go-hclog"
)

var _ interfaces.DataLoader = &WidgetDataLoader{}

// WidgetDataLoader resolves widget data from inline JSON, text lines, a
// file or a URL. Widgets with a source get a workload report that is run
// through results processing first.
type WidgetDataLoader struct {
	Token     string
	Validator interfaces.PathValidator
	Logger    hclog.Logger
}

// NewWidgetDataLoader returns a loader using the default path validation.
func NewWidgetDataLoader(token string, logger hclog.Logger) *WidgetDataLoader {
	return &WidgetDataLoader{Token: token, Validator: validation.Validator{}, Logger: loggerOrNull(logger)}
}

// LoadData returns the payload for w, or nil when w has no data source.
func (l *WidgetDataLoader) LoadData(ctx context.Context, w parser.WidgetConfig) (any, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if w.Text != nil {
		return w.Text, nil
	}
	if !w.HasData() {
		return nil, nil
	}

	if w.DataPath != "" && w.Source == "" {
		if err := l.Validator.ValidateDataPath(w.DataPath); err != nil {
			return nil, fmt.Errorf("invalid data path for widget %s: %w", w.ID, err)
		}
		data, err := parser.ParseDataFile(ctx, w.DataPath, w.Attributes.Widget)
		return data, tagWidget(err, w.ID)
	}

	raw, err := l.raw(ctx, w)
	if err != nil {
		return nil, err
	}
	if w.Source != "" {
		return l.process(w, raw)
	}
	data, err := parser.DecodeData(w.Attributes.Widget, raw)
	return data, tagWidget(err, w.ID)
}

func (l *WidgetDataLoader) raw(ctx context.Context, w parser.WidgetConfig) ([]byte, error) {
	switch {
	case w.DataJSON != "":
		return []byte(w.DataJSON), nil
	case w.DataPath != "":
		if err := l.Validator.ValidateDataPath(w.DataPath); err != nil {
			return nil, fmt.Errorf("invalid data path for widget %s: %w", w.ID, err)
		}
		raw, err := os.ReadFile(w.DataPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read data for widget %s: %w", w.ID, err)
		}
		return raw, nil
	default:
		if err := l.Validator.ValidateDataURL(w.DataURL); err != nil {
			return nil, fmt.Errorf("invalid data url for widget %s: %w", w.ID, err)
		}
		l.Logger.Debug("fetching widget data", "widget", w.ID, "url", w.DataURL)
		return parser.FetchRemoteData(ctx, parser.RemoteConfig{
			URL:    w.DataURL,
			Token:  l.Token,
			Logger: l.Logger,
		})
	}
}

// process turns a workload report into the payload of the source chart.
func (l *WidgetDataLoader) process(w parser.WidgetConfig, raw []byte) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	workload, err := processing.DecodeWorkload(bytes.NewReader(raw))
	if err != nil {
		return nil, &parser.DataError{Widget: w.ID, Kind: string(w.Attributes.Widget), Err: err}
	}
	if processing.IsOutput(w.Source) {
		return l.output(w, workload)
	}
	kind, data, err := processing.Build(w.Source, workload)
	if err != nil {
		return nil, fmt.Errorf("widget %s: %w", w.ID, err)
	}
	if kind != w.Attributes.Widget {
		return nil, fmt.Errorf("widget %s: source %s produces %s data, widget kind is %s", w.ID, w.Source, kind, w.Attributes.Widget)
	}
	l.Logger.Debug("processed workload", "widget", w.ID, "source", w.Source, "iterations", len(workload.Iterations))
	return data, nil
}

// output selects a scenario output item of workload. The result carries
// the decorations the scenario gave the item; complete output is decoded
// for the widget kind of its chart plugin.
func (l *WidgetDataLoader) output(w parser.WidgetConfig, workload *processing.Workload) (*processing.OutputChart, error) {
	ref := processing.OutputRef{Index: w.OutputIndex, Iteration: w.Iteration}
	if ref.Iteration == 0 {
		ref.Iteration = 1
	}
	out, err := processing.BuildOutput(w.Source, workload, ref)
	if err != nil {
		return nil, fmt.Errorf("widget %s: %w", w.ID, err)
	}
	if out.Widget != w.Attributes.Widget && !out.Collapsed {
		return nil, fmt.Errorf("widget %s: %s item %d holds %s data, widget kind is %s", w.ID, w.Source, ref.Index, out.Widget, w.Attributes.Widget)
	}
	if raw, ok := out.Data.(json.RawMessage); ok {
		data, err := parser.DecodeData(out.Widget, raw)
		if err != nil {
			return nil, tagWidget(err, w.ID)
		}
		out.Data = data
	}
	l.Logger.Debug("selected scenario output", "widget", w.ID, "source", w.Source, "output", ref.Index, "iteration", ref.Iteration)
	return out, nil
}

func tagWidget(err error, id string) error {
	var dataErr *parser.DataError
	if errors.As(err, &dataErr) && dataErr.Widget == "" {
		dataErr.Widget = id
	}
	return err
}
