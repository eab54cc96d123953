package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ankek/terraform-provider-taskchart/internal/renderer"
)

// DecodeData decodes a JSON payload into the data shape kind renders.
// A JSON null decodes to nil, which widgets treat as missing data.
func DecodeData(kind renderer.Kind, raw []byte) (any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var (
		data any
		err  error
	)
	switch kind {
	case renderer.KindPie:
		data, err = decode[[]renderer.LabeledValue](raw)
	case renderer.KindStackedArea, renderer.KindLines:
		data, err = decode[[]renderer.LabeledPoints](raw)
	case renderer.KindHistogram:
		data, err = decodeHistogram(raw)
	case renderer.KindTable:
		data, err = decode[renderer.TableData](raw)
	case renderer.KindTextArea:
		data, err = decodeText(raw)
	default:
		// Unknown kinds keep the payload opaque; the widget reports the kind.
		data, err = decode[any](raw)
	}
	if err != nil {
		return nil, &DataError{Kind: string(kind), Err: err}
	}
	return data, nil
}

func decode[T any](raw []byte) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, err
	}
	return v, nil
}

// decodeHistogram accepts a full report ({"data": ..., "views": ...}) or a
// bare list of series.
func decodeHistogram(raw []byte) (any, error) {
	if raw[0] == '{' {
		return decode[renderer.HistogramReport](raw)
	}
	return decode[[]renderer.HistogramSeries](raw)
}

// decodeText accepts a list of lines or a single string.
func decodeText(raw []byte) (any, error) {
	if raw[0] == '"' {
		s, err := decode[string](raw)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
	return decode[[]string](raw)
}

// ParseDataFile reads and decodes a data file for kind.
// It respects the provided context for cancellation.
func ParseDataFile(ctx context.Context, path string, kind renderer.Kind) (any, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}
	return DecodeData(kind, raw)
}
