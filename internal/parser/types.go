package parser

import (
	"github.com/ankek/terraform-provider-taskchart/internal/renderer"
)

// Dashboard is a parsed dashboard file: an ordered list of widgets.
type Dashboard struct {
	Title   string
	Widgets []WidgetConfig
	// Path is the file the dashboard was read from.
	Path string
}

// WidgetConfig is one widget block together with where its data comes from.
// At most one of DataPath, DataURL, DataJSON and Text is set.
type WidgetConfig struct {
	ID         string
	Attributes renderer.Attributes

	DataPath string
	DataURL  string
	DataJSON string
	// Text holds inline lines for TextArea widgets.
	Text []string

	// Source names a results-processing chart. When set the data is a
	// workload report and is processed before rendering.
	Source string
	// OutputIndex and Iteration select the scenario output item for the
	// output sources. Iteration is 1-based; 0 means the first.
	OutputIndex int
	Iteration   int
}

// HasData reports whether any data source is configured.
func (w WidgetConfig) HasData() bool {
	return w.DataPath != "" || w.DataURL != "" || w.DataJSON != "" || w.Text != nil
}
