package renderer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
)

// EChartsAssetURL is the script the exported page loads echarts from.
const EChartsAssetURL = "https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="{{.Asset}}"></script>
<style>
.h2 { font-size: 1.5em; font-weight: bold; margin: 10px 0; }
.h3 { font-size: 1.17em; font-weight: bold; margin: 8px 0; }
.chart-label-y { font-size: 0.85em; color: #555; }
table.striped { border-collapse: collapse; }
table.striped td, table.striped th { padding: 4px 8px; border-bottom: 1px solid #ddd; }
table.striped tr:nth-child(even) { background: #f5f5f5; }
</style>
</head>
<body>
{{- range .Widgets}}
{{.}}
{{- end}}
</body>
</html>
`))

// Page is a standalone document holding rendered widgets.
type Page struct {
	Title   string
	Widgets []*Widget
}

// Render writes the page to w.
func (p Page) Render(w io.Writer) error {
	widgets := make([]template.HTML, 0, len(p.Widgets))
	for _, wd := range p.Widgets {
		widgets = append(widgets, template.HTML(wd.HTML()))
	}

	title := p.Title
	if title == "" {
		title = "Task Report"
	}

	err := pageTemplate.Execute(w, struct {
		Title   string
		Asset   string
		Widgets []template.HTML
	}{Title: truncate(title, 120), Asset: EChartsAssetURL, Widgets: widgets})
	if err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}

// ExportPage writes the page to outputPath with context support.
func ExportPage(ctx context.Context, outputPath string, page Page) error {
	// Check context before starting
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := writeFile(outputPath, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	return nil
}
