package parser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// DashboardExt is the extension of dashboard files.
const DashboardExt = ".hcl"

var dashboardSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "title"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{
			Type:       "widget",
			LabelNames: []string{"id"},
		},
	},
}

// HCLParser reads dashboard definitions.
type HCLParser struct{}

// ParseDashboard implements the dashboard parser used by the provider.
func (HCLParser) ParseDashboard(ctx context.Context, path string) (*Dashboard, error) {
	return ParseDashboard(ctx, path)
}

// ParseDashboard reads a dashboard file, or every .hcl file of a directory
// in lexical order. Relative data paths are resolved against the directory
// of the file declaring them.
// It respects the provided context for cancellation.
func ParseDashboard(ctx context.Context, path string) (*Dashboard, error) {
	// Check if context is already cancelled
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access dashboard: %w", err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = dashboardFiles(path)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no %s files found in %s", DashboardExt, path)
		}
	}

	parser := hclparse.NewParser()
	dashboard := &Dashboard{Path: path}
	seen := make(map[string]string)

	for _, file := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		title, widgets, err := parseDashboardFile(parser, file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}
		if dashboard.Title == "" {
			dashboard.Title = title
		}
		for _, w := range widgets {
			if prev, ok := seen[w.ID]; ok {
				return nil, fmt.Errorf("widget %q declared in %s and %s", w.ID, prev, file)
			}
			seen[w.ID] = file
			dashboard.Widgets = append(dashboard.Widgets, w)
		}
	}

	return dashboard, nil
}

func dashboardFiles(dirPath string) ([]string, error) {
	var files []string
	err := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, DashboardExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// parseDashboardFile parses a single HCL file into its title and widgets.
func parseDashboardFile(parser *hclparse.Parser, path string) (string, []WidgetConfig, error) {
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return "", nil, fmt.Errorf("HCL parse errors: %s", diags.Error())
	}

	content, diags := file.Body.Content(dashboardSchema)
	if diags.HasErrors() {
		return "", nil, fmt.Errorf("failed to parse body: %s", diags.Error())
	}

	var title string
	if attr, ok := content.Attributes["title"]; ok {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return "", nil, fmt.Errorf("failed to evaluate title: %s", diags.Error())
		}
		if val.Type() != cty.String || val.IsNull() {
			return "", nil, errors.New("title must be a string")
		}
		title = val.AsString()
	}

	baseDir := filepath.Dir(path)
	var widgets []WidgetConfig
	for _, block := range content.Blocks {
		attrs, err := parseBlockAttributes(block.Body)
		if err != nil {
			return "", nil, fmt.Errorf("widget %q: %w", block.Labels[0], err)
		}
		w, err := widgetConfig(block.Labels[0], attrs, baseDir)
		if err != nil {
			return "", nil, fmt.Errorf("widget %q: %w", block.Labels[0], err)
		}
		widgets = append(widgets, w)
	}

	return title, widgets, nil
}

// parseBlockAttributes evaluates the literal attributes of a widget block.
func parseBlockAttributes(body hcl.Body) (Attrs, error) {
	hclAttrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse attributes: %s", diags.Error())
	}

	attrs := make(Attrs, len(hclAttrs))
	for name, attr := range hclAttrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("attribute %q: %s", name, diags.Error())
		}
		attrs[name] = ctyToInterface(val)
	}
	return attrs, nil
}

func widgetConfig(id string, attrs Attrs, baseDir string) (WidgetConfig, error) {
	widgetAttrs, err := WidgetAttributes(attrs)
	if err != nil {
		return WidgetConfig{}, err
	}

	w := WidgetConfig{ID: id, Attributes: widgetAttrs}
	w.DataPath, _ = attrs.String("data_path")
	w.DataURL, _ = attrs.String("data_url")
	w.DataJSON, _ = attrs.String("data_json")
	w.Source, _ = attrs.String("source")
	w.OutputIndex, _ = attrs.Int("output")
	w.Iteration, _ = attrs.Int("iteration")
	if text, ok := attrs.StringSlice("text"); ok {
		w.Text = text
	}

	sources := 0
	for _, set := range []bool{w.DataPath != "", w.DataURL != "", w.DataJSON != "", w.Text != nil} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return WidgetConfig{}, fmt.Errorf("%w: set only one of data_path, data_url, data_json or text", ErrConflictingSources)
	}

	if w.DataPath != "" && !filepath.IsAbs(w.DataPath) {
		w.DataPath = filepath.Join(baseDir, w.DataPath)
	}
	return w, nil
}

// ctyToInterface converts a cty.Value to a native Go interface
func ctyToInterface(val cty.Value) interface{} {
	if val.IsNull() || !val.IsKnown() {
		return nil
	}

	switch val.Type() {
	case cty.String:
		return val.AsString()
	case cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return f
	case cty.Bool:
		return val.True()
	}

	if val.Type().IsListType() || val.Type().IsTupleType() || val.Type().IsSetType() {
		list := []interface{}{}
		it := val.ElementIterator()
		for it.Next() {
			_, v := it.Element()
			list = append(list, ctyToInterface(v))
		}
		return list
	}

	if val.Type().IsMapType() || val.Type().IsObjectType() {
		m := make(map[string]interface{})
		it := val.ElementIterator()
		for it.Next() {
			k, v := it.Element()
			m[k.AsString()] = ctyToInterface(v)
		}
		return m
	}

	return nil
}
