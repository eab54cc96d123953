// Package provider implements the Terraform provider for task result
// dashboards. The resource writes a full HTML page for a dashboard file and
// the data source renders a single widget.
package provider

import (
	"context"
	"fmt"

	"github.com/ankek/terraform-provider-taskchart/internal/interfaces"
	"github.com/ankek/terraform-provider-taskchart/internal/parser"
	"github.com/ankek/terraform-provider-taskchart/internal/processing"
	"github.com/ankek/terraform-provider-taskchart/internal/renderer"
	"github.com/ankek/terraform-provider-taskchart/internal/validation"
	"github.com/hashicorp/go-hclog"
)

var _ interfaces.DashboardGenerator = &DashboardGenerator{}

// DashboardGenerator handles the core logic of rendering widgets and pages.
// It is shared between the resource and the data source.
type DashboardGenerator struct {
	Parser    interfaces.DashboardParser
	Validator interfaces.PathValidator
	Loader    interfaces.DataLoader
	Logger    hclog.Logger
}

// NewDashboardGenerator wires the HCL parser, path validation and the data
// loader.
func NewDashboardGenerator(token string, logger hclog.Logger) *DashboardGenerator {
	logger = loggerOrNull(logger)
	return &DashboardGenerator{
		Parser:    parser.HCLParser{},
		Validator: validation.Validator{},
		Loader:    NewWidgetDataLoader(token, logger),
		Logger:    logger,
	}
}

// RenderWidget loads the data of w and renders it once. Scenario output
// fills the title, description and axis names the widget left empty.
func (g *DashboardGenerator) RenderWidget(ctx context.Context, w parser.WidgetConfig) (*renderer.Widget, renderer.Status, error) {
	data, err := g.Loader.LoadData(ctx, w)
	if err != nil {
		return nil, 0, err
	}
	if out, ok := data.(*processing.OutputChart); ok {
		w.Attributes = out.Decorate(w.Attributes)
		data = out.Data
	}

	widget := renderer.NewWidget(w.ID, w.Attributes, renderer.WithLogger(loggerOrNull(g.Logger)))
	status := widget.Render(data)
	return widget, status, nil
}

// Generate renders every widget of a dashboard into one HTML page.
//
// It performs the following steps:
//  1. Validates the dashboard and output paths
//  2. Parses the dashboard definition
//  3. Loads and renders each widget in order
//  4. Writes the page
//
// Widgets that were hidden or had no data are counted in HiddenCount.
func (g *DashboardGenerator) Generate(ctx context.Context, cfg interfaces.DashboardConfig) (*interfaces.GenerateResult, error) {
	if err := g.Validator.ValidateOutputPath(cfg.OutputPath); err != nil {
		return nil, fmt.Errorf("invalid output path: %w", err)
	}
	if err := g.Validator.ValidateDashboardPath(cfg.ConfigPath); err != nil {
		return nil, fmt.Errorf("invalid config path: %w", err)
	}

	dashboard, err := g.Parser.ParseDashboard(ctx, cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard: %w", err)
	}
	if len(dashboard.Widgets) == 0 {
		return nil, fmt.Errorf("no widgets found in %s", cfg.ConfigPath)
	}

	page := renderer.Page{Title: dashboard.Title}
	if cfg.Title != "" {
		page.Title = cfg.Title
	}

	var hidden int64
	for _, wc := range dashboard.Widgets {
		widget, status, err := g.RenderWidget(ctx, wc)
		if err != nil {
			return nil, fmt.Errorf("failed to render widget %s: %w", wc.ID, err)
		}
		if status == renderer.StatusHidden || status == renderer.StatusNoData {
			hidden++
		}
		page.Widgets = append(page.Widgets, widget)
	}

	if err := renderer.ExportPage(ctx, cfg.OutputPath, page); err != nil {
		return nil, fmt.Errorf("failed to write dashboard: %w", err)
	}

	return &interfaces.GenerateResult{
		WidgetCount: int64(len(page.Widgets)),
		HiddenCount: hidden,
		OutputPath:  cfg.OutputPath,
	}, nil
}
