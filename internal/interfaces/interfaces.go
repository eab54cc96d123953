// Package interfaces defines interfaces for dependency injection and testing
package interfaces

import (
	"context"

	"github.com/ankek/terraform-provider-taskchart/internal/parser"
)

// DashboardParser reads dashboard definitions.
type DashboardParser interface {
	// ParseDashboard parses a dashboard file or a directory of them.
	ParseDashboard(ctx context.Context, path string) (*parser.Dashboard, error)
}

// DataLoader resolves the data bound to a widget.
type DataLoader interface {
	// LoadData returns the decoded payload for the widget, or nil when none
	// is configured.
	LoadData(ctx context.Context, widget parser.WidgetConfig) (any, error)
}

// PathValidator defines the interface for validating file paths
type PathValidator interface {
	// ValidateOutputPath validates the page path for security and accessibility
	ValidateOutputPath(path string) error

	// ValidateDashboardPath validates a dashboard file or directory
	ValidateDashboardPath(path string) error

	// ValidateDataPath validates a data file
	ValidateDataPath(path string) error

	// ValidateDataURL validates a remote data location
	ValidateDataURL(raw string) error
}

// DashboardGenerator renders dashboards to HTML pages.
type DashboardGenerator interface {
	Generate(ctx context.Context, cfg DashboardConfig) (*GenerateResult, error)
}

// DashboardConfig contains all configuration needed to generate a page
type DashboardConfig struct {
	ConfigPath string
	OutputPath string
	// Title overrides the title from the dashboard file.
	Title string
}

// GenerateResult contains the results of page generation
type GenerateResult struct {
	WidgetCount int64
	HiddenCount int64
	OutputPath  string
}
