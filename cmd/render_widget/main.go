// Command render_widget renders a dashboard definition, or a report of all
// results charts and additive scenario output for one workload, into a
// standalone HTML page.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ankek/terraform-provider-taskchart/internal/interfaces"
	"github.com/ankek/terraform-provider-taskchart/internal/processing"
	"github.com/ankek/terraform-provider-taskchart/internal/provider"
	"github.com/ankek/terraform-provider-taskchart/internal/renderer"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

type options struct {
	outputPath   string
	title        string
	token        string
	logLevel     string
	workloadPath string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "render_widget [dashboard.hcl | dir]",
		Short: "Render task result widgets to HTML",
		Long: `render_widget renders the widgets of a dashboard definition into one
HTML page. With --workload it renders every results chart of a workload
report instead.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.workloadPath != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "report.html", "Output page path")
	cmd.Flags().StringVar(&opts.title, "title", "", "Page title")
	cmd.Flags().StringVar(&opts.token, "token", "", "Bearer token for data URLs (default: $TASKCHART_TOKEN)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "Diagnostics level: trace, debug, info, warn, error")
	cmd.Flags().StringVar(&opts.workloadPath, "workload", "", "Workload report to render every results chart for")
	return cmd
}

func run(ctx context.Context, opts *options, args []string, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "render_widget",
		Level:  hclog.LevelFromString(opts.logLevel),
		Output: stderr,
	})

	if opts.workloadPath != "" {
		return renderWorkload(ctx, opts, logger, stdout)
	}

	result, err := provider.NewDashboardGenerator(opts.token, logger).Generate(ctx, interfaces.DashboardConfig{
		ConfigPath: args[0],
		OutputPath: opts.outputPath,
		Title:      opts.title,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s: %d widgets, %d hidden\n", result.OutputPath, result.WidgetCount, result.HiddenCount)
	return nil
}

// chartAttributes decorate the widgets of a workload report.
var chartAttributes = map[string]renderer.Attributes{
	processing.MainStackedAreaName: {
		Title: "Load duration", NameX: "Iteration sequence number",
		NameY: "Duration (seconds)", FormatY: ",.2f", Controls: true, Guide: true,
	},
	processing.MainHistogramName: {Title: "Distribution of task durations"},
	processing.MainStatsTableName: {
		Title: "Total durations", LastRowClass: "bold",
	},
	processing.LoadProfileName: {
		Title: "Load profile", Description: "Number of iterations running in parallel over time",
		NameX: "Timeline (seconds)", FormatX: ".2f", FormatY: ",.2f", Guide: true,
	},
	processing.AtomicAvgName:         {Title: "Atomic actions, average duration"},
	processing.AtomicStackedAreaName: {Title: "Atomic actions durations", NameX: "Iteration sequence number", Guide: true},
	processing.AtomicHistogramName:   {Title: "Distribution of atomic action durations"},
}

// additiveCount returns the number of additive output items of w.
func additiveCount(w *processing.Workload) int {
	n := 0
	for _, it := range w.Iterations {
		n = max(n, len(it.Output.Additive))
	}
	return n
}

func renderWorkload(ctx context.Context, opts *options, logger hclog.Logger, stdout io.Writer) error {
	workload, err := processing.LoadWorkload(opts.workloadPath)
	if err != nil {
		return err
	}

	page := renderer.Page{Title: opts.title}
	data := processing.Process(workload)
	hidden := 0
	for _, name := range processing.Names {
		chart, err := processing.New(name, workload.Info)
		if err != nil {
			return err
		}
		attrs := chartAttributes[name]
		attrs.Widget = chart.Widget()

		widget := renderer.NewWidget(name, attrs, renderer.WithLogger(logger))
		if status := widget.Render(data[name]); status != renderer.StatusRendered {
			hidden++
		}
		page.Widgets = append(page.Widgets, widget)
	}

	for i := 0; i < additiveCount(workload); i++ {
		out, err := processing.BuildOutput(processing.AdditiveOutputName, workload, processing.OutputRef{Index: i})
		if err != nil {
			logger.Warn("skipping scenario output", "output", i, "error", err)
			continue
		}
		widget := renderer.NewWidget(fmt.Sprintf("%s_%d", processing.AdditiveOutputName, i),
			out.Decorate(renderer.Attributes{Guide: true}), renderer.WithLogger(logger))
		if status := widget.Render(out.Data); status != renderer.StatusRendered {
			hidden++
		}
		page.Widgets = append(page.Widgets, widget)
	}

	if err := renderer.ExportPage(ctx, opts.outputPath, page); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s: %d widgets, %d hidden\n", opts.outputPath, len(page.Widgets), hidden)
	return nil
}
