//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/ankek/terraform-provider-taskchart/internal/interfaces"
	"github.com/ankek/terraform-provider-taskchart/internal/processing"
	"github.com/ankek/terraform-provider-taskchart/internal/provider"
)

const dashboard = `title = "Sample boot and delete"

widget "load" {
  kind         = "StackedArea"
  source       = "main_stacked_area"
  data_path    = "workload.json"
  title        = "Load duration"
  name_x       = "Iteration sequence number"
  name_y       = "Duration (seconds)"
  guide        = true
  show_max_min = true
}

widget "profile" {
  kind      = "StackedArea"
  source    = "load_profile"
  data_path = "workload.json"
  title     = "Load profile"
  format_x  = ".2f"
}

widget "histogram" {
  kind      = "Histogram"
  source    = "main_histogram"
  data_path = "workload.json"
  title     = "Distribution"
}

widget "avg" {
  kind      = "Pie"
  source    = "atomic_avg"
  data_path = "workload.json"
  title     = "Atomic actions"
}

widget "stats" {
  kind          = "Table"
  source        = "main_stats_table"
  data_path     = "workload.json"
  lastrow_class = "bold"
}
`

func main() {
	dir := "sample"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Printf("Error creating %s: %v\n", dir, err)
		os.Exit(1)
	}

	w := sampleWorkload(40)
	raw, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		fmt.Printf("Error encoding workload: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(filepath.Join(dir, "workload.json"), raw, 0644); err != nil {
		fmt.Printf("Error writing workload: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(filepath.Join(dir, "dashboard.hcl"), []byte(dashboard), 0644); err != nil {
		fmt.Printf("Error writing dashboard: %v\n", err)
		os.Exit(1)
	}

	out := filepath.Join(dir, "report.html")
	result, err := provider.NewDashboardGenerator("", provider.NewLogger()).Generate(context.Background(), interfaces.DashboardConfig{
		ConfigPath: filepath.Join(dir, "dashboard.hcl"),
		OutputPath: out,
	})
	if err != nil {
		fmt.Printf("Error rendering dashboard: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s with %d widgets (%d hidden)\n", result.OutputPath, result.WidgetCount, result.HiddenCount)
}

func sampleWorkload(n int) *processing.Workload {
	rng := rand.New(rand.NewSource(1))
	w := &processing.Workload{Info: processing.Info{
		IterationsCount: n,
		TstampStart:     1700000000,
		MinDuration:     -1,
		Atomic: []processing.AtomicInfo{
			{Name: "nova.boot_server", MinDuration: -1},
			{Name: "nova.delete_server", MinDuration: -1},
		},
	}}

	ts := w.Info.TstampStart
	for i := 0; i < n; i++ {
		boot := 2 + rng.Float64()*3
		del := 0.5 + rng.Float64()
		it := processing.Iteration{
			Duration:      boot + del,
			IdleDuration:  rng.Float64() * 0.2,
			Timestamp:     ts,
			AtomicActions: map[string]float64{"nova.boot_server": boot, "nova.delete_server": del},
		}
		if i%13 == 7 {
			it.Error = []string{"TimeoutException", "Server did not become active"}
			w.Info.IterationsFailed++
		}
		w.Iterations = append(w.Iterations, it)

		track(&w.Info.MinDuration, &w.Info.MaxDuration, it.Duration)
		track(&w.Info.Atomic[0].MinDuration, &w.Info.Atomic[0].MaxDuration, boot)
		track(&w.Info.Atomic[1].MinDuration, &w.Info.Atomic[1].MaxDuration, del)

		ts += 0.5
		if end := it.Timestamp + it.Duration - w.Info.TstampStart; end > w.Info.LoadDuration {
			w.Info.LoadDuration = end
		}
	}
	return w
}

func track(lo, hi *float64, v float64) {
	if *lo < 0 || v < *lo {
		*lo = v
	}
	if v > *hi {
		*hi = v
	}
}
