package renderer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportPage(t *testing.T) {
	pie := NewWidget("errors", Attributes{Widget: KindPie, Title: "Errors"})
	pie.Render(samplePie())
	notes := NewWidget("notes", Attributes{Widget: KindTextArea})
	notes.Render([]string{"hello"})

	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "report", "index.html")

	err := ExportPage(context.Background(), outputPath, Page{Title: "Task Report", Widgets: []*Widget{pie, notes}})
	if err != nil {
		t.Fatalf("ExportPage() error = %v", err)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	html := string(content)

	for _, want := range []string{"<title>Task Report</title>", EChartsAssetURL, `id="errors"`, `id="notes"`, "hello"} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestExportPageCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outputPath := filepath.Join(t.TempDir(), "index.html")
	if err := ExportPage(ctx, outputPath, Page{}); err != context.Canceled {
		t.Errorf("ExportPage() error = %v, want %v", err, context.Canceled)
	}
	if _, err := os.Stat(outputPath); !os.IsNotExist(err) {
		t.Error("canceled export should not write a file")
	}
}
