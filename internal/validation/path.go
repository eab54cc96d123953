// Package validation checks the paths and URLs a dashboard reads from and
// writes to before anything is rendered.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// OutputExts are the accepted extensions of an exported page.
var OutputExts = []string{".html", ".htm"}

// DashboardExt is the extension of dashboard definition files.
const DashboardExt = ".hcl"

// Validator implements the path checks used by the provider.
type Validator struct{}

func (Validator) ValidateOutputPath(path string) error    { return ValidateOutputPath(path) }
func (Validator) ValidateDashboardPath(path string) error { return ValidateDashboardPath(path) }
func (Validator) ValidateDataPath(path string) error      { return ValidateInputPath(path, false) }
func (Validator) ValidateDataURL(raw string) error        { return ValidateDataURL(raw) }

// ValidateOutputPath checks that outputPath names an HTML file whose
// directory exists or can be created in a writable ancestor.
func ValidateOutputPath(outputPath string) error {
	if outputPath == "" {
		return fmt.Errorf("output path cannot be empty")
	}

	cleanPath := filepath.Clean(outputPath)
	if hasTraversal(outputPath) {
		return fmt.Errorf("path traversal detected in output path: %s", outputPath)
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if !contains(OutputExts, ext) {
		return fmt.Errorf("output path must end in one of %s: %s", strings.Join(OutputExts, ", "), outputPath)
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	dir, err := existingAncestor(filepath.Dir(absPath))
	if err != nil {
		return err
	}

	// Probe the directory the page or its missing parents will be created in.
	testFile := filepath.Join(dir, ".taskchart_write_test")
	f, err := os.OpenFile(testFile, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("output directory is not writable: %s: %w", dir, err)
	}
	f.Close()
	os.Remove(testFile)

	return nil
}

// existingAncestor returns dir or its closest existing parent, which must
// be a directory.
func existingAncestor(dir string) (string, error) {
	for {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return "", fmt.Errorf("output path parent is not a directory: %s", dir)
			}
			return dir, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to access output directory: %w", err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("output directory does not exist: %s", dir)
		}
		dir = parent
	}
}

// ValidateInputPath checks that inputPath exists and is a directory when
// mustBeDir is set, a regular file otherwise.
func ValidateInputPath(inputPath string, mustBeDir bool) error {
	if inputPath == "" {
		return fmt.Errorf("input path cannot be empty")
	}

	cleanPath := filepath.Clean(inputPath)
	if hasTraversal(inputPath) && !filepath.IsAbs(inputPath) {
		return fmt.Errorf("potentially unsafe path detected: %s", inputPath)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("input path does not exist: %s", cleanPath)
		}
		return fmt.Errorf("failed to access input path: %w", err)
	}

	if mustBeDir && !info.IsDir() {
		return fmt.Errorf("input path must be a directory: %s", cleanPath)
	}
	if !mustBeDir && info.IsDir() {
		return fmt.Errorf("input path must be a file: %s", cleanPath)
	}
	return nil
}

// ValidateDashboardPath accepts a directory of dashboard files or a single
// .hcl file.
func ValidateDashboardPath(path string) error {
	if path == "" {
		return fmt.Errorf("dashboard path cannot be empty")
	}
	info, err := os.Stat(filepath.Clean(path))
	if err != nil {
		return ValidateInputPath(path, false)
	}
	if info.IsDir() {
		return ValidateInputPath(path, true)
	}
	if ext := filepath.Ext(path); ext != DashboardExt {
		return fmt.Errorf("dashboard file must have %s extension, got %q: %s", DashboardExt, ext, path)
	}
	return ValidateInputPath(path, false)
}

// ValidateDataURL accepts absolute http and https URLs.
func ValidateDataURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("data url cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid data url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("data url must use http or https: %s", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("data url has no host: %s", raw)
	}
	return nil
}

func hasTraversal(path string) bool {
	for _, part := range strings.FieldsFunc(filepath.ToSlash(path), func(r rune) bool { return r == '/' }) {
		if part == ".." {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
