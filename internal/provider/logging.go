package provider

import (
	"os"

	"github.com/hashicorp/go-hclog"
)

// LogLevelEnvVar sets the level of the rendering diagnostics.
const LogLevelEnvVar = "TASKCHART_LOG"

// NewLogger returns the logger widgets and the data fetcher report through.
// Terraform captures the plugin's stderr.
func NewLogger() hclog.Logger {
	level := hclog.LevelFromString(os.Getenv(LogLevelEnvVar))
	if level == hclog.NoLevel {
		level = hclog.Warn
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "taskchart",
		Level:  level,
		Output: os.Stderr,
	})
}

func loggerOrNull(logger hclog.Logger) hclog.Logger {
	if logger == nil {
		return hclog.NewNullLogger()
	}
	return logger
}
