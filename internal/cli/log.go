// Package cli implements the cabledraw command-line interface.
//
// This package provides commands for rendering cable assembly drawings,
// running the render API and the rendering worker, and inspecting template
// packs and the drawing store. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Render a schema file through the drawing cache
//   - netlist: Draw the pin-to-pin netlist of a schema with Graphviz
//   - serve: Run the HTTP render API
//   - worker: Run the rendering worker
//   - templates: List the available template packs
//   - drawings: Inspect or clear the drawing store
//   - config: Show or initialize the configuration file
//
// # Configuration
//
// Every command reads the TOML file named by --config (default
// ~/.config/cabledraw/config.toml); see package config for the environment
// overrides.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which takes
// precedence over log.level in the config file.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered A-100 (41ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
