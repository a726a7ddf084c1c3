// Package cli implements the pinmap command-line interface.
//
// # Commands
//
//   - render: Generate the pinout diagram as SVG, PNG, PDF, or JSON
//   - check: Validate a board and report every fault
//   - pins: List the physical pin map as a table
//   - inspect: Browse pins interactively
//   - graph: Draw the port-to-module connectivity graph
//   - serve: Preview the diagram over HTTP
//   - export: Write a board file in canonical form
//   - cache: Manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
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

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time rounded to the millisecond.
// Example output: "Rendered reference board (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
