// Package cli implements the pinmap command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pinmap/pkg/buildinfo"
	"github.com/matzehuels/pinmap/pkg/cache"
	"github.com/matzehuels/pinmap/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "pinmap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Pinmap draws hardware pinout diagrams",
		Long: `Pinmap turns a board description (modules, logical pins, and a CPU's physical
pin map) into an annotated SVG pinout diagram with every CPU-to-module wire
routed. The board is validated first: every physical pin must be defined
exactly once and every logical pin must be wired.

Without a board file, commands use the built-in reference board.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.pinsCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Caching is off unless
// useCache is set; cached keys are scoped by build version.
func (c *CLI) newRunner(useCache bool) (*pipeline.Runner, error) {
	cc, err := newCache(useCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, buildinfo.Version+":")
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

func newCache(useCache bool) (cache.Cache, error) {
	if !useCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/pinmap/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Argument Helpers
// =============================================================================

// boardArg returns the optional board file argument. Empty selects the
// reference board.
func boardArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s, def string) []string {
	if s == "" {
		return []string{def}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
