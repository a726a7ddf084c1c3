// Package pipeline provides the pinout generation pipeline.
//
// This package implements the complete validate → layout → route → render
// pipeline used by the CLI commands and the preview server. Centralizing it
// keeps every entry point's output identical for the same board.
//
// # Architecture
//
// The pipeline consists of four stages over one board:
//
//  1. Validate: check pin map completeness and logical pin coverage
//  2. Layout: place modules, pins, CPU ports and CPU pins
//  3. Route: resolve every wire's polyline
//  4. Render: produce SVG, PNG, PDF, or JSON documents
//
// Each stage only reads what the previous one produced. Any fault aborts the
// run before anything is written.
//
// # Usage
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    BoardPath: "board.toml",
//	    Formats:   []string{"svg", "json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// An empty BoardPath selects the embedded reference board.
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pinmap/pkg/board"
	"github.com/matzehuels/pinmap/pkg/cache"
	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/layout"
	"github.com/matzehuels/pinmap/pkg/route"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// Format constants for pinout documents.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// FormatDOT is the raw Graphviz source of the connectivity graph.
const FormatDOT = "dot"

// ValidFormats is the set of supported pinout formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidGraphFormats is the set of supported connectivity graph formats.
var ValidGraphFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// Stage names reported to logs and observability hooks.
const (
	StageValidate = "validate"
	StageLayout   = "layout"
	StageRoute    = "route"
	StageRender   = "render"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// BoardPath is a TOML board file. Empty selects the reference board.
	BoardPath string `json:"board_path,omitempty"`

	// Formats lists the documents to render. Defaults to svg.
	Formats []string `json:"formats,omitempty"`

	// Stylesheet replaces the default CSS when non-empty.
	Stylesheet string `json:"stylesheet,omitempty"`

	// NoHighlight omits the hover highlight group from SVG output.
	NoHighlight bool `json:"no_highlight,omitempty"`

	// Scale is the PNG scale factor. Defaults to DefaultScale.
	Scale float64 `json:"scale,omitempty"`

	// Refresh skips cache reads. Fresh results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// GraphOptions configures a connectivity graph run.
type GraphOptions struct {
	BoardPath string
	Formats   []string
	Detailed  bool
	Scale     float64
	Refresh   bool
	Logger    *log.Logger
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Board is the validated board.
	Board *board.Board

	// BoardHash is the content hash of the board source.
	BoardHash string

	// Scene and Wires are nil when every artifact came from cache.
	Scene *layout.Scene
	Wires []*route.Wire

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	board.Stats
	Explicit     int
	Segments     int
	ValidateTime time.Duration
	LayoutTime   time.Duration
	RouteTime    time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a pinout format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateGraphFormat checks that a connectivity graph format is valid.
func ValidateGraphFormat(format string) error {
	if !ValidGraphFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid graph format: %q (must be one of: dot, svg, png, pdf)", format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills in unset fields.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate applies defaults and checks the options.
func (o *Options) Validate() error {
	o.SetDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	o.Formats = dedupe(o.Formats)
	return nil
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:      format,
		NoHighlight: o.NoHighlight,
	}
	if o.Stylesheet != "" {
		opts.StylesheetHash = cache.Hash([]byte(o.Stylesheet))
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// SetDefaults fills in unset fields.
func (o *GraphOptions) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate applies defaults and checks the options.
func (o *GraphOptions) Validate() error {
	o.SetDefaults()
	for _, f := range o.Formats {
		if err := ValidateGraphFormat(f); err != nil {
			return err
		}
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	o.Formats = dedupe(o.Formats)
	return nil
}

// GraphKeyOpts returns cache key options for one format.
func (o *GraphOptions) GraphKeyOpts(format string) cache.GraphKeyOpts {
	opts := cache.GraphKeyOpts{Format: format, Detailed: o.Detailed}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

func dedupe(formats []string) []string {
	var out []string
	for _, f := range formats {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

func (s Stats) String() string {
	return fmt.Sprintf("%d modules, %d pins mapped, %d unrendered, %d wires (%d explicit)",
		s.Modules, s.Mapped, s.Unrendered, s.Wires, s.Explicit)
}
