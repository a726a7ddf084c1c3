package pipeline

import (
	"fmt"

	"github.com/matzehuels/pinmap/pkg/board"
	"github.com/matzehuels/pinmap/pkg/cache"
	"github.com/matzehuels/pinmap/pkg/layout"
	"github.com/matzehuels/pinmap/pkg/render"
	"github.com/matzehuels/pinmap/pkg/render/nodelink"
	"github.com/matzehuels/pinmap/pkg/render/sink"
	"github.com/matzehuels/pinmap/pkg/route"
)

// Scene validates a board, lays it out and routes its wires. It is the
// stage sequence shared by every command that needs geometry.
func Scene(b *board.Board) (*layout.Scene, []*route.Wire, error) {
	if err := board.Validate(b); err != nil {
		return nil, nil, fmt.Errorf("validate: %w", err)
	}
	s, err := layout.Build(b)
	if err != nil {
		return nil, nil, fmt.Errorf("layout: %w", err)
	}
	wires, err := route.Build(s)
	if err != nil {
		return nil, nil, fmt.Errorf("route: %w", err)
	}
	return s, wires, nil
}

// Render generates pinout documents in the requested formats.
// The SVG is rendered once and converted for png and pdf.
func Render(s *layout.Scene, wires []*route.Wire, opts Options) (map[string][]byte, error) {
	var svgOpts []sink.SVGOption
	if opts.Stylesheet != "" {
		svgOpts = append(svgOpts, sink.WithStylesheet(opts.Stylesheet))
	}
	if opts.NoHighlight {
		svgOpts = append(svgOpts, sink.WithoutHighlight())
	}

	var svg []byte
	svgOnce := func() []byte {
		if svg == nil {
			svg = sink.RenderSVG(s, wires, svgOpts...)
		}
		return svg
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svgOnce()
		case FormatPNG:
			data, err = render.ToPNG(svgOnce(), opts.Scale)
		case FormatPDF:
			data, err = render.ToPDF(svgOnce())
		case FormatJSON:
			data, err = sink.RenderJSON(s, wires)
		default:
			err = ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderGraph generates connectivity graph documents for a board.
func RenderGraph(b *board.Board, opts GraphOptions) (map[string][]byte, error) {
	dot := nodelink.ToDOT(b, nodelink.Options{Detailed: opts.Detailed})

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = nodelink.RenderSVG(dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(dot, opts.Scale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(dot)
		default:
			err = ValidateGraphFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func hashBoard(data []byte) string {
	return cache.Hash(data)
}

func stageError(stage string, err error) error {
	return fmt.Errorf("%s: %w", stage, err)
}
