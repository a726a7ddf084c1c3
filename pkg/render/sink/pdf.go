package sink

import (
	"github.com/matzehuels/pinmap/pkg/layout"
	"github.com/matzehuels/pinmap/pkg/render"
	"github.com/matzehuels/pinmap/pkg/route"
)

// RenderPDF renders the scene as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(s *layout.Scene, wires []*route.Wire, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(RenderSVG(s, wires, opts...))
}

// RenderPNG renders the scene as PNG via SVG conversion at the given scale.
func RenderPNG(s *layout.Scene, wires []*route.Wire, scale float64, opts ...SVGOption) ([]byte, error) {
	return render.ToPNG(RenderSVG(s, wires, opts...), scale)
}
