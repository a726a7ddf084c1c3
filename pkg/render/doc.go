// Package render turns a laid-out pinout into output documents.
//
// # Overview
//
// Rendering is split by output kind:
//
//   - [sink]: the pinout diagram itself, as SVG or JSON geometry
//   - [nodelink]: a Graphviz connectivity view of modules and ports
//   - this package: generic SVG to PDF/PNG conversion
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg). A missing tool is reported as ErrCodeUnsupported so the
// CLI can fall back to SVG.
//
//	svg := sink.RenderSVG(scene, wires)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [sink]: github.com/matzehuels/pinmap/pkg/render/sink
// [nodelink]: github.com/matzehuels/pinmap/pkg/render/nodelink
package render
