// Package sink renders a laid-out pinout scene to output documents.
//
// # SVG
//
// [RenderSVG] draws modules, pins, the CPU block and wires in that order,
// then a highlight layer holding one "pin-connection-group" per wire. Each
// group re-draws the wire's CPU pin, its logical pin and its path with the
// "highlight" class, so a stylesheet can reveal a whole connection on hover:
//
//	#highlight .pin-connection-group { opacity: 0; }
//	#highlight .pin-connection-group:hover { opacity: 1; }
//
// The renderer encodes no colours or fonts. All presentation comes from the
// stylesheet, which is embedded verbatim in a <style> element. A default
// stylesheet is compiled in; replace it with [WithStylesheet].
//
// # JSON
//
// [RenderJSON] exports the same scene as plain geometry (boxes, tip points
// and path data) for external tools.
//
// # Other formats
//
// PDF and PNG go through [render.ToPDF] and [render.ToPNG], which convert
// the SVG with rsvg-convert.
//
// [render.ToPDF]: github.com/matzehuels/pinmap/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/pinmap/pkg/render.ToPNG
package sink
