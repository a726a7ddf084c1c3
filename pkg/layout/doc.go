// Package layout computes the geometry of a pinout diagram.
//
// # Overview
//
// Layout is caller-driven: every module and the CPU block carry an explicit
// position in the [board.Board]. This package turns those positions into
// exact boxes for modules, logical pins, ports and CPU pins, and derives the
// tip point of every pin, the point where a wire attaches.
//
// # Building a Scene
//
// Use [Build] with a validated board:
//
//	scene, err := layout.Build(b)
//
// Layout constants come from [DefaultMetrics] overlaid with the board's
// [board.Metrics] table. Pass [WithMetrics] to replace them entirely.
//
// # Modules
//
// A module is ModuleWidth wide. Its height is
//
//	H + 2·(Padding + L) + n·Spacing + tail
//
// where the tail is H + L + Padding when the module carries a chip label and
// H otherwise. Pin i starts at moduleTop + 3·Padding + Spacing·(i+1).
//
// # Tips
//
// Output, indirect-output and bus pins end in a point half a row past their
// edge. Input pins end in a notch, so their tip sits on the edge itself,
// offset by the line weight. The tip y is always the vertical centre of the
// pin row.
//
// # CPU block
//
// Ports are stacked in two columns. Left-column ports face left and right-
// column ports face right. The CPU block is as tall as the taller column.
//
// # Integration
//
//	board.Validate → layout.Build → route.Build → sink.RenderSVG
package layout
