// Package pkg provides the core libraries for pinmap hardware pinout diagrams.
//
// # Overview
//
// Pinmap turns a board description into an annotated SVG pinout diagram: a
// CPU drawn as a rectangle with its ports on the left and right edges, the
// peripheral modules stacked in columns beside it, and one wire from every
// wired CPU pin to the logical pin it drives.
//
// # Architecture
//
// The data flow through pinmap:
//
//	board.toml (or the embedded reference board)
//	         ↓
//	    [board] package (catalog + physical pin map, validation)
//	         ↓
//	    [layout] package (module columns, CPU ports, pin geometry)
//	         ↓
//	    [route] package (orthogonal wire paths, explicit route directives)
//	         ↓
//	    [render/sink] package (SVG with hover highlighting, JSON)
//	         ↓
//	    SVG/PDF/PNG/JSON output
//
// # Quick Start
//
//	b, _ := board.Reference()
//	if err := board.Validate(b); err != nil {
//	    return err
//	}
//	scene, _ := layout.Build(b)
//	wires, _ := route.Build(scene)
//	svg := sink.RenderSVG(scene, wires)
//
// [pipeline.Runner] runs the same stages with caching and is what the CLI and
// the preview server use.
//
// # Main Packages
//
// [board] - Modules, logical pins, the CPU's physical pin map and the
// validator that checks every physical pin is defined once and every logical
// pin is wired.
//
// [layout] - Geometry: module boxes in left and right columns, CPU port
// rows and the connection tips wires attach to.
//
// [route] - Wire routing. Each wire is an automatic three-segment path or
// an explicit one written in a small directive language ("H 500, v 16, H 700").
//
// [render/sink] - SVG and JSON output.
//
// [render/nodelink] - A Graphviz port-to-module connectivity diagram.
//
// [render] - Format conversion (SVG to PDF/PNG).
//
// [pipeline] - Validate → layout → route → render orchestration.
//
// [cache] - File and null caches for rendered artifacts.
//
// [errors] - Coded errors shared by every stage.
//
// [board]: https://pkg.go.dev/github.com/matzehuels/pinmap/pkg/board
// [layout]: https://pkg.go.dev/github.com/matzehuels/pinmap/pkg/layout
// [route]: https://pkg.go.dev/github.com/matzehuels/pinmap/pkg/route
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/pinmap/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/pinmap/pkg/render/nodelink
// [render]: https://pkg.go.dev/github.com/matzehuels/pinmap/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/pinmap/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/pinmap/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/pinmap/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/pinmap/pkg/errors
package pkg
