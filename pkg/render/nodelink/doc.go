// Package nodelink renders board connectivity as a node-link diagram.
//
// # Overview
//
// The pinout diagram shows where every wire goes; this package shows which
// CPU ports talk to which modules. Ports are grouped in a CPU cluster on the
// left, modules sit on the right, and one arrow joins each port to each
// module it reaches.
//
// # Usage
//
//	dot := nodelink.ToDOT(b, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// [Edges] exposes the same port-to-module grouping without Graphviz.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
