package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pinmap/pkg/board"
	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/render"
)

// Options configures connectivity diagram rendering.
type Options struct {
	// Detailed adds chip names and pin counts to node labels and lists the
	// package pins on every edge. When false, edges show only a wire count.
	Detailed bool
}

// Edge is one port-to-module connection in the connectivity graph.
// Packages holds the package pin numbers carrying the connection, in
// pin map order.
type Edge struct {
	Port     int
	Module   string
	Packages []int
}

// Edges collapses the board's pin map into port-to-module edges. Every
// wired target contributes its package pin to one edge per distinct module
// it reaches. Edges are ordered by port declaration, then by first use.
func Edges(b *board.Board) []Edge {
	var edges []Edge
	for _, port := range b.Ports {
		index := map[string]int{}
		for _, e := range port.Entries {
			seen := map[string]bool{}
			for _, ref := range e.Refs() {
				if seen[ref.Module] {
					continue
				}
				seen[ref.Module] = true
				i, ok := index[ref.Module]
				if !ok {
					i = len(edges)
					index[ref.Module] = i
					edges = append(edges, Edge{Port: port.Index, Module: ref.Module})
				}
				edges[i].Packages = append(edges[i].Packages, e.Package)
			}
		}
	}
	return edges
}

// ToDOT converts a board's connectivity to Graphviz DOT format.
// CPU ports and modules become nodes; each [Edge] becomes an arrow from
// port to module. The result can be rendered with [RenderSVG], [RenderPDF],
// or [RenderPNG].
//
// Modules that no port reaches are drawn with dashed outlines.
func ToDOT(b *board.Board, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=1.5;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	edges := Edges(b)
	reached := map[string]bool{}
	for _, e := range edges {
		reached[e.Module] = true
	}

	buf.WriteString("  subgraph cluster_cpu {\n")
	fmt.Fprintf(&buf, "    label=%q;\n", cpuLabel(b))
	buf.WriteString("    style=\"rounded\";\n")
	for _, p := range b.Ports {
		fmt.Fprintf(&buf, "    %q [label=%q, fillcolor=\"#e8eef7\"];\n", portID(p.Index), portLabel(p, opts.Detailed))
	}
	buf.WriteString("  }\n\n")

	for _, m := range b.Catalog.Modules() {
		attrs := []string{fmt.Sprintf("label=%q", moduleLabel(m, opts.Detailed))}
		if !reached[m.Name] {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", moduleID(m.Name), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", portID(e.Port), moduleID(e.Module), edgeLabel(e, opts.Detailed))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func portID(index int) string     { return "port:" + strconv.Itoa(index) }
func moduleID(name string) string { return "module:" + name }

func cpuLabel(b *board.Board) string {
	if b.Name == "" {
		return "CPU"
	}
	return b.Name + " CPU"
}

func portLabel(p board.Port, detailed bool) string {
	label := fmt.Sprintf("Port %d", p.Index)
	if !detailed {
		return label
	}
	var wired, unrendered int
	for _, e := range p.Entries {
		if e.IsWired() {
			wired++
		} else {
			unrendered++
		}
	}
	return fmt.Sprintf("%s\nwired: %d\nunrendered: %d", label, wired, unrendered)
}

func moduleLabel(m *board.Module, detailed bool) string {
	if !detailed {
		return m.Name
	}
	parts := []string{m.Name}
	if m.HasChip() {
		parts = append(parts, m.Chip)
	}
	parts = append(parts, fmt.Sprintf("pins: %d", m.PinCount()))
	return strings.Join(parts, "\n")
}

func edgeLabel(e Edge, detailed bool) string {
	if !detailed {
		return strconv.Itoa(len(e.Packages))
	}
	pins := make([]string, len(e.Packages))
	for i, p := range e.Packages {
		pins[i] = strconv.Itoa(p)
	}
	return strings.Join(pins, ",")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion at the given scale.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
