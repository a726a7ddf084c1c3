package sink

import (
	"bytes"
	_ "embed"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/pinmap/pkg/board"
	"github.com/matzehuels/pinmap/pkg/layout"
	"github.com/matzehuels/pinmap/pkg/route"
)

//go:embed style.css
var defaultStylesheet string

// DefaultStylesheet returns the compiled-in stylesheet.
func DefaultStylesheet() string { return defaultStylesheet }

const cornerRadius = 5

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	stylesheet string
	highlight  bool
	canvas     board.Canvas
}

// WithStylesheet replaces the default stylesheet.
func WithStylesheet(css string) SVGOption { return func(r *svgRenderer) { r.stylesheet = css } }

// WithoutHighlight omits the highlight layer.
func WithoutHighlight() SVGOption { return func(r *svgRenderer) { r.highlight = false } }

// WithCanvas overrides the document size taken from the scene.
func WithCanvas(width, height float64) SVGOption {
	return func(r *svgRenderer) { r.canvas = board.Canvas{Width: width, Height: height} }
}

// RenderSVG draws the scene and its wires as a standalone SVG document. It
// only reads coordinates from the scene and never fails.
func RenderSVG(s *layout.Scene, wires []*route.Wire, opts ...SVGOption) []byte {
	r := svgRenderer{stylesheet: defaultStylesheet, highlight: true, canvas: s.Canvas}
	for _, opt := range opts {
		opt(&r)
	}
	w, h := layout.FormatCoord(r.canvas.Width), layout.FormatCoord(r.canvas.Height)

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, " <defs>\n  <style>%s</style>\n </defs>\n", EscapeXML(r.stylesheet))
	buf.WriteString(" <g>\n")

	buf.WriteString(`  <g id="modules">` + "\n")
	for _, m := range s.Modules {
		renderModule(&buf, s.Metrics, m)
	}
	buf.WriteString("  </g>\n")

	renderCPU(&buf, s.Metrics, s.CPU)

	buf.WriteString(`  <g id="wires">` + "\n")
	for _, wire := range wires {
		fmt.Fprintf(&buf, `   <path d="%s" class="connection"/>`+"\n", wire.D())
	}
	buf.WriteString("  </g>\n")

	if r.highlight {
		buf.WriteString(`  <g id="highlight">` + "\n")
		for _, wire := range wires {
			renderHighlight(&buf, s.Metrics, wire)
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString(" </g>\n</svg>\n")
	return buf.Bytes()
}

func renderModule(buf *bytes.Buffer, m layout.Metrics, g layout.ModuleGeom) {
	box := g.Box
	buf.WriteString("   <g>\n")
	fmt.Fprintf(buf, `    <g class="module" transform="%s">`+"\n", translate(box.Left, box.Top))
	fmt.Fprintf(buf, `     <rect x="0" y="0" rx="%d" ry="%d" width="%s" height="%s"/>`+"\n",
		cornerRadius, cornerRadius, f(box.Width), f(box.Height))
	fmt.Fprintf(buf, `     <text x="%s" y="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		f(box.Width/2), f(m.HalfHeight()+m.Padding), EscapeXML(g.Name))
	fmt.Fprintf(buf, `     <path d="M 0,%s H %s"/>`+"\n", f(m.UnitHeight+2*m.Padding), f(box.Width))

	if g.Chip != "" {
		chip := layout.Box{Left: 10, Top: box.Height - m.Spacing, Width: box.Width - 10, Height: m.Spacing}
		fmt.Fprintf(buf, `     <rect x="%s" y="%s" rx="%d" ry="%d" width="%s" height="%s"/>`+"\n",
			f(chip.Left), f(chip.Top), cornerRadius, cornerRadius, f(chip.Width), f(chip.Height))
		fmt.Fprintf(buf, `     <text x="%s" y="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			f(chip.CenterX()), f(chip.CenterY()), EscapeXML(g.Chip))
	}
	buf.WriteString("    </g>\n")

	for _, p := range g.Pins {
		fmt.Fprintf(buf, `    <g transform="%s">`+"\n", translate(p.Box.Left, p.Box.Top))
		fmt.Fprintf(buf, `     <path d="%s" class="%s"/>`+"\n", PinShape(m, p.Kind, p.Box.Width, p.Facing), FlagClass(p.Kind))
		fmt.Fprintf(buf, `     <text x="3" y="%s" text-anchor="left">%s</text>`+"\n", f(m.HalfHeight()), EscapeXML(p.Ref.Pin))
		buf.WriteString("    </g>\n")
	}
	buf.WriteString("   </g>\n")
}

func renderCPU(buf *bytes.Buffer, m layout.Metrics, cpu layout.CPUGeom) {
	buf.WriteString(`  <g id="cpu">` + "\n")
	fmt.Fprintf(buf, `   <rect x="%s" y="%s" width="%s" height="%s" rx="%d" ry="%d" class="cpu"/>`+"\n",
		f(cpu.Box.Left), f(cpu.Box.Top), f(cpu.Box.Width), f(cpu.Box.Height), cornerRadius, cornerRadius)

	for _, port := range cpu.Ports {
		fmt.Fprintf(buf, `   <g transform="%s">`+"\n", translate(port.Box.Left, port.Box.Top))
		fmt.Fprintf(buf, `    <rect rx="%d" ry="%d" width="%s" height="%s" class="port-base"/>`+"\n",
			cornerRadius, cornerRadius, f(port.Box.Width), f(port.Box.Height))
		fmt.Fprintf(buf, `    <rect rx="%d" ry="%d" width="%s" height="%s" class="port-label"/>`+"\n",
			cornerRadius, cornerRadius, f(m.CPUPortLabelWidth), f(m.UnitHeight))
		fmt.Fprintf(buf, `    <text x="3" y="%s" text-anchor="left">Port %d</text>`+"\n", f(m.HalfHeight()), port.Index)
		buf.WriteString("   </g>\n")

		for _, pin := range port.Pins {
			fmt.Fprintf(buf, `   <g transform="%s" class="cpu-pin">`+"\n", translate(pin.Box.Left, pin.Box.Top))
			fmt.Fprintf(buf, `    <rect rx="%d" ry="%d" width="%s" height="%s" class="port-label"/>`+"\n",
				cornerRadius, cornerRadius, f(pin.Box.Width), f(pin.Box.Height))
			fmt.Fprintf(buf, `    <text x="3" y="%s">Pin %d</text>`+"\n", f(m.HalfHeight()), pin.PortPin)
			fmt.Fprintf(buf, `    <text x="%s" y="%s" class="cpu-package-pin">%d</text>`+"\n",
				f(pin.Box.Width-m.Padding), f(m.HalfHeight()), pin.Package)
			if pin.Target.Kind == board.TargetUnrendered {
				fmt.Fprintf(buf, `    <title>%s</title>`+"\n", EscapeXML(pin.Target.Signal))
			}
			buf.WriteString("   </g>\n")
		}
	}
	buf.WriteString("  </g>\n")
}

func renderHighlight(buf *bytes.Buffer, m layout.Metrics, w *route.Wire) {
	src, dst := w.Source, w.Dest
	fmt.Fprintf(buf, `   <g class="pin-connection-group" data-package="%d" data-pin="%s">`+"\n",
		src.Package, EscapeXML(dst.Ref.String()))

	fmt.Fprintf(buf, `    <g transform="%s" class="cpu-pin highlight">`+"\n", translate(src.Box.Left, src.Box.Top))
	fmt.Fprintf(buf, `     <rect rx="%d" ry="%d" width="%s" height="%s" class="port-label"/>`+"\n",
		cornerRadius, cornerRadius, f(src.Box.Width), f(src.Box.Height))
	buf.WriteString("    </g>\n")

	fmt.Fprintf(buf, `    <g transform="%s">`+"\n", translate(dst.Box.Left, dst.Box.Top))
	fmt.Fprintf(buf, `     <path d="%s" class="highlight"/>`+"\n", PinShape(m, dst.Kind, dst.Box.Width, dst.Facing))
	buf.WriteString("    </g>\n")

	fmt.Fprintf(buf, `    <path d="%s" class="connection"/>`+"\n", w.D())
	buf.WriteString("   </g>\n")
}

// PinShape returns the outline of a logical pin of width w, relative to the
// pin's top-left corner. Outputs end in a point, inputs in a notch and
// buses in a rounded cap, on the side the pin faces.
func PinShape(m layout.Metrics, kind board.PinKind, w float64, facing board.Facing) string {
	H, h, L := f(m.UnitHeight), f(m.HalfHeight()), m.LineWeight
	left := facing == board.FacingLeft
	switch {
	case kind.IsBus() && left:
		return fmt.Sprintf("M %s,0 H 0 A 5 5, 0, 0, 0, 0, %s H %s Z", f(w), H, f(w))
	case kind.IsBus():
		return fmt.Sprintf("M 0,0 H %s a 5 5, 0, 0, 1, 0, %s H 0 Z", f(w), H)
	case kind.IsInput() && left:
		x := f(-L / 2)
		return fmt.Sprintf("M %s,0 H %s l %s,%s l -%s,%s H %s", x, f(w), h, h, h, h, x)
	case kind.IsInput():
		x := f(w + L)
		return fmt.Sprintf("M %s,0 H 0 l -%s,%s l %s,%s H %s", x, h, h, h, h, x)
	case left:
		return fmt.Sprintf("M 0,0 H %s V %s H 0 l -%s,-%s Z", f(w), H, h, h)
	default:
		return fmt.Sprintf("M 0,0 H %s l %s,%s l -%s,%s H 0 Z", f(w), h, h, h, h)
	}
}

// FlagClass returns the style class of a pin kind.
func FlagClass(kind board.PinKind) string {
	return kind.String() + "-flag"
}

// EscapeXML escapes text for use in XML content and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func translate(x, y float64) string {
	return "translate(" + f(x) + ", " + f(y) + ")"
}

func f(v float64) string { return layout.FormatCoord(v) }
