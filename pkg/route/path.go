package route

import (
	"strings"

	"github.com/matzehuels/pinmap/pkg/layout"
)

// Path is an orthogonal polyline starting at Start.
type Path struct {
	Start layout.Point
	Steps []Directive
}

// Auto returns the default path between two tips. Tips on the same row are
// joined by a single horizontal segment. Otherwise the path turns at the
// horizontal midpoint.
func Auto(src, dst layout.Point) Path {
	if src.Y == dst.Y {
		return Path{Start: src, Steps: []Directive{AbsH(dst.X)}}
	}
	return Path{Start: src, Steps: []Directive{
		AbsH((src.X + dst.X) / 2),
		AbsV(dst.Y),
		AbsH(dst.X),
	}}
}

// Explicit returns a path that follows dirs from src and then lands on dst
// with a vertical move followed by a horizontal one.
func Explicit(src, dst layout.Point, dirs []Directive) Path {
	steps := make([]Directive, 0, len(dirs)+2)
	steps = append(steps, dirs...)
	steps = append(steps, AbsV(dst.Y), AbsH(dst.X))
	return Path{Start: src, Steps: steps}
}

// Points returns the vertices of the path, starting with Start.
func (p Path) Points() []layout.Point {
	pts := make([]layout.Point, 0, len(p.Steps)+1)
	cur := p.Start
	pts = append(pts, cur)
	for _, d := range p.Steps {
		cur = d.Apply(cur)
		pts = append(pts, cur)
	}
	return pts
}

// End returns the last vertex of the path.
func (p Path) End() layout.Point {
	cur := p.Start
	for _, d := range p.Steps {
		cur = d.Apply(cur)
	}
	return cur
}

// Segments returns the number of line segments in the path.
func (p Path) Segments() int { return len(p.Steps) }

// String returns the SVG path data, e.g. "M 5,10 H 50 V 40 H 95".
func (p Path) String() string {
	var b strings.Builder
	b.WriteString("M ")
	b.WriteString(p.Start.String())
	for _, d := range p.Steps {
		b.WriteByte(' ')
		b.WriteString(d.String())
	}
	return b.String()
}
