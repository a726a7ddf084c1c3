package layout

import "strconv"

// Point is a position in user units. Y increases downward.
type Point struct {
	X, Y float64
}

// String formats the point as "x,y".
func (p Point) String() string { return FormatCoord(p.X) + "," + FormatCoord(p.Y) }

// Box is an axis-aligned rectangle anchored at its top-left corner.
type Box struct {
	Left, Top     float64
	Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (b Box) Right() float64 { return b.Left + b.Width }

// Bottom returns the y coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Top + b.Height }

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 { return b.Left + b.Width/2 }

// CenterY returns the vertical center of the box.
func (b Box) CenterY() float64 { return b.Top + b.Height/2 }

// Union returns the smallest box containing both boxes. A zero box is
// treated as empty.
func (b Box) Union(o Box) Box {
	if b == (Box{}) {
		return o
	}
	if o == (Box{}) {
		return b
	}
	left := min(b.Left, o.Left)
	top := min(b.Top, o.Top)
	return Box{
		Left:   left,
		Top:    top,
		Width:  max(b.Right(), o.Right()) - left,
		Height: max(b.Bottom(), o.Bottom()) - top,
	}
}

// FormatCoord formats a coordinate in its shortest decimal form: 7, not
// 7.000000, and 3.5, not 3.50.
func FormatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
