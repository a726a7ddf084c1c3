package board

import (
	"github.com/matzehuels/pinmap/pkg/errors"
)

// Facing is the side of a module or port its pins point to.
type Facing int

const (
	// FacingLeft puts pin tips on the left edge.
	FacingLeft Facing = iota
	// FacingRight puts pin tips on the right edge.
	FacingRight
)

func (f Facing) String() string {
	if f == FacingRight {
		return "right"
	}
	return "left"
}

// MarshalText implements encoding.TextMarshaler.
func (f Facing) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Facing) UnmarshalText(text []byte) error {
	v, err := ParseFacing(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// ParseFacing converts "left" or "right" into a Facing.
func ParseFacing(s string) (Facing, error) {
	switch s {
	case "left":
		return FacingLeft, nil
	case "right":
		return FacingRight, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidBoard, "invalid facing %q: want left or right", s)
}

// Placement positions a module on the canvas.
type Placement struct {
	Top    float64
	Left   float64
	Facing Facing
}

// CPUPlacement positions the microcontroller block and assigns its ports to
// the two columns. Left ports face left, right ports face right.
type CPUPlacement struct {
	Top        float64
	Left       float64
	Width      float64 // zero uses the layout default
	LeftPorts  []int
	RightPorts []int
}

// RouteSpec attaches an explicit wire route to the Index-th wire leaving
// port-relative pin Pin of port Port.
type RouteSpec struct {
	Port  int
	Pin   int
	Index int
	Path  string
}

// Canvas is the size of the output document.
type Canvas struct {
	Width  float64
	Height float64
}

// Metrics overrides layout constants. Zero fields keep the default.
type Metrics struct {
	UnitHeight        float64 `toml:"unit_height,omitempty"`
	Padding           float64 `toml:"padding,omitempty"`
	LineWeight        float64 `toml:"line_weight,omitempty"`
	Spacing           float64 `toml:"spacing,omitempty"`
	ModuleWidth       float64 `toml:"module_width,omitempty"`
	PinInset          float64 `toml:"pin_inset,omitempty"`
	CPUPinWidth       float64 `toml:"cpu_pin_width,omitempty"`
	CPUPortWidth      float64 `toml:"cpu_port_width,omitempty"`
	CPUPortLabelWidth float64 `toml:"cpu_port_label_width,omitempty"`
}

// DefaultPackagePins is the pin count of the reference microcontroller.
const DefaultPackagePins = 176

// Board is a complete, declarative pinout description.
type Board struct {
	Name        string
	PackagePins int

	Catalog    *Catalog
	Ports      PinMap
	Unrendered []UnrenderedGroup

	Placements map[string]Placement
	CPU        CPUPlacement
	Routes     []RouteSpec
	Canvas     Canvas
	Metrics    Metrics
}

// UnrenderedPins returns every unrendered physical pin in declaration order.
func (b *Board) UnrenderedPins() []int {
	var out []int
	for _, g := range b.Unrendered {
		out = append(out, g.Pins...)
	}
	return out
}

// UnrenderedReason returns the reason a physical pin is not drawn.
func (b *Board) UnrenderedReason(pin int) (string, bool) {
	for _, g := range b.Unrendered {
		for _, p := range g.Pins {
			if p == pin {
				return g.Reason, true
			}
		}
	}
	return "", false
}

// Stats summarizes a board.
type Stats struct {
	Modules     int
	LogicalPins int
	Ports       int
	Mapped      int
	Unrendered  int
	Wires       int
	Routes      int
}

// Stats counts the board's entities. Wires counts one per logical pin of
// every wired target.
func (b *Board) Stats() Stats {
	s := Stats{
		Ports:      len(b.Ports),
		Unrendered: len(b.UnrenderedPins()),
		Routes:     len(b.Routes),
	}
	if b.Catalog != nil {
		s.Modules = len(b.Catalog.Modules())
		s.LogicalPins = b.Catalog.PinCount()
	}
	for _, e := range b.Ports.Entries() {
		s.Mapped++
		s.Wires += len(e.Target.Refs())
	}
	return s
}
