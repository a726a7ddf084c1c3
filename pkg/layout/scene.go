package layout

import (
	"github.com/matzehuels/pinmap/pkg/board"
)

// Scene is the laid-out board. Entities are stored in declaration order so
// that every sink produces deterministic output.
type Scene struct {
	Board   *board.Board
	Metrics Metrics
	Canvas  board.Canvas

	Modules []ModuleGeom
	CPU     CPUGeom

	pins    map[board.PinRef]PinGeom
	cpuPins map[int]CPUPinGeom
}

// ModuleGeom is the placed box of a module and its pins.
type ModuleGeom struct {
	Name   string
	Chip   string
	Box    Box
	Facing board.Facing
	Pins   []PinGeom
}

// PinGeom is the placed box of a logical pin.
type PinGeom struct {
	Ref    board.PinRef
	Kind   board.PinKind
	Box    Box
	Facing board.Facing
	Tip    Point
}

// CPUGeom is the placed microcontroller block.
type CPUGeom struct {
	Box   Box
	Ports []PortGeom
}

// PortGeom is a placed port box and its CPU pins.
type PortGeom struct {
	Index  int
	Box    Box
	Facing board.Facing
	Pins   []CPUPinGeom
}

// CPUPinGeom is a placed physical package pin.
type CPUPinGeom struct {
	Package int
	Port    int
	PortPin int
	Target  board.Target
	Box     Box
	Facing  board.Facing
	Tip     Point
}

// Pin returns the geometry of a logical pin.
func (s *Scene) Pin(ref board.PinRef) (PinGeom, bool) {
	p, ok := s.pins[ref]
	return p, ok
}

// CPUPin returns the geometry of a physical package pin. Unrendered pins in
// the board's unrendered set have no geometry.
func (s *Scene) CPUPin(pkg int) (CPUPinGeom, bool) {
	p, ok := s.cpuPins[pkg]
	return p, ok
}

// Module returns the geometry of a module by name.
func (s *Scene) Module(name string) (ModuleGeom, bool) {
	for _, m := range s.Modules {
		if m.Name == name {
			return m, true
		}
	}
	return ModuleGeom{}, false
}

// CPUPins returns every CPU pin in column order, then port order, then
// entry order.
func (s *Scene) CPUPins() []CPUPinGeom {
	var out []CPUPinGeom
	for _, p := range s.CPU.Ports {
		out = append(out, p.Pins...)
	}
	return out
}

// Bounds returns the box enclosing every module, pin tip and the CPU block.
func (s *Scene) Bounds() Box {
	b := s.CPU.Box
	for _, m := range s.Modules {
		b = b.Union(m.Box)
		for _, p := range m.Pins {
			b = b.Union(Box{Left: p.Tip.X, Top: p.Tip.Y})
		}
	}
	return b
}
