package board

import (
	"slices"
	"strings"

	"github.com/matzehuels/pinmap/pkg/errors"
)

// TargetKind tags the variant held by a Target.
type TargetKind int

const (
	// TargetUnrendered is a named signal that gets a CPU pin but no wire.
	TargetUnrendered TargetKind = iota
	// TargetSingle maps the physical pin to exactly one logical pin.
	TargetSingle
	// TargetMulti fans the physical pin out to several logical pins.
	TargetMulti
)

func (k TargetKind) String() string {
	switch k {
	case TargetUnrendered:
		return "unrendered"
	case TargetSingle:
		return "single"
	case TargetMulti:
		return "multi"
	}
	return "unknown"
}

// Target is what a physical pin connects to.
type Target struct {
	Kind TargetKind
	// Signal names an unrendered target, such as "MD_BOOT0".
	Signal string
	// Pins holds the logical pins of a Single (one) or Multi (one or more)
	// target.
	Pins []PinRef
}

// Unrendered returns a target that names a signal without drawing a wire.
func Unrendered(signal string) Target {
	return Target{Kind: TargetUnrendered, Signal: signal}
}

// Single returns a target that connects to one logical pin.
func Single(ref PinRef) Target {
	return Target{Kind: TargetSingle, Pins: []PinRef{ref}}
}

// Multi returns a target that fans out to every given logical pin.
func Multi(refs ...PinRef) Target {
	return Target{Kind: TargetMulti, Pins: slices.Clone(refs)}
}

// Refs returns the logical pins the target connects to, in declaration
// order. Unrendered targets return nil.
func (t Target) Refs() []PinRef {
	if t.Kind == TargetUnrendered {
		return nil
	}
	return t.Pins
}

// IsWired reports whether the target produces at least one wire.
func (t Target) IsWired() bool { return len(t.Refs()) > 0 }

// String formats the target for reports.
func (t Target) String() string {
	switch t.Kind {
	case TargetUnrendered:
		return t.Signal
	case TargetSingle, TargetMulti:
		names := make([]string, len(t.Pins))
		for i, r := range t.Pins {
			names[i] = r.String()
		}
		return strings.Join(names, ", ")
	}
	return ""
}

// PortEntry maps one port-relative pin to a physical package pin and its
// target.
type PortEntry struct {
	PortPin int
	Package int
	Target  Target
}

// PortWidth is the number of pins in a port. Port-relative pins run
// 0..PortWidth-1.
const PortWidth = 16

// Port is a group of up to PortWidth physical pins sharing a port index.
type Port struct {
	Index   int
	Entries []PortEntry
}

// PinMap is the full set of ports in ascending declaration order.
type PinMap []Port

// Port returns the port with the given index.
func (m PinMap) Port(index int) (*Port, bool) {
	for i := range m {
		if m[i].Index == index {
			return &m[i], true
		}
	}
	return nil, false
}

// Located is a port entry together with the port that owns it.
type Located struct {
	Port int
	PortEntry
}

// Flatten merges all ports into a physical-pin lookup. Ports are visited in
// order and the first physical number seen twice is reported as
// ErrCodeDuplicatePhysicalPin.
func (m PinMap) Flatten() (map[int]Located, error) {
	out := make(map[int]Located)
	for _, p := range m {
		for _, e := range p.Entries {
			if _, dup := out[e.Package]; dup {
				return nil, errors.New(errors.ErrCodeDuplicatePhysicalPin, "duplicate physical pin %d", e.Package)
			}
			out[e.Package] = Located{Port: p.Index, PortEntry: e}
		}
	}
	return out, nil
}

// Entries returns every port entry in port order then entry order.
func (m PinMap) Entries() []Located {
	var out []Located
	for _, p := range m {
		for _, e := range p.Entries {
			out = append(out, Located{Port: p.Index, PortEntry: e})
		}
	}
	return out
}

// UnrenderedGroup is a set of physical pins that share a reason for not
// being drawn, such as "VCC" or "USB".
type UnrenderedGroup struct {
	Reason string
	Pins   []int
}
