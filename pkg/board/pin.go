package board

import (
	"fmt"
	"strings"

	"github.com/matzehuels/pinmap/pkg/errors"
)

// PinKind is the electrical role of a logical pin, seen from the module that
// owns it. An encoder's A and B lines are outputs: the encoder drives them.
type PinKind int

const (
	// KindBus is a multi-bit signal. Many physical pins may target it.
	KindBus PinKind = iota
	// KindInput is a signal the module receives.
	KindInput
	// KindOutput is a signal the module drives.
	KindOutput
	// KindIndirectInput is an input whose connection is not drawn as a wire.
	KindIndirectInput
	// KindIndirectOutput is an output whose connection is not drawn as a wire.
	KindIndirectOutput
)

var kindNames = map[PinKind]string{
	KindBus:            "bus",
	KindInput:          "input",
	KindOutput:         "output",
	KindIndirectInput:  "indirect-input",
	KindIndirectOutput: "indirect-output",
}

var kindFromString = map[string]PinKind{
	"bus":             KindBus,
	"i":               KindInput,
	"input":           KindInput,
	"o":               KindOutput,
	"output":          KindOutput,
	"indirect_i":      KindIndirectInput,
	"indirect-input":  KindIndirectInput,
	"indirect_o":      KindIndirectOutput,
	"indirect-output": KindIndirectOutput,
}

// ParsePinKind converts a kind name into a PinKind. Both the short names
// ("i", "o", "indirect_i", "indirect_o", "bus") and the long names
// ("input", "indirect-output", ...) are accepted, case-insensitively.
func ParsePinKind(s string) (PinKind, error) {
	if k, ok := kindFromString[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return 0, errors.New(errors.ErrCodeUnknownPinKind, "invalid pin type %q", s)
}

// String returns the long name of the kind.
func (k PinKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("PinKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k PinKind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, errors.New(errors.ErrCodeUnknownPinKind, "invalid pin type %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *PinKind) UnmarshalText(text []byte) error {
	v, err := ParsePinKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// IsBus reports whether the kind may be targeted by many physical pins.
func (k PinKind) IsBus() bool { return k == KindBus }

// IsIndirect reports whether the kind is exempt from coverage checking.
func (k PinKind) IsIndirect() bool { return k == KindIndirectInput || k == KindIndirectOutput }

// IsInput reports whether the pin renders with the input notch.
func (k PinKind) IsInput() bool { return k == KindInput || k == KindIndirectInput }

// LogicalPin is a named signal on a module.
type LogicalPin struct {
	Name string
	Kind PinKind
}

// PinRef identifies a logical pin by module name and pin name. It is the
// only way the pin map and the wires refer to logical pins.
type PinRef struct {
	Module string
	Pin    string
}

// Ref is shorthand for PinRef{Module: module, Pin: pin}.
func Ref(module, pin string) PinRef { return PinRef{Module: module, Pin: pin} }

// String formats the reference as "Module.Pin".
func (r PinRef) String() string { return r.Module + "." + r.Pin }
