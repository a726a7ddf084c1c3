package board

import (
	"github.com/matzehuels/pinmap/pkg/errors"
)

// Validate checks the board and returns the first violation, or nil.
func Validate(b *Board) error {
	if errs := Check(b); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// Check returns every violation on the board in a deterministic order:
// port-relative pin faults in port order, physical pin faults in
// declaration order (unrendered set first, then ports), missing pins in ascending order, then logical pin faults in port
// order followed by catalog order. Each error is an *errors.Error.
func Check(b *Board) []error {
	if b == nil || b.Catalog == nil {
		return []error{errors.New(errors.ErrCodeInvalidBoard, "board has no catalog")}
	}
	if b.PackagePins <= 0 {
		return []error{errors.New(errors.ErrCodeInvalidBoard, "package pin count must be positive, got %d", b.PackagePins)}
	}

	var errs []error
	errs = append(errs, checkPortPins(b)...)
	errs = append(errs, checkPhysical(b)...)
	errs = append(errs, checkCoverage(b)...)
	return errs
}

func checkPortPins(b *Board) []error {
	var errs []error
	for _, port := range b.Ports {
		seen := make(map[int]bool, len(port.Entries))
		for _, e := range port.Entries {
			switch {
			case e.PortPin < 0 || e.PortPin >= PortWidth:
				errs = append(errs, errors.New(errors.ErrCodeInvalidBoard,
					"port %d pin %d out of range 0..%d", port.Index, e.PortPin, PortWidth-1))
			case seen[e.PortPin]:
				errs = append(errs, errors.New(errors.ErrCodeInvalidBoard,
					"port %d pin %d defined twice", port.Index, e.PortPin))
			}
			seen[e.PortPin] = true
		}
	}
	return errs
}

func checkPhysical(b *Board) []error {
	var errs []error
	n := b.PackagePins
	outOfRange := func(p int) {
		if p < 1 || p > n {
			errs = append(errs, errors.New(errors.ErrCodeInvalidBoard, "physical pin %d out of range 1..%d", p, n))
		}
	}

	unrendered := make(map[int]bool)
	for _, p := range b.UnrenderedPins() {
		if unrendered[p] {
			errs = append(errs, errors.New(errors.ErrCodeDuplicatePhysicalPin, "duplicate physical pin %d", p))
			continue
		}
		unrendered[p] = true
		outOfRange(p)
	}

	mapped := make(map[int]bool)
	for _, e := range b.Ports.Entries() {
		p := e.Package
		if mapped[p] {
			errs = append(errs, errors.New(errors.ErrCodeDuplicatePhysicalPin, "duplicate physical pin %d", p))
			continue
		}
		mapped[p] = true
		if unrendered[p] {
			errs = append(errs, errors.New(errors.ErrCodeUnrenderedConflict,
				"pin %d appears in both rendered and unrendered pins", p))
			continue
		}
		outOfRange(p)
	}

	for p := 1; p <= n; p++ {
		if !unrendered[p] && !mapped[p] {
			errs = append(errs, errors.New(errors.ErrCodeMissingPinDefinition,
				"missing definition for physical pin %d", p))
		}
	}
	return errs
}

func checkCoverage(b *Board) []error {
	var errs []error
	count := make(map[PinRef]int)

	for _, e := range b.Ports.Entries() {
		for _, ref := range e.Target.Refs() {
			pin, ok := b.Catalog.Resolve(ref)
			if !ok {
				errs = append(errs, errors.New(errors.ErrCodeInvalidBoard,
					"physical pin %d targets unknown pin %s", e.Package, ref))
				continue
			}
			if pin.Kind.IsBus() || pin.Kind.IsIndirect() {
				continue
			}
			count[ref]++
			if count[ref] == 2 {
				errs = append(errs, errors.New(errors.ErrCodeDuplicateLogicalPinReference,
					"pin %s mapped twice", ref))
			}
		}
	}

	for _, m := range b.Catalog.Modules() {
		for _, pin := range m.Pins() {
			if pin.Kind.IsBus() || pin.Kind.IsIndirect() {
				continue
			}
			ref := m.Ref(pin.Name)
			if count[ref] == 0 {
				errs = append(errs, errors.New(errors.ErrCodeUnmappedLogicalPin, "pin %s not mapped", ref))
			}
		}
	}
	return errs
}
