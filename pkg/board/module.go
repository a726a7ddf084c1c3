package board

import (
	"github.com/matzehuels/pinmap/pkg/errors"
)

// Module is a peripheral with an ordered list of logical pins. Pin order
// determines the vertical stacking of pins when the module is drawn.
type Module struct {
	Name string
	// Chip is the optional part number drawn in a strip at the bottom.
	Chip string

	pins   []LogicalPin
	byName map[string]int
}

// NewModule creates a module. Pin names must be non-empty and unique within
// the module.
func NewModule(name, chip string, pins ...LogicalPin) (*Module, error) {
	if name == "" {
		return nil, errors.New(errors.ErrCodeInvalidBoard, "module name cannot be empty")
	}
	m := &Module{
		Name:   name,
		Chip:   chip,
		pins:   make([]LogicalPin, 0, len(pins)),
		byName: make(map[string]int, len(pins)),
	}
	for _, p := range pins {
		if p.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidBoard, "module %s: pin name cannot be empty", name)
		}
		if _, dup := m.byName[p.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidBoard, "module %s: duplicate pin %q", name, p.Name)
		}
		if _, ok := kindNames[p.Kind]; !ok {
			return nil, errors.New(errors.ErrCodeUnknownPinKind, "module %s: pin %q has invalid type %d", name, p.Name, int(p.Kind))
		}
		m.byName[p.Name] = len(m.pins)
		m.pins = append(m.pins, p)
	}
	return m, nil
}

// Pins returns the module's pins in declaration order. The returned slice
// must not be modified.
func (m *Module) Pins() []LogicalPin { return m.pins }

// Pin looks up a pin by name.
func (m *Module) Pin(name string) (LogicalPin, bool) {
	i, ok := m.byName[name]
	if !ok {
		return LogicalPin{}, false
	}
	return m.pins[i], true
}

// PinCount returns the number of pins on the module.
func (m *Module) PinCount() int { return len(m.pins) }

// HasChip reports whether the module carries a part-number label.
func (m *Module) HasChip() bool { return m.Chip != "" }

// Ref returns the PinRef for the named pin of this module.
func (m *Module) Ref(pin string) PinRef { return PinRef{Module: m.Name, Pin: pin} }

// Catalog is the ordered set of modules on a board.
type Catalog struct {
	modules []*Module
	byName  map[string]*Module
}

// NewCatalog creates a catalog. Module names must be unique.
func NewCatalog(modules ...*Module) (*Catalog, error) {
	c := &Catalog{
		modules: make([]*Module, 0, len(modules)),
		byName:  make(map[string]*Module, len(modules)),
	}
	for _, m := range modules {
		if _, dup := c.byName[m.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidBoard, "duplicate module %q", m.Name)
		}
		c.byName[m.Name] = m
		c.modules = append(c.modules, m)
	}
	return c, nil
}

// Modules returns the modules in declaration order.
func (c *Catalog) Modules() []*Module { return c.modules }

// Module looks up a module by name.
func (c *Catalog) Module(name string) (*Module, bool) {
	m, ok := c.byName[name]
	return m, ok
}

// Resolve returns the logical pin a reference points at.
func (c *Catalog) Resolve(ref PinRef) (LogicalPin, bool) {
	m, ok := c.byName[ref.Module]
	if !ok {
		return LogicalPin{}, false
	}
	return m.Pin(ref.Pin)
}

// PinCount returns the total number of logical pins across all modules.
func (c *Catalog) PinCount() int {
	n := 0
	for _, m := range c.modules {
		n += m.PinCount()
	}
	return n
}
