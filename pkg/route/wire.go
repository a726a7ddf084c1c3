package route

import (
	"slices"
	"sync"

	"github.com/matzehuels/pinmap/pkg/board"
	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/layout"
)

// Wire connects one CPU package pin to one logical pin.
type Wire struct {
	Source layout.CPUPinGeom
	Dest   layout.PinGeom
	// Index is the wire's position among the targets of its physical pin.
	Index int
	// Route holds explicit directives. Nil means the default path.
	Route []Directive

	once sync.Once
	path Path
	d    string
}

// NewWire creates a wire. Route directives are checked here so that path
// resolution cannot fail later.
func NewWire(src layout.CPUPinGeom, dst layout.PinGeom, index int, dirs []Directive) (*Wire, error) {
	for _, d := range dirs {
		if !d.Kind.valid() {
			return nil, errors.New(errors.ErrCodeUnknownRouteDirective,
				"unknown direction %d on wire %d -> %s", int(d.Kind), src.Package, dst.Ref)
		}
	}
	return &Wire{
		Source: src,
		Dest:   dst,
		Index:  index,
		Route:  slices.Clone(dirs),
	}, nil
}

// Explicit reports whether the wire follows a caller-supplied route.
func (w *Wire) Explicit() bool { return w.Route != nil }

// Pin returns the logical pin at the wire's destination.
func (w *Wire) Pin() board.PinRef { return w.Dest.Ref }

// Path returns the wire's path. It is computed once and cached.
func (w *Wire) Path() Path {
	w.resolve()
	return w.path
}

// D returns the SVG path data for the wire. Repeated calls return the
// identical string.
func (w *Wire) D() string {
	w.resolve()
	return w.d
}

func (w *Wire) resolve() {
	w.once.Do(func() {
		src, dst := w.Source.Tip, w.Dest.Tip
		if w.Route != nil {
			w.path = Explicit(src, dst, w.Route)
		} else {
			w.path = Auto(src, dst)
		}
		w.d = w.path.String()
	})
}
