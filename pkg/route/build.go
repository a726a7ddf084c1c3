package route

import (
	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/layout"
)

type wireKey struct {
	port, pin, index int
}

// Build creates every wire of a laid-out scene and attaches the board's
// explicit routes. A route that names no wire, or a wire routed twice, is
// an ErrCodeInvalidBoard error. A route with an unknown letter is an
// ErrCodeUnknownRouteDirective error.
func Build(s *layout.Scene) ([]*Wire, error) {
	b := s.Board

	routes := make(map[wireKey][]Directive, len(b.Routes))
	for _, r := range b.Routes {
		key := wireKey{r.Port, r.Pin, r.Index}
		if _, dup := routes[key]; dup {
			return nil, errors.New(errors.ErrCodeInvalidBoard,
				"route for port %d pin %d index %d declared twice", r.Port, r.Pin, r.Index)
		}
		dirs, err := Parse(r.Path)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "route for port %d pin %d", r.Port, r.Pin)
		}
		if dirs == nil {
			dirs = []Directive{}
		}
		routes[key] = dirs
	}

	var wires []*Wire
	used := make(map[wireKey]bool, len(routes))
	for _, port := range b.Ports {
		for _, e := range port.Entries {
			refs := e.Target.Refs()
			if len(refs) == 0 {
				continue
			}
			src, ok := s.CPUPin(e.Package)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidBoard, "physical pin %d has no CPU pin", e.Package)
			}
			for i, ref := range refs {
				dst, ok := s.Pin(ref)
				if !ok {
					return nil, errors.New(errors.ErrCodeInvalidBoard,
						"physical pin %d targets unknown pin %s", e.Package, ref)
				}
				key := wireKey{port.Index, e.PortPin, i}
				dirs, routed := routes[key]
				if routed {
					used[key] = true
				}
				w, err := NewWire(src, dst, i, dirs)
				if err != nil {
					return nil, err
				}
				wires = append(wires, w)
			}
		}
	}

	for _, r := range b.Routes {
		if !used[wireKey{r.Port, r.Pin, r.Index}] {
			return nil, errors.New(errors.ErrCodeInvalidBoard,
				"route for port %d pin %d index %d matches no wire", r.Port, r.Pin, r.Index)
		}
	}
	return wires, nil
}

// Stats summarizes a wire set.
type Stats struct {
	Wires    int
	Explicit int
	Segments int
}

// Summarize counts wires, explicit routes and path segments.
func Summarize(wires []*Wire) Stats {
	var st Stats
	for _, w := range wires {
		st.Wires++
		if w.Explicit() {
			st.Explicit++
		}
		st.Segments += w.Path().Segments()
	}
	return st
}
