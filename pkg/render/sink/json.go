package sink

import (
	"encoding/json"

	"github.com/matzehuels/pinmap/pkg/layout"
	"github.com/matzehuels/pinmap/pkg/route"
)

type jsonOutput struct {
	Name    string       `json:"name,omitempty"`
	Width   float64      `json:"width"`
	Height  float64      `json:"height"`
	Modules []jsonModule `json:"modules"`
	CPU     jsonCPU      `json:"cpu"`
	Wires   []jsonWire   `json:"wires"`
}

type jsonBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type jsonPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type jsonModule struct {
	Name   string    `json:"name"`
	Chip   string    `json:"chip,omitempty"`
	Facing string    `json:"facing"`
	Box    jsonBox   `json:"box"`
	Pins   []jsonPin `json:"pins"`
}

type jsonPin struct {
	Name string    `json:"name"`
	Kind string    `json:"kind"`
	Box  jsonBox   `json:"box"`
	Tip  jsonPoint `json:"tip"`
}

type jsonCPU struct {
	Box   jsonBox    `json:"box"`
	Ports []jsonPort `json:"ports"`
}

type jsonPort struct {
	Index  int          `json:"index"`
	Facing string       `json:"facing"`
	Box    jsonBox      `json:"box"`
	Pins   []jsonCPUPin `json:"pins"`
}

type jsonCPUPin struct {
	Package int       `json:"package"`
	PortPin int       `json:"port_pin"`
	Signal  string    `json:"signal,omitempty"`
	Box     jsonBox   `json:"box"`
	Tip     jsonPoint `json:"tip"`
}

type jsonWire struct {
	Package  int         `json:"package"`
	Port     int         `json:"port"`
	PortPin  int         `json:"port_pin"`
	Index    int         `json:"index"`
	Module   string      `json:"module"`
	Pin      string      `json:"pin"`
	Explicit bool        `json:"explicit,omitempty"`
	Path     string      `json:"path"`
	Points   []jsonPoint `json:"points"`
}

// RenderJSON exports the scene geometry as a pretty-printed JSON document:
// module and pin boxes with tip points, CPU ports and pins, and every wire
// with its path data and vertices.
//
// RenderJSON returns an error only if JSON marshaling fails. It does not
// modify the scene.
func RenderJSON(s *layout.Scene, wires []*route.Wire) ([]byte, error) {
	out := jsonOutput{
		Width:   s.Canvas.Width,
		Height:  s.Canvas.Height,
		Modules: make([]jsonModule, 0, len(s.Modules)),
		CPU: jsonCPU{
			Box:   toJSONBox(s.CPU.Box),
			Ports: make([]jsonPort, 0, len(s.CPU.Ports)),
		},
		Wires: make([]jsonWire, 0, len(wires)),
	}
	if s.Board != nil {
		out.Name = s.Board.Name
	}

	for _, m := range s.Modules {
		jm := jsonModule{
			Name:   m.Name,
			Chip:   m.Chip,
			Facing: m.Facing.String(),
			Box:    toJSONBox(m.Box),
			Pins:   make([]jsonPin, 0, len(m.Pins)),
		}
		for _, p := range m.Pins {
			jm.Pins = append(jm.Pins, jsonPin{
				Name: p.Ref.Pin,
				Kind: p.Kind.String(),
				Box:  toJSONBox(p.Box),
				Tip:  toJSONPoint(p.Tip),
			})
		}
		out.Modules = append(out.Modules, jm)
	}

	for _, port := range s.CPU.Ports {
		jp := jsonPort{
			Index:  port.Index,
			Facing: port.Facing.String(),
			Box:    toJSONBox(port.Box),
			Pins:   make([]jsonCPUPin, 0, len(port.Pins)),
		}
		for _, p := range port.Pins {
			jp.Pins = append(jp.Pins, jsonCPUPin{
				Package: p.Package,
				PortPin: p.PortPin,
				Signal:  p.Target.Signal,
				Box:     toJSONBox(p.Box),
				Tip:     toJSONPoint(p.Tip),
			})
		}
		out.CPU.Ports = append(out.CPU.Ports, jp)
	}

	for _, w := range wires {
		pts := w.Path().Points()
		jw := jsonWire{
			Package:  w.Source.Package,
			Port:     w.Source.Port,
			PortPin:  w.Source.PortPin,
			Index:    w.Index,
			Module:   w.Dest.Ref.Module,
			Pin:      w.Dest.Ref.Pin,
			Explicit: w.Explicit(),
			Path:     w.D(),
			Points:   make([]jsonPoint, len(pts)),
		}
		for i, p := range pts {
			jw.Points[i] = toJSONPoint(p)
		}
		out.Wires = append(out.Wires, jw)
	}

	return json.MarshalIndent(out, "", "  ")
}

func toJSONBox(b layout.Box) jsonBox {
	return jsonBox{X: b.Left, Y: b.Top, Width: b.Width, Height: b.Height}
}

func toJSONPoint(p layout.Point) jsonPoint {
	return jsonPoint(p)
}
