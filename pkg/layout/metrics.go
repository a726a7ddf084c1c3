package layout

import (
	"github.com/matzehuels/pinmap/pkg/board"
	"github.com/matzehuels/pinmap/pkg/errors"
)

// Default layout constants.
const (
	DefaultUnitHeight        = 14.0
	DefaultPadding           = 3.0
	DefaultLineWeight        = 2.0
	DefaultModuleWidth       = 120.0
	DefaultPinInset          = 15.0
	DefaultCPUPinWidth       = 52.0
	DefaultCPUPortWidth      = 80.0
	DefaultCPUPortLabelWidth = 50.0
	DefaultCPUWidth          = 400.0

	DefaultCanvasWidth  = 2000.0
	DefaultCanvasHeight = 1200.0
)

// Metrics holds the constants that drive layout.
type Metrics struct {
	UnitHeight        float64 // H: height of one pin row
	Padding           float64
	LineWeight        float64 // L: stroke width
	Spacing           float64 // vertical pitch between pin rows
	ModuleWidth       float64
	PinInset          float64 // module width minus pin width
	CPUPinWidth       float64
	CPUPortWidth      float64
	CPUPortLabelWidth float64
	CPUWidth          float64
}

// DefaultMetrics returns the reference constants.
func DefaultMetrics() Metrics {
	return Metrics{
		UnitHeight:        DefaultUnitHeight,
		Padding:           DefaultPadding,
		LineWeight:        DefaultLineWeight,
		Spacing:           DefaultUnitHeight + DefaultLineWeight,
		ModuleWidth:       DefaultModuleWidth,
		PinInset:          DefaultPinInset,
		CPUPinWidth:       DefaultCPUPinWidth,
		CPUPortWidth:      DefaultCPUPortWidth,
		CPUPortLabelWidth: DefaultCPUPortLabelWidth,
		CPUWidth:          DefaultCPUWidth,
	}
}

// With returns m with every non-zero field of o applied. Spacing follows
// UnitHeight + LineWeight unless o sets it explicitly.
func (m Metrics) With(o board.Metrics) Metrics {
	set := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	set(&m.UnitHeight, o.UnitHeight)
	set(&m.Padding, o.Padding)
	set(&m.LineWeight, o.LineWeight)
	set(&m.ModuleWidth, o.ModuleWidth)
	set(&m.PinInset, o.PinInset)
	set(&m.CPUPinWidth, o.CPUPinWidth)
	set(&m.CPUPortWidth, o.CPUPortWidth)
	set(&m.CPUPortLabelWidth, o.CPUPortLabelWidth)
	if o.Spacing != 0 {
		m.Spacing = o.Spacing
	} else if o.UnitHeight != 0 || o.LineWeight != 0 {
		m.Spacing = m.UnitHeight + m.LineWeight
	}
	return m
}

// Validate checks that the metrics describe a drawable layout.
func (m Metrics) Validate() error {
	type metric struct {
		name string
		v    float64
	}
	for _, f := range []metric{
		{"unit_height", m.UnitHeight},
		{"spacing", m.Spacing},
		{"module_width", m.ModuleWidth},
		{"cpu_pin_width", m.CPUPinWidth},
		{"cpu_port_width", m.CPUPortWidth},
		{"cpu_width", m.CPUWidth},
	} {
		if f.v <= 0 {
			return errors.New(errors.ErrCodeInvalidBoard, "metric %s must be positive, got %v", f.name, f.v)
		}
	}
	for _, f := range []metric{
		{"padding", m.Padding},
		{"line_weight", m.LineWeight},
		{"pin_inset", m.PinInset},
	} {
		if f.v < 0 {
			return errors.New(errors.ErrCodeInvalidBoard, "metric %s must not be negative, got %v", f.name, f.v)
		}
	}
	if m.PinWidth() <= 0 {
		return errors.New(errors.ErrCodeInvalidBoard, "pin_inset %v leaves no room in module_width %v", m.PinInset, m.ModuleWidth)
	}
	if m.CPUPinWidth > m.CPUPortWidth {
		return errors.New(errors.ErrCodeInvalidBoard, "cpu_pin_width %v exceeds cpu_port_width %v", m.CPUPinWidth, m.CPUPortWidth)
	}
	return nil
}

// HalfHeight returns H/2.
func (m Metrics) HalfHeight() float64 { return m.UnitHeight / 2 }

// PinWidth returns the width of a logical pin inside a module.
func (m Metrics) PinWidth() float64 { return m.ModuleWidth - m.PinInset }

// ModuleHeight returns the height of a module with n pins.
func (m Metrics) ModuleHeight(n int, chip bool) float64 {
	h := m.UnitHeight + 2*(m.Padding+m.LineWeight) + float64(n)*m.Spacing
	if chip {
		return h + m.UnitHeight + m.LineWeight + m.Padding
	}
	return h + m.UnitHeight
}

// PortHeight returns the height of a CPU port with n pins.
func (m Metrics) PortHeight(n int) float64 {
	return m.UnitHeight + m.Padding + float64(n)*m.Spacing + m.UnitHeight
}

// PinTip returns where a wire attaches to a logical pin occupying box.
func (m Metrics) PinTip(kind board.PinKind, box Box, facing board.Facing) Point {
	y := box.Top + m.HalfHeight()
	if kind.IsInput() {
		if facing == board.FacingLeft {
			return Point{X: box.Left - m.LineWeight/2, Y: y}
		}
		return Point{X: box.Right() + m.LineWeight, Y: y}
	}
	if facing == board.FacingLeft {
		return Point{X: box.Left - m.HalfHeight(), Y: y}
	}
	return Point{X: box.Right() + m.HalfHeight(), Y: y}
}

// CPUPinTip returns where a wire attaches to a CPU pin occupying box.
func (m Metrics) CPUPinTip(box Box, facing board.Facing) Point {
	y := box.Top + m.HalfHeight()
	if facing == board.FacingLeft {
		return Point{X: box.Left, Y: y}
	}
	return Point{X: box.Right(), Y: y}
}
