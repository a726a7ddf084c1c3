package layout

import (
	"github.com/matzehuels/pinmap/pkg/board"
	"github.com/matzehuels/pinmap/pkg/errors"
)

// Option configures Build.
type Option func(*config)

type config struct {
	metrics *Metrics
	canvas  board.Canvas
}

// WithMetrics replaces the board's metrics.
func WithMetrics(m Metrics) Option {
	return func(c *config) { c.metrics = &m }
}

// WithCanvas overrides the board's canvas size.
func WithCanvas(width, height float64) Option {
	return func(c *config) { c.canvas = board.Canvas{Width: width, Height: height} }
}

// MetricsFor returns the default metrics overlaid with the board's
// overrides and its CPU width.
func MetricsFor(b *board.Board) Metrics {
	m := DefaultMetrics().With(b.Metrics)
	if b.CPU.Width != 0 {
		m.CPUWidth = b.CPU.Width
	}
	return m
}

// Build lays out a validated board. It fails with ErrCodeInvalidBoard when
// a module has no placement or the CPU columns do not cover the pin map.
func Build(b *board.Board, opts ...Option) (*Scene, error) {
	if b == nil || b.Catalog == nil {
		return nil, errors.New(errors.ErrCodeInvalidBoard, "board has no catalog")
	}
	cfg := config{canvas: b.Canvas}
	for _, opt := range opts {
		opt(&cfg)
	}
	m := MetricsFor(b)
	if cfg.metrics != nil {
		m = *cfg.metrics
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if cfg.canvas.Width == 0 {
		cfg.canvas.Width = DefaultCanvasWidth
	}
	if cfg.canvas.Height == 0 {
		cfg.canvas.Height = DefaultCanvasHeight
	}

	s := &Scene{
		Board:   b,
		Metrics: m,
		Canvas:  cfg.canvas,
		pins:    make(map[board.PinRef]PinGeom),
		cpuPins: make(map[int]CPUPinGeom),
	}
	if err := s.placeModules(); err != nil {
		return nil, err
	}
	if err := s.placeCPU(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scene) placeModules() error {
	m := s.Metrics
	for _, mod := range s.Board.Catalog.Modules() {
		pl, ok := s.Board.Placements[mod.Name]
		if !ok {
			return errors.New(errors.ErrCodeInvalidBoard, "module %s has no placement", mod.Name)
		}

		g := ModuleGeom{
			Name: mod.Name,
			Chip: mod.Chip,
			Box: Box{
				Left:   pl.Left,
				Top:    pl.Top,
				Width:  m.ModuleWidth,
				Height: m.ModuleHeight(mod.PinCount(), mod.HasChip()),
			},
			Facing: pl.Facing,
			Pins:   make([]PinGeom, 0, mod.PinCount()),
		}

		left := pl.Left
		if pl.Facing == board.FacingRight {
			left += m.PinInset - m.LineWeight/2
		}
		for i, pin := range mod.Pins() {
			box := Box{
				Left:   left,
				Top:    pl.Top + 3*m.Padding + m.Spacing*float64(i+1),
				Width:  m.PinWidth(),
				Height: m.UnitHeight,
			}
			pg := PinGeom{
				Ref:    mod.Ref(pin.Name),
				Kind:   pin.Kind,
				Box:    box,
				Facing: pl.Facing,
				Tip:    m.PinTip(pin.Kind, box, pl.Facing),
			}
			g.Pins = append(g.Pins, pg)
			s.pins[pg.Ref] = pg
		}
		s.Modules = append(s.Modules, g)
	}
	return nil
}

func (s *Scene) placeCPU() error {
	m := s.Metrics
	cpu := s.Board.CPU

	seen := make(map[int]bool)
	for _, idx := range append(append([]int(nil), cpu.LeftPorts...), cpu.RightPorts...) {
		if seen[idx] {
			return errors.New(errors.ErrCodeInvalidBoard, "port %d assigned to more than one column", idx)
		}
		seen[idx] = true
	}
	for _, p := range s.Board.Ports {
		if !seen[p.Index] {
			return errors.New(errors.ErrCodeInvalidBoard, "port %d is not assigned to a CPU column", p.Index)
		}
	}

	leftX := cpu.Left + m.Padding
	rightX := cpu.Left + m.CPUWidth - (m.CPUPortWidth + m.Padding)
	leftH := s.placeColumn(cpu.LeftPorts, leftX, board.FacingLeft)
	rightH := s.placeColumn(cpu.RightPorts, rightX, board.FacingRight)

	s.CPU.Box = Box{
		Left:   cpu.Left,
		Top:    cpu.Top,
		Width:  m.CPUWidth,
		Height: max(leftH, rightH, 0),
	}
	return nil
}

// placeColumn stacks ports top to bottom and returns the column height.
func (s *Scene) placeColumn(ports []int, x float64, facing board.Facing) float64 {
	m := s.Metrics
	top := s.Board.CPU.Top
	cursor := top + m.Padding
	for _, idx := range ports {
		var entries []board.PortEntry
		if p, ok := s.Board.Ports.Port(idx); ok {
			entries = p.Entries
		}
		pg := PortGeom{
			Index:  idx,
			Box:    Box{Left: x, Top: cursor, Width: m.CPUPortWidth, Height: m.PortHeight(len(entries))},
			Facing: facing,
			Pins:   make([]CPUPinGeom, 0, len(entries)),
		}

		pinLeft := x
		if facing == board.FacingRight {
			pinLeft = x + m.CPUPortWidth - m.CPUPinWidth
		}
		pinTop := cursor + m.UnitHeight + m.Padding + m.LineWeight
		for _, e := range entries {
			box := Box{Left: pinLeft, Top: pinTop, Width: m.CPUPinWidth, Height: m.UnitHeight}
			cp := CPUPinGeom{
				Package: e.Package,
				Port:    idx,
				PortPin: e.PortPin,
				Target:  e.Target,
				Box:     box,
				Facing:  facing,
				Tip:     m.CPUPinTip(box, facing),
			}
			pg.Pins = append(pg.Pins, cp)
			s.cpuPins[e.Package] = cp
			pinTop += m.Spacing
		}

		s.CPU.Ports = append(s.CPU.Ports, pg)
		cursor += pg.Box.Height + m.UnitHeight
	}
	return cursor + m.Padding - (m.UnitHeight + top)
}
