package layout

import (
	"testing"

	"github.com/matzehuels/pinmap/pkg/board"
	"github.com/matzehuels/pinmap/pkg/errors"
)

func TestModuleHeight(t *testing.T) {
	m := DefaultMetrics()
	tests := []struct {
		name string
		pins int
		chip bool
		want float64
	}{
		{"two pins", 2, false, 70},
		{"two pins with chip", 2, true, 75},
		{"no pins", 0, false, 38},
		{"six pins", 6, false, 134},
		{"sdram", 9, true, 187},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.ModuleHeight(tt.pins, tt.chip); got != tt.want {
				t.Errorf("ModuleHeight(%d, %v) = %v, want %v", tt.pins, tt.chip, got, tt.want)
			}
		})
	}
}

func TestPortHeight(t *testing.T) {
	m := DefaultMetrics()
	for n, want := range map[int]float64{0: 31, 4: 95, 16: 287} {
		if got := m.PortHeight(n); got != want {
			t.Errorf("PortHeight(%d) = %v, want %v", n, got, want)
		}
	}
}

func TestPinTip(t *testing.T) {
	m := DefaultMetrics()
	box := Box{Left: 100, Top: 50, Width: 105, Height: 14}

	tests := []struct {
		name   string
		kind   board.PinKind
		facing board.Facing
		want   Point
	}{
		{"output left", board.KindOutput, board.FacingLeft, Point{93, 57}},
		{"output right", board.KindOutput, board.FacingRight, Point{212, 57}},
		{"bus left", board.KindBus, board.FacingLeft, Point{93, 57}},
		{"bus right", board.KindBus, board.FacingRight, Point{212, 57}},
		{"indirect output right", board.KindIndirectOutput, board.FacingRight, Point{212, 57}},
		{"input left", board.KindInput, board.FacingLeft, Point{99, 57}},
		{"input right", board.KindInput, board.FacingRight, Point{207, 57}},
		{"indirect input left", board.KindIndirectInput, board.FacingLeft, Point{99, 57}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.PinTip(tt.kind, box, tt.facing); got != tt.want {
				t.Errorf("PinTip() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCPUPinTip(t *testing.T) {
	m := DefaultMetrics()
	box := Box{Left: 403, Top: 122, Width: 52, Height: 14}
	if got := m.CPUPinTip(box, board.FacingLeft); got != (Point{403, 129}) {
		t.Errorf("CPUPinTip(left) = %v", got)
	}
	if got := m.CPUPinTip(box, board.FacingRight); got != (Point{455, 129}) {
		t.Errorf("CPUPinTip(right) = %v", got)
	}
}

func TestMetricsWith(t *testing.T) {
	tests := []struct {
		name     string
		override board.Metrics
		check    func(Metrics) bool
	}{
		{
			name:     "no override",
			override: board.Metrics{},
			check:    func(m Metrics) bool { return m == DefaultMetrics() },
		},
		{
			name:     "unit height moves spacing",
			override: board.Metrics{UnitHeight: 20},
			check:    func(m Metrics) bool { return m.UnitHeight == 20 && m.Spacing == 22 },
		},
		{
			name:     "explicit spacing wins",
			override: board.Metrics{UnitHeight: 20, Spacing: 30},
			check:    func(m Metrics) bool { return m.Spacing == 30 },
		},
		{
			name:     "module width",
			override: board.Metrics{ModuleWidth: 150},
			check:    func(m Metrics) bool { return m.ModuleWidth == 150 && m.PinWidth() == 135 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultMetrics().With(tt.override)
			if !tt.check(got) {
				t.Errorf("With(%+v) = %+v", tt.override, got)
			}
		})
	}
}

func TestMetricsValidate(t *testing.T) {
	if err := DefaultMetrics().Validate(); err != nil {
		t.Fatalf("DefaultMetrics().Validate() error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Metrics)
	}{
		{"zero unit height", func(m *Metrics) { m.UnitHeight = 0 }},
		{"negative padding", func(m *Metrics) { m.Padding = -1 }},
		{"inset too wide", func(m *Metrics) { m.PinInset = m.ModuleWidth }},
		{"cpu pin wider than port", func(m *Metrics) { m.CPUPinWidth = 100 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := DefaultMetrics()
			tt.mutate(&m)
			if err := m.Validate(); !errors.Is(err, errors.ErrCodeInvalidBoard) {
				t.Errorf("Validate() error = %v, want %s", err, errors.ErrCodeInvalidBoard)
			}
		})
	}
}
