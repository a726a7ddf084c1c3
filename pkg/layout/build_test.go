package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/pinmap/pkg/board"
	"github.com/matzehuels/pinmap/pkg/errors"
)

func referenceScene(t *testing.T) *Scene {
	t.Helper()
	b, err := board.Reference()
	if err != nil {
		t.Fatalf("Reference() error: %v", err)
	}
	if err := board.Validate(b); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	s, err := Build(b)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return s
}

func TestBuild_Reference(t *testing.T) {
	s := referenceScene(t)

	if got := len(s.Modules); got != 17 {
		t.Errorf("len(Modules) = %d, want 17", got)
	}
	if got := len(s.CPU.Ports); got != 8 {
		t.Errorf("len(CPU.Ports) = %d, want 8", got)
	}
	if got := len(s.CPUPins()); got != 95 {
		t.Errorf("len(CPUPins()) = %d, want 95", got)
	}
	if s.Canvas != (board.Canvas{Width: 2000, Height: 1200}) {
		t.Errorf("Canvas = %+v", s.Canvas)
	}
	if diff := cmp.Diff(Box{Left: 400, Top: 100, Width: 400, Height: 956}, s.CPU.Box); diff != "" {
		t.Errorf("CPU box mismatch (-want +got):\n%s", diff)
	}

	var order []int
	for _, p := range s.CPU.Ports {
		order = append(order, p.Index)
	}
	if diff := cmp.Diff([]int{0, 2, 3, 5, 1, 4, 6, 7}, order); diff != "" {
		t.Errorf("port order mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_ReferenceEncoders(t *testing.T) {
	s := referenceScene(t)

	for _, name := range []string{"X Encoder", "Y Encoder", "Mod0 Encoder", "Mod1 Encoder", "Select Encoder", "Tempo Encoder"} {
		m, ok := s.Module(name)
		if !ok {
			t.Fatalf("Module(%q) missing", name)
		}
		if got := m.Box.Height + s.Metrics.LineWeight; got != 72 {
			t.Errorf("%s height + line weight = %v, want 72", name, got)
		}
	}

	pin, ok := s.Pin(board.Ref("X Encoder", "A"))
	if !ok {
		t.Fatal("Pin(X Encoder.A) missing")
	}
	want := PinGeom{
		Ref:    board.Ref("X Encoder", "A"),
		Kind:   board.KindOutput,
		Box:    Box{Left: 1008, Top: 154, Width: 105, Height: 14},
		Facing: board.FacingLeft,
		Tip:    Point{1001, 161},
	}
	if diff := cmp.Diff(want, pin); diff != "" {
		t.Errorf("X Encoder.A mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_ReferenceFacingRight(t *testing.T) {
	s := referenceScene(t)

	pin, _ := s.Pin(board.Ref("SDRAM", "Chip Select"))
	if diff := cmp.Diff(Box{Left: 64, Top: 231, Width: 105, Height: 14}, pin.Box); diff != "" {
		t.Errorf("SDRAM.Chip Select box mismatch (-want +got):\n%s", diff)
	}
	if pin.Tip != (Point{171, 238}) {
		t.Errorf("SDRAM.Chip Select tip = %v, want 171,238", pin.Tip)
	}

	bus, _ := s.Pin(board.Ref("SDRAM", "Address 0..14"))
	if bus.Tip.X != bus.Box.Right()+7 {
		t.Errorf("bus tip x = %v, want right edge + 7", bus.Tip.X)
	}
}

func TestBuild_ReferenceCPUPins(t *testing.T) {
	s := referenceScene(t)

	tests := []struct {
		pkg    int
		port   int
		facing board.Facing
		box    Box
		tip    Point
	}{
		{63, 0, board.FacingLeft, Box{Left: 403, Top: 122, Width: 52, Height: 14}, Point{403, 129}},
		{66, 0, board.FacingLeft, Box{Left: 403, Top: 170, Width: 52, Height: 14}, Point{403, 177}},
		{56, 2, board.FacingLeft, Box{Left: 403, Top: 231, Width: 52, Height: 14}, Point{403, 238}},
		{125, 1, board.FacingRight, Box{Left: 745, Top: 122, Width: 52, Height: 14}, Point{797, 129}},
		{85, 1, board.FacingRight, Box{Left: 745, Top: 362, Width: 52, Height: 14}, Point{797, 369}},
	}

	for _, tt := range tests {
		got, ok := s.CPUPin(tt.pkg)
		if !ok {
			t.Errorf("CPUPin(%d) missing", tt.pkg)
			continue
		}
		if got.Port != tt.port || got.Facing != tt.facing {
			t.Errorf("CPUPin(%d) port/facing = %d/%v", tt.pkg, got.Port, got.Facing)
		}
		if diff := cmp.Diff(tt.box, got.Box); diff != "" {
			t.Errorf("CPUPin(%d) box mismatch (-want +got):\n%s", tt.pkg, diff)
		}
		if got.Tip != tt.tip {
			t.Errorf("CPUPin(%d) tip = %v, want %v", tt.pkg, got.Tip, tt.tip)
		}
	}

	if _, ok := s.CPUPin(7); ok {
		t.Error("CPUPin(7) should not exist for an unrendered pin")
	}
}

func TestBuild_ReferenceFitsCanvas(t *testing.T) {
	s := referenceScene(t)
	b := s.Bounds()
	if b.Left < 0 || b.Top < 0 || b.Right() > s.Canvas.Width || b.Bottom() > s.Canvas.Height {
		t.Errorf("Bounds() = %+v exceeds canvas %+v", b, s.Canvas)
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *board.Board)
	}{
		{"missing placement", func(b *board.Board) { delete(b.Placements, "OLED") }},
		{"port in no column", func(b *board.Board) { b.CPU.RightPorts = b.CPU.RightPorts[:3] }},
		{"port in both columns", func(b *board.Board) { b.CPU.LeftPorts = append(b.CPU.LeftPorts, 1) }},
		{"bad metrics", func(b *board.Board) { b.Metrics.PinInset = 500 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := board.Reference()
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(b)
			if _, err := Build(b); !errors.Is(err, errors.ErrCodeInvalidBoard) {
				t.Errorf("Build() error = %v, want %s", err, errors.ErrCodeInvalidBoard)
			}
		})
	}

	if _, err := Build(nil); !errors.Is(err, errors.ErrCodeInvalidBoard) {
		t.Errorf("Build(nil) error = %v", err)
	}
}

func TestBuild_EmptyColumnPort(t *testing.T) {
	b, err := board.Reference()
	if err != nil {
		t.Fatal(err)
	}
	b.CPU.RightPorts = append(b.CPU.RightPorts, 9)

	s, err := Build(b)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	last := s.CPU.Ports[len(s.CPU.Ports)-1]
	if last.Index != 9 || len(last.Pins) != 0 || last.Box.Height != 31 {
		t.Errorf("empty port = %+v", last)
	}
}

func TestBuild_Options(t *testing.T) {
	b, err := board.Reference()
	if err != nil {
		t.Fatal(err)
	}
	m := DefaultMetrics()
	m.ModuleWidth = 200

	s, err := Build(b, WithMetrics(m), WithCanvas(3000, 1500))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if s.Canvas != (board.Canvas{Width: 3000, Height: 1500}) {
		t.Errorf("Canvas = %+v", s.Canvas)
	}
	mod, _ := s.Module("OLED")
	if mod.Box.Width != 200 {
		t.Errorf("OLED width = %v, want 200", mod.Box.Width)
	}
}
