package board

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/pinmap/pkg/errors"
)

func TestNewModule(t *testing.T) {
	m, err := NewModule("OLED", "",
		LogicalPin{Name: "Clock", Kind: KindInput},
		LogicalPin{Name: "COPI", Kind: KindInput},
		LogicalPin{Name: "CS", Kind: KindIndirectInput},
	)
	if err != nil {
		t.Fatalf("NewModule() error: %v", err)
	}

	var names []string
	for _, p := range m.Pins() {
		names = append(names, p.Name)
	}
	if diff := cmp.Diff([]string{"Clock", "COPI", "CS"}, names); diff != "" {
		t.Errorf("Pins() order mismatch (-want +got):\n%s", diff)
	}

	p, ok := m.Pin("CS")
	if !ok || p.Kind != KindIndirectInput {
		t.Errorf("Pin(CS) = %v, %v", p, ok)
	}
	if _, ok := m.Pin("MISO"); ok {
		t.Error("Pin(MISO) should not exist")
	}
	if m.HasChip() {
		t.Error("HasChip() = true, want false")
	}
	if m.Ref("CS") != Ref("OLED", "CS") {
		t.Errorf("Ref(CS) = %v", m.Ref("CS"))
	}
}

func TestNewModule_Errors(t *testing.T) {
	tests := []struct {
		name   string
		module string
		pins   []LogicalPin
		code   errors.Code
	}{
		{"empty module name", "", nil, errors.ErrCodeInvalidBoard},
		{"empty pin name", "M", []LogicalPin{{Name: "", Kind: KindInput}}, errors.ErrCodeInvalidBoard},
		{"duplicate pin", "M", []LogicalPin{{Name: "A", Kind: KindOutput}, {Name: "A", Kind: KindInput}}, errors.ErrCodeInvalidBoard},
		{"invalid kind", "M", []LogicalPin{{Name: "A", Kind: PinKind(9)}}, errors.ErrCodeUnknownPinKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewModule(tt.module, "", tt.pins...)
			if !errors.Is(err, tt.code) {
				t.Errorf("NewModule() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestCatalog(t *testing.T) {
	a, _ := NewModule("A", "", LogicalPin{Name: "x", Kind: KindOutput})
	b, _ := NewModule("B", "CHIP", LogicalPin{Name: "y", Kind: KindBus}, LogicalPin{Name: "z", Kind: KindInput})

	c, err := NewCatalog(a, b)
	if err != nil {
		t.Fatalf("NewCatalog() error: %v", err)
	}
	if got := c.PinCount(); got != 3 {
		t.Errorf("PinCount() = %d, want 3", got)
	}
	if got, ok := c.Resolve(Ref("B", "y")); !ok || got.Kind != KindBus {
		t.Errorf("Resolve(B.y) = %v, %v", got, ok)
	}
	if _, ok := c.Resolve(Ref("B", "x")); ok {
		t.Error("Resolve(B.x) should fail")
	}
	if _, ok := c.Resolve(Ref("C", "x")); ok {
		t.Error("Resolve(C.x) should fail")
	}

	if _, err := NewCatalog(a, a); !errors.Is(err, errors.ErrCodeInvalidBoard) {
		t.Errorf("NewCatalog(dup) error = %v", err)
	}
}
