package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m PinBrowser, keys ...string) PinBrowser {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(PinBrowser)
	}
	return m
}

func TestPinBrowser_Navigation(t *testing.T) {
	m := newPinBrowser(referenceBoard(t), referenceRows(t))

	m = press(t, m, "up")
	if m.Cursor != 0 {
		t.Errorf("up at top: Cursor = %d, want 0", m.Cursor)
	}

	m = press(t, m, "down", "j", "j")
	if m.Cursor != 3 {
		t.Errorf("Cursor = %d, want 3", m.Cursor)
	}
	if r, _ := m.Selected(); r.Package != 4 {
		t.Errorf("Selected().Package = %d, want 4", r.Package)
	}

	m = press(t, m, "end")
	if m.Cursor != 175 {
		t.Errorf("end: Cursor = %d, want 175", m.Cursor)
	}
	if m.Offset != 175-m.Height+1 {
		t.Errorf("end: Offset = %d, want %d", m.Offset, 175-m.Height+1)
	}

	m = press(t, m, "g")
	if m.Cursor != 0 || m.Offset != 0 {
		t.Errorf("home: Cursor/Offset = %d/%d, want 0/0", m.Cursor, m.Offset)
	}

	m = press(t, m, "pgdown")
	if m.Cursor != m.Height {
		t.Errorf("pgdown: Cursor = %d, want %d", m.Cursor, m.Height)
	}
}

func TestPinBrowser_Filter(t *testing.T) {
	m := newPinBrowser(referenceBoard(t), referenceRows(t))
	m = press(t, m, "down", "down")

	tests := []struct {
		status string
		rows   int
	}{
		{statusWired, 91},
		{statusSignal, 4},
		{statusUnrendered, 81},
		{"", 176},
	}
	for _, tt := range tests {
		m = press(t, m, "tab")
		if len(m.Rows) != tt.rows {
			t.Errorf("filter %q: %d rows, want %d", tt.status, len(m.Rows), tt.rows)
		}
		if m.Cursor != 0 {
			t.Errorf("filter %q: Cursor = %d, want reset to 0", tt.status, m.Cursor)
		}
	}
}

func TestPinBrowser_Quit(t *testing.T) {
	m := newPinBrowser(referenceBoard(t), referenceRows(t))
	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("q should return a quit command")
	}
}

func TestPinBrowser_WindowSize(t *testing.T) {
	m := newPinBrowser(referenceBoard(t), referenceRows(t))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	if got := next.(PinBrowser).Height; got != 5 {
		t.Errorf("Height = %d, want minimum 5", got)
	}
}

func TestPinBrowser_View(t *testing.T) {
	m := newPinBrowser(referenceBoard(t), referenceRows(t))
	m = press(t, m, "tab") // wired only; first wired pin is 1

	view := m.View()
	for _, want := range []string{"Deluge", "showing wired pins", "Pin 1", "Port 5, bit 3", "→ SDRAM.Data 0..15", "[1/91]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestPinBrowser_EmptyFilter(t *testing.T) {
	rows := filterRows(referenceRows(t), 0, "")
	m := newPinBrowser(referenceBoard(t), rows)
	m = press(t, m, "tab") // port 0 has no wired pins

	if len(m.Rows) != 0 {
		t.Fatalf("Rows = %d, want 0", len(m.Rows))
	}
	m = press(t, m, "down")
	if _, ok := m.Selected(); ok {
		t.Error("Selected() on empty rows should report false")
	}
	if !strings.Contains(m.View(), "[0/0]") {
		t.Error("View() should show an empty counter")
	}
}
