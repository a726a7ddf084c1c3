package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/pinmap/pkg/board"
)

func TestExportBoard_Reference(t *testing.T) {
	data, err := exportBoard("")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, board.ReferenceTOML()) {
		t.Error("reference export differs from the embedded board")
	}
}

func TestExportBoard_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.toml")
	if err := os.WriteFile(path, board.ReferenceTOML(), 0644); err != nil {
		t.Fatal(err)
	}
	data, err := exportBoard(path)
	if err != nil {
		t.Fatal(err)
	}
	b, err := board.Decode(data)
	if err != nil {
		t.Fatalf("decode export: %v", err)
	}
	ref, err := board.Reference()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := b.Stats(), ref.Stats(); got != want {
		t.Errorf("stats = %+v, want %+v", got, want)
	}
}

func TestExportBoard_Missing(t *testing.T) {
	if _, err := exportBoard(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing board")
	}
}
