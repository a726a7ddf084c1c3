package render

import (
	"bytes"
	"testing"

	"github.com/matzehuels/pinmap/pkg/errors"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`

func TestToPNG_InvalidScale(t *testing.T) {
	if _, err := ToPNG([]byte(tinySVG), 0); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ToPNG(scale=0) error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestConvert_MissingTool(t *testing.T) {
	old := converter
	converter = "rsvg-convert-does-not-exist"
	defer func() { converter = old }()

	if Available() {
		t.Fatal("Available() = true for a missing tool")
	}
	if _, err := ToPDF([]byte(tinySVG)); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF() error = %v, want %s", err, errors.ErrCodeUnsupported)
	}
}

func TestConvert(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}

	pdf, err := ToPDF([]byte(tinySVG))
	if err != nil {
		t.Fatalf("ToPDF() error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("ToPDF() output is not a PDF")
	}

	png, err := ToPNG([]byte(tinySVG), 2)
	if err != nil {
		t.Fatalf("ToPNG() error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("ToPNG() output is not a PNG")
	}
}
