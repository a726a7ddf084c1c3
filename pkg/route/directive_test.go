package route

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/pinmap/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want []Directive
	}{
		{"", []Directive{}},
		{"H 325", []Directive{AbsH(325)}},
		{"H100", []Directive{AbsH(100)}},
		{"H 848 V 116 H 1152", []Directive{AbsH(848), AbsV(116), AbsH(1152)}},
		{"H 960, v 16, H 1360", []Directive{AbsH(960), RelV(16), AbsH(1360)}},
		{"H 944 v -7 H 1376", []Directive{AbsH(944), RelV(-7), AbsH(1376)}},
		{"  v 23.5 ", []Directive{RelV(23.5)}},
		{"V+4", []Directive{AbsV(4)}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		in   string
		code errors.Code
	}{
		{"X 100", errors.ErrCodeUnknownRouteDirective},
		{"H 100 h 5", errors.ErrCodeUnknownRouteDirective},
		{"HV 10", errors.ErrCodeUnknownRouteDirective},
		{"H", errors.ErrCodeInvalidBoard},
		{"100", errors.ErrCodeInvalidBoard},
		{"H 1 ; V 2", errors.ErrCodeInvalidBoard},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := Parse(tt.in)
			if !errors.Is(err, tt.code) {
				t.Errorf("Parse(%q) error = %v, want %s", tt.in, err, tt.code)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	dirs := []Directive{AbsH(960), RelV(-16), AbsV(300.5), AbsH(1360)}
	s := Format(dirs)
	if s != "H 960 v -16 V 300.5 H 1360" {
		t.Errorf("Format() = %q", s)
	}
	back, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(Format()) error: %v", err)
	}
	if diff := cmp.Diff(dirs, back); diff != "" {
		t.Errorf("Parse(Format()) mismatch (-want +got):\n%s", diff)
	}
}
