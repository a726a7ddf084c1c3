package sink

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/pinmap/pkg/board"
	"github.com/matzehuels/pinmap/pkg/layout"
	"github.com/matzehuels/pinmap/pkg/route"
)

func referenceScene(t *testing.T) (*layout.Scene, []*route.Wire) {
	t.Helper()
	b, err := board.Reference()
	if err != nil {
		t.Fatalf("Reference() error: %v", err)
	}
	s, err := layout.Build(b)
	if err != nil {
		t.Fatalf("layout.Build() error: %v", err)
	}
	wires, err := route.Build(s)
	if err != nil {
		t.Fatalf("route.Build() error: %v", err)
	}
	return s, wires
}

func TestPinShape(t *testing.T) {
	m := layout.DefaultMetrics()
	tests := []struct {
		name   string
		kind   board.PinKind
		facing board.Facing
		want   string
	}{
		{"output left", board.KindOutput, board.FacingLeft, "M 0,0 H 105 V 14 H 0 l -7,-7 Z"},
		{"output right", board.KindOutput, board.FacingRight, "M 0,0 H 105 l 7,7 l -7,7 H 0 Z"},
		{"indirect output left", board.KindIndirectOutput, board.FacingLeft, "M 0,0 H 105 V 14 H 0 l -7,-7 Z"},
		{"input left", board.KindInput, board.FacingLeft, "M -1,0 H 105 l 7,7 l -7,7 H -1"},
		{"input right", board.KindInput, board.FacingRight, "M 107,0 H 0 l -7,7 l 7,7 H 107"},
		{"indirect input right", board.KindIndirectInput, board.FacingRight, "M 107,0 H 0 l -7,7 l 7,7 H 107"},
		{"bus left", board.KindBus, board.FacingLeft, "M 105,0 H 0 A 5 5, 0, 0, 0, 0, 14 H 105 Z"},
		{"bus right", board.KindBus, board.FacingRight, "M 0,0 H 105 a 5 5, 0, 0, 1, 0, 14 H 0 Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PinShape(m, tt.kind, m.PinWidth(), tt.facing); got != tt.want {
				t.Errorf("PinShape() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFlagClass(t *testing.T) {
	tests := map[board.PinKind]string{
		board.KindBus:            "bus-flag",
		board.KindInput:          "input-flag",
		board.KindOutput:         "output-flag",
		board.KindIndirectInput:  "indirect-input-flag",
		board.KindIndirectOutput: "indirect-output-flag",
	}
	for kind, want := range tests {
		if got := FlagClass(kind); got != want {
			t.Errorf("FlagClass(%v) = %q, want %q", kind, got, want)
		}
	}
}

func TestRenderSVG_Reference(t *testing.T) {
	s, wires := referenceScene(t)
	svg := string(RenderSVG(s, wires))

	counts := []struct {
		needle string
		want   int
	}{
		{`class="module"`, 17},
		{`class="port-base"`, 8},
		{`class="cpu-pin"`, 95},
		{`class="cpu-pin highlight"`, 93},
		{`class="connection"`, 186},
		{`class="pin-connection-group"`, 93},
		{`class="cpu"`, 1},
		{`<title>MD_BOOT0</title>`, 1},
	}
	for _, c := range counts {
		if got := strings.Count(svg, c.needle); got != c.want {
			t.Errorf("count(%s) = %d, want %d", c.needle, got, c.want)
		}
	}

	for _, want := range []string{
		`width="2000" height="1200" viewBox="0 0 2000 1200"`,
		`<g id="modules">`,
		`<g id="wires">`,
		`<g id="highlight">`,
		`>Port 7</text>`,
		`>AS4C32M16SB</text>`,
		`>¼&#34; Output L</text>`,
		`d="M 403,238 H 171"`,
		`data-pin="Mod0 Encoder.A"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("RenderSVG() missing %q", want)
		}
	}
}

func TestRenderSVG_WellFormed(t *testing.T) {
	s, wires := referenceScene(t)
	dec := xml.NewDecoder(bytes.NewReader(RenderSVG(s, wires)))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("RenderSVG() is not well-formed XML: %v", err)
		}
	}
}

func TestRenderSVG_Deterministic(t *testing.T) {
	s, wires := referenceScene(t)
	a := RenderSVG(s, wires)
	b := RenderSVG(s, wires)
	if !bytes.Equal(a, b) {
		t.Error("RenderSVG() output differs between calls")
	}
}

func TestRenderSVG_Options(t *testing.T) {
	s, wires := referenceScene(t)

	t.Run("without highlight", func(t *testing.T) {
		svg := string(RenderSVG(s, wires, WithoutHighlight()))
		if strings.Contains(svg, "pin-connection-group") {
			t.Error("highlight layer should be omitted")
		}
		if got := strings.Count(svg, `class="connection"`); got != 93 {
			t.Errorf("count(connection) = %d, want 93", got)
		}
	})

	t.Run("stylesheet is escaped", func(t *testing.T) {
		svg := string(RenderSVG(s, wires, WithStylesheet(`g > path { stroke: red; }`)))
		if !strings.Contains(svg, `<style>g &gt; path { stroke: red; }</style>`) {
			t.Error("stylesheet not embedded verbatim")
		}
		if strings.Contains(svg, "#highlight .pin-connection-group {") {
			t.Error("default stylesheet should be replaced")
		}
	})

	t.Run("canvas", func(t *testing.T) {
		svg := string(RenderSVG(s, wires, WithCanvas(1600, 900.5)))
		if !strings.Contains(svg, `viewBox="0 0 1600 900.5"`) {
			t.Error("canvas override not applied")
		}
	})
}

func TestDefaultStylesheet(t *testing.T) {
	css := DefaultStylesheet()
	for _, class := range []string{
		".module", ".bus-flag", ".input-flag", ".output-flag", ".indirect-input-flag",
		".indirect-output-flag", ".cpu", ".port-base", ".port-label", ".cpu-package-pin",
		".connection", ".highlight", ".pin-connection-group",
	} {
		if !strings.Contains(css, class) {
			t.Errorf("DefaultStylesheet() missing %s", class)
		}
	}
}

func TestEscapeXML(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{`¼" Output`, "¼&#34; Output"},
		{"a<b & c>d", "a&lt;b &amp; c&gt;d"},
	}
	for _, tt := range tests {
		if got := EscapeXML(tt.in); got != tt.want {
			t.Errorf("EscapeXML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
