package nodelink

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/pinmap/pkg/board"
)

func smallBoard(t *testing.T) *board.Board {
	t.Helper()
	enc, err := board.NewModule("Encoder", "",
		board.LogicalPin{Name: "A", Kind: board.KindOutput},
		board.LogicalPin{Name: "B", Kind: board.KindOutput},
	)
	if err != nil {
		t.Fatal(err)
	}
	mem, err := board.NewModule("Memory", "X1",
		board.LogicalPin{Name: "Data", Kind: board.KindBus},
		board.LogicalPin{Name: "CS", Kind: board.KindInput},
	)
	if err != nil {
		t.Fatal(err)
	}
	idle, err := board.NewModule("Idle", "",
		board.LogicalPin{Name: "Mon", Kind: board.KindIndirectInput},
	)
	if err != nil {
		t.Fatal(err)
	}
	cat, err := board.NewCatalog(enc, mem, idle)
	if err != nil {
		t.Fatal(err)
	}
	return &board.Board{
		Name:        "test",
		PackagePins: 5,
		Catalog:     cat,
		Ports: board.PinMap{
			{Index: 0, Entries: []board.PortEntry{
				{PortPin: 0, Package: 1, Target: board.Single(board.Ref("Encoder", "A"))},
				{PortPin: 1, Package: 2, Target: board.Unrendered("BOOT")},
				{PortPin: 2, Package: 3, Target: board.Multi(board.Ref("Encoder", "B"), board.Ref("Memory", "CS"))},
			}},
			{Index: 1, Entries: []board.PortEntry{
				{PortPin: 0, Package: 4, Target: board.Single(board.Ref("Memory", "Data"))},
				{PortPin: 1, Package: 5, Target: board.Multi(board.Ref("Memory", "Data"), board.Ref("Memory", "CS"))},
			}},
		},
	}
}

func TestEdges(t *testing.T) {
	got := Edges(smallBoard(t))
	want := []Edge{
		{Port: 0, Module: "Encoder", Packages: []int{1, 3}},
		{Port: 0, Module: "Memory", Packages: []int{3}},
		{Port: 1, Module: "Memory", Packages: []int{4, 5}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Edges() mismatch (-want +got):\n%s", diff)
	}
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(smallBoard(t), Options{})

	for _, want := range []string{
		"digraph G",
		"subgraph cluster_cpu",
		`label="test CPU"`,
		`"port:0" [label="Port 0"`,
		`"module:Encoder" [label="Encoder"]`,
		`"port:0" -> "module:Encoder" [label="2"]`,
		`"port:1" -> "module:Memory" [label="2"]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %s", want)
		}
	}
	if strings.Contains(dot, `"port:1" -> "module:Encoder"`) {
		t.Error("ToDOT() output has an edge port 1 never wires")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(smallBoard(t), Options{Detailed: true})

	for _, want := range []string{
		`Memory\nX1\npins: 2`,
		`Port 0\nwired: 2\nunrendered: 1`,
		`"port:0" -> "module:Encoder" [label="1,3"]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() detailed output missing %s", want)
		}
	}
}

func TestToDOT_Unreached(t *testing.T) {
	dot := ToDOT(smallBoard(t), Options{})

	if !strings.Contains(dot, `"module:Idle" [label="Idle", style="rounded,filled,dashed"`) {
		t.Error("ToDOT() should draw unreached modules dashed")
	}
	if strings.Contains(dot, `"module:Memory" [label="Memory", style=`) {
		t.Error("ToDOT() should not dash reached modules")
	}
}

func TestToDOT_Reference(t *testing.T) {
	b, err := board.Reference()
	if err != nil {
		t.Fatal(err)
	}
	dot := ToDOT(b, Options{})

	if got := strings.Count(dot, "[label=\"Port "); got != 8 {
		t.Errorf("port nodes = %d, want 8", got)
	}
	if strings.Contains(dot, "dashed") {
		t.Error("every reference module should be reachable")
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(ToDOT(smallBoard(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Error("RenderSVG() output missing normalized svg header")
	}
	if !strings.Contains(string(svg), "Encoder") {
		t.Error("RenderSVG() output missing module label")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	bare := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(bare); string(got) != string(bare) {
		t.Errorf("normalizeViewBox() without viewBox = %s, want unchanged", got)
	}
}
