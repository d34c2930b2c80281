package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/isograph/pkg/graph"
	"github.com/matzehuels/isograph/pkg/graphml"
)

func sampleGraph() ([]graph.Node, []graph.Edge) {
	nodes := []graph.Node{
		{ID: "A", Data: graph.NodeData{Sequence: "MKT", PeptideCount: "2"}, Position: graph.Position{X: 0}},
		{ID: "B", Data: graph.NodeData{Sequence: "LV"}, Position: graph.Position{X: graph.UnpositionedX}},
	}
	edges := []graph.Edge{
		{Source: "A", Target: "B", Data: graph.EdgeData{IsoformString: "iso1"}},
		{Source: "A", Target: "B", Data: graph.EdgeData{IsoformString: "iso2", Generic: "true"}},
		{Source: "B", Target: "A"},
	}
	return nodes, edges
}

func TestToDOT(t *testing.T) {
	nodes, edges := sampleGraph()
	dot := ToDOT(nodes, edges, Options{})

	for _, want := range []string{
		"rankdir=LR;",
		`"A" [label="A\nMKT"];`,
		`"B" [label="B\nLV", style="rounded,filled,dashed", fillcolor=lightgrey];`,
		`"A" -> "B" [label="iso1"];`,
		`"A" -> "B" [label="iso2", style=dashed];`,
		`"B" -> "A";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if n := strings.Count(dot, `"A" -> "B"`); n != 2 {
		t.Errorf("parallel edges = %d, want 2", n)
	}
}

func TestToDOT_Detailed(t *testing.T) {
	nodes, edges := sampleGraph()
	dot := ToDOT(nodes, edges, Options{
		Detailed: true,
		Features: map[string]string{"A": "VAR_SEQ"},
	})
	if !strings.Contains(dot, `label="A\nMKT\nVAR_SEQ\npeptides: 2"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestToDOT_TruncatesSequence(t *testing.T) {
	long := strings.Repeat("M", 40)
	dot := ToDOT([]graph.Node{{ID: "n", Data: graph.NodeData{Sequence: long}}}, nil, Options{})
	if strings.Contains(dot, long) {
		t.Error("long sequence not truncated")
	}
	if !strings.Contains(dot, strings.Repeat("M", maxSequenceLabel-3)+"...") {
		t.Errorf("truncated label missing:\n%s", dot)
	}
}

func TestToDOT_Empty(t *testing.T) {
	dot := ToDOT(nil, nil, Options{})
	if !strings.HasPrefix(dot, "digraph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("unexpected DOT:\n%s", dot)
	}
}

func TestFeaturesOf(t *testing.T) {
	doc := &graphml.Document{Nodes: []graphml.Node{
		{ID: "a", Attrs: graphml.NodeAttrs{Feature: graphml.StringValue("VARIANT")}},
		{ID: "b"},
	}}
	got := FeaturesOf(doc)
	if len(got) != 1 || got["a"] != "VARIANT" {
		t.Errorf("FeaturesOf = %v", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.50 200.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.50 200.00" width="100" height="200"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox:\n got %s\nwant %s", got, want)
	}
	if plain := []byte("<svg><g/></svg>"); string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should be unchanged")
	}
}
