package io

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/matzehuels/isograph/pkg/errors"
	"github.com/matzehuels/isograph/pkg/graph"
)

func sampleGraph() ([]graph.Node, []graph.Edge) {
	nodes := []graph.Node{
		{ID: "A", Type: graph.NodeTypeSequence, Data: graph.NodeData{Sequence: "MKT"}, Position: graph.Position{X: 0}},
		{ID: "B", Type: graph.NodeTypeSequence, Data: graph.NodeData{Sequence: "LV"}, Position: graph.Position{X: -100}},
	}
	edges := []graph.Edge{
		{ID: graph.EdgeID("A", "B"), Source: "A", Target: "B", Type: graph.EdgeTypeArrow, Data: graph.EdgeData{IsoformString: "iso1"}},
	}
	return nodes, edges
}

func TestWriteNodes_Indented(t *testing.T) {
	nodes, _ := sampleGraph()
	var buf bytes.Buffer
	if err := WriteNodes(&buf, nodes[:1]); err != nil {
		t.Fatalf("WriteNodes: %v", err)
	}

	want := `[
  {
    "id": "A",
    "type": "sequence",
    "data": {
      "sequence": "MKT",
      "peptidesString": "",
      "intensitiesString": "",
      "peptideCount": ""
    },
    "position": {
      "x": 0,
      "y": 0
    }
  }
]
`
	if buf.String() != want {
		t.Errorf("WriteNodes output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteEmpty(t *testing.T) {
	var nb, eb bytes.Buffer
	if err := WriteNodes(&nb, nil); err != nil {
		t.Fatal(err)
	}
	if err := WriteEdges(&eb, []graph.Edge{}); err != nil {
		t.Fatal(err)
	}
	if nb.String() != "[]\n" || eb.String() != "[]\n" {
		t.Errorf("empty output = %q, %q; want []", nb.String(), eb.String())
	}
}

func TestWriteEdges_KeepsMarkup(t *testing.T) {
	edges := []graph.Edge{
		{ID: graph.EdgeID("A", "B"), Source: "A", Target: "B", Type: graph.EdgeTypeArrow, Data: graph.EdgeData{IsoformString: "iso<1>&2"}},
	}
	var buf bytes.Buffer
	if err := WriteEdges(&buf, edges); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"isoformString": "iso<1>&2"`)) {
		t.Errorf("isoform text escaped:\n%s", buf.String())
	}
}

func TestExportArtifacts_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "generated")
	nodes, edges := sampleGraph()

	if err := ExportArtifacts(dir, nodes, edges); err != nil {
		t.Fatalf("ExportArtifacts: %v", err)
	}

	gotNodes, gotEdges, err := ImportArtifacts(dir)
	if err != nil {
		t.Fatalf("ImportArtifacts: %v", err)
	}
	if len(gotNodes) != 2 || gotNodes[1].Position.X != -100 {
		t.Errorf("nodes = %+v", gotNodes)
	}
	if len(gotEdges) != 1 || gotEdges[0].ID != "eA-B" || gotEdges[0].Data.IsoformString != "iso1" {
		t.Errorf("edges = %+v", gotEdges)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("output dir contains %v, want only the two artifacts", names)
	}
}

func TestExportArtifacts_Overwrites(t *testing.T) {
	dir := t.TempDir()
	nodes, edges := sampleGraph()
	if err := ExportArtifacts(dir, nodes, edges); err != nil {
		t.Fatal(err)
	}
	if err := ExportArtifacts(dir, nodes[:1], nil); err != nil {
		t.Fatal(err)
	}

	gotNodes, gotEdges, err := ImportArtifacts(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(gotNodes) != 1 || len(gotEdges) != 0 {
		t.Errorf("got %d nodes, %d edges; want 1, 0", len(gotNodes), len(gotEdges))
	}
}

func TestExportArtifacts_Unwritable(t *testing.T) {
	// A regular file where the output directory should be.
	base := t.TempDir()
	blocker := filepath.Join(base, "generated")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	nodes, edges := sampleGraph()
	err := ExportArtifacts(blocker, nodes, edges)
	if !apperrors.Is(err, apperrors.ErrCodeWrite) {
		t.Fatalf("expected WRITE_ERROR, got %v", err)
	}
}

func TestImportArtifacts_Missing(t *testing.T) {
	if _, _, err := ImportArtifacts(t.TempDir()); err == nil {
		t.Fatal("expected error for empty directory")
	}
}
