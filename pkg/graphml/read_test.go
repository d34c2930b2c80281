package graphml

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/matzehuels/isograph/pkg/errors"
)

func TestImportGraphML_TwoNodes(t *testing.T) {
	doc, err := ImportGraphML(filepath.Join("testdata", "two_nodes.graphml"))
	if err != nil {
		t.Fatalf("ImportGraphML: %v", err)
	}

	if doc.NodeCount() != 2 || doc.EdgeCount() != 1 {
		t.Fatalf("got %d nodes, %d edges; want 2, 1", doc.NodeCount(), doc.EdgeCount())
	}

	a, b := doc.Nodes[0], doc.Nodes[1]
	if a.ID != "A" || a.Attrs.Sequence != "MKT" {
		t.Errorf("node 0 = %+v", a)
	}
	if a.Attrs.Position == nil || *a.Attrs.Position != 0 {
		t.Errorf("node A position = %v, want 0", a.Attrs.Position)
	}
	if b.ID != "B" || b.Attrs.Sequence != "LV" || b.Attrs.Position != nil {
		t.Errorf("node 1 = %+v", b)
	}
	if b.Attrs.Peptides.Present() {
		t.Error("absent peptides should not be present")
	}

	e := doc.Edges[0]
	if e.Source != "A" || e.Target != "B" {
		t.Errorf("edge = %s->%s, want A->B", e.Source, e.Target)
	}
	if got := e.Attrs.Isoforms.String(); got != "iso1" {
		t.Errorf("isoforms = %q, want iso1", got)
	}
}

func TestImportGraphML_Isoforms(t *testing.T) {
	doc, err := ImportGraphML(filepath.Join("testdata", "isoforms.graphml"))
	if err != nil {
		t.Fatalf("ImportGraphML: %v", err)
	}

	wantOrder := []string{"n0", "n1", "n2", "n3"}
	for i, id := range wantOrder {
		if doc.Nodes[i].ID != id {
			t.Errorf("node %d = %s, want %s", i, doc.Nodes[i].ID, id)
		}
	}

	n1 := doc.Nodes[1].Attrs
	if n1.PeptideCount != IntValue(2) {
		t.Errorf("n1 peptide_count = %#v, want IntValue(2)", n1.PeptideCount)
	}
	if n1.Intensities.String() != "12.5,3" {
		t.Errorf("n1 intensities = %q", n1.Intensities.String())
	}
	if doc.Nodes[2].Attrs.Feature.String() != "VAR_SEQ" {
		t.Errorf("n2 feature = %q", doc.Nodes[2].Attrs.Feature.String())
	}

	if doc.EdgeCount() != 5 {
		t.Fatalf("edges = %d, want 5 (parallel edges kept)", doc.EdgeCount())
	}
	if doc.Edges[0].Attrs.Generic != BoolValue(true) {
		t.Errorf("edge 0 generic = %#v, want BoolValue(true)", doc.Edges[0].Attrs.Generic)
	}
	parallel := 0
	for _, e := range doc.Edges {
		if e.Source == "n1" && e.Target == "n3" {
			parallel++
		}
	}
	if parallel != 2 {
		t.Errorf("n1->n3 edges = %d, want 2", parallel)
	}
	if doc.Edges[4].Attrs.Isoforms.Present() {
		t.Error("edge without data should have no isoforms")
	}
}

func TestReadGraphML_Errors(t *testing.T) {
	const keys = `<key id="s" for="node" attr.name="aminoacid" attr.type="string"/>
<key id="p" for="node" attr.name="position" attr.type="string"/>
<key id="c" for="node" attr.name="peptide_count" attr.type="int"/>`

	tests := []struct {
		name string
		body string
	}{
		{"malformed xml", `<graphml><graph><node id="a">`},
		{"not graphml", `<html></html>`},
		{"no graph", `<graphml>` + keys + `</graphml>`},
		{"missing sequence", `<graphml>` + keys + `<graph><node id="a"/></graph></graphml>`},
		{"node without id", `<graphml>` + keys + `<graph><node><data key="s">M</data></node></graph></graphml>`},
		{"duplicate node", `<graphml>` + keys + `<graph>
			<node id="a"><data key="s">M</data></node>
			<node id="a"><data key="s">K</data></node></graph></graphml>`},
		{"unknown edge target", `<graphml>` + keys + `<graph>
			<node id="a"><data key="s">M</data></node>
			<edge source="a" target="b"/></graph></graphml>`},
		{"undeclared key", `<graphml>` + keys + `<graph>
			<node id="a"><data key="s">M</data><data key="zz">1</data></node></graph></graphml>`},
		{"bad int", `<graphml>` + keys + `<graph>
			<node id="a"><data key="s">M</data><data key="c">two</data></node></graph></graphml>`},
		{"non-integer position", `<graphml>` + keys + `<graph>
			<node id="a"><data key="s">M</data><data key="p">first</data></node></graph></graphml>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGraphML(strings.NewReader(tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !apperrors.Is(err, apperrors.ErrCodeParse) {
				t.Errorf("expected PARSE_ERROR, got %v", err)
			}
		})
	}
}

func TestReadGraphML_StringPosition(t *testing.T) {
	body := `<graphml>
<key id="s" for="node" attr.name="aminoacid" attr.type="string"/>
<key id="p" for="node" attr.name="position" attr.type="string"/>
<graph><node id="a"><data key="s">M</data><data key="p"> 7 </data></node></graph></graphml>`

	doc, err := ReadGraphML(strings.NewReader(body))
	if err != nil {
		t.Fatalf("ReadGraphML: %v", err)
	}
	if p := doc.Nodes[0].Attrs.Position; p == nil || *p != 7 {
		t.Errorf("position = %v, want 7", p)
	}
}

func TestReadGraphML_KeyDomain(t *testing.T) {
	// An edge-only key attached to a node is ignored rather than misread.
	body := `<graphml>
<key id="s" for="node" attr.name="aminoacid" attr.type="string"/>
<key id="i" for="edge" attr.name="isoforms" attr.type="string"/>
<graph><node id="a"><data key="s">M</data><data key="i">iso</data></node></graph></graphml>`

	doc, err := ReadGraphML(strings.NewReader(body))
	if err != nil {
		t.Fatalf("ReadGraphML: %v", err)
	}
	if doc.Nodes[0].Attrs.Sequence != "M" {
		t.Errorf("sequence = %q", doc.Nodes[0].Attrs.Sequence)
	}
}

func TestImportGraphML_Missing(t *testing.T) {
	_, err := ImportGraphML(filepath.Join(t.TempDir(), "absent.graphml"))
	if !apperrors.Is(err, apperrors.ErrCodeParse) {
		t.Fatalf("expected PARSE_ERROR, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected wrapped not-exist error, got %v", err)
	}
}
