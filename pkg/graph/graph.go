package graph

import "github.com/matzehuels/isograph/pkg/graphml"

// Project maps a parsed document onto the visualization schema.
//
// Nodes and edges keep document order, so the same document always yields
// the same output. Optional attributes absent from the document become "".
// Present values of any type are coerced to their string form; projection
// never fails. The document is not modified.
func Project(doc *graphml.Document) ([]Node, []Edge) {
	nodes := make([]Node, len(doc.Nodes))
	for i, n := range doc.Nodes {
		nodes[i] = projectNode(n)
	}

	edges := make([]Edge, len(doc.Edges))
	for i, e := range doc.Edges {
		edges[i] = projectEdge(e)
	}
	return nodes, edges
}

func projectNode(n graphml.Node) Node {
	return Node{
		ID:   n.ID,
		Type: NodeTypeSequence,
		Data: NodeData{
			Sequence:          n.Attrs.Sequence,
			PeptidesString:    n.Attrs.Peptides.String(),
			IntensitiesString: n.Attrs.Intensities.String(),
			PeptideCount:      n.Attrs.PeptideCount.String(),
		},
		Position: PositionFor(n.Attrs),
	}
}

func projectEdge(e graphml.Edge) Edge {
	return Edge{
		ID:     EdgeID(e.Source, e.Target),
		Source: e.Source,
		Target: e.Target,
		Type:   EdgeTypeArrow,
		Data: EdgeData{
			IsoformString:     e.Attrs.Isoforms.String(),
			Generic:           e.Attrs.Generic.String(),
			PeptidesString:    e.Attrs.Peptides.String(),
			IntensitiesString: e.Attrs.Intensities.String(),
			PeptideCount:      e.Attrs.PeptideCount.String(),
		},
	}
}
