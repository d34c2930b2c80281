// Package graphml reads protein-isoform graphs stored as GraphML.
//
// # Overview
//
// The external graph generator exports one directed multigraph per protein.
// Every node is a run of amino acids and every edge a transition that one or
// more isoforms take. Both carry key/value attributes declared through
// GraphML <key> elements:
//
//	<graphml>
//	  <key id="d0" for="node" attr.name="aminoacid" attr.type="string"/>
//	  <key id="d1" for="node" attr.name="position" attr.type="long"/>
//	  <key id="d2" for="edge" attr.name="isoforms" attr.type="string"/>
//	  <graph edgedefault="directed">
//	    <node id="A"><data key="d0">MKT</data><data key="d1">0</data></node>
//	    <node id="B"><data key="d0">LV</data></node>
//	    <edge source="A" target="B"><data key="d2">iso1</data></edge>
//	  </graph>
//	</graphml>
//
// # Attributes
//
// Node keys:
//   - aminoacid: amino-acid sequence (required)
//   - position: integer position along the canonical sequence
//   - feature: feature label (e.g. VAR_SEQ, VARIANT)
//   - peptides: peptide list string
//   - intensities: intensity string
//   - peptide_count: number of matched peptides
//
// Edge keys:
//   - isoforms: isoform list string
//   - generic: generic-edge flag
//   - peptides, intensities, peptide_count: as for nodes
//
// Unknown keys are ignored. Optional keys that are absent are reported as
// absent, never as an error. Values declared in <default> elements are not
// applied.
//
// # Import
//
// Use [ImportGraphML] to read a file, or [ReadGraphML] for any io.Reader:
//
//	doc, err := graphml.ImportGraphML("data/P04637.graphml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The returned [Document] preserves node and edge order as they appear in
// the file and keeps parallel edges as distinct entries. Raw attribute maps
// are converted into [NodeAttrs] and [EdgeAttrs] before ReadGraphML returns.
//
// All failures carry the PARSE_ERROR code from pkg/errors.
package graphml
