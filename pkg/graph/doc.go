// Package graph defines the visualization model consumed by the frontend and
// projects parsed isoform graphs onto it.
//
// # Architecture
//
// The package sits between the GraphML reader and the artifact writer:
//
//   - pkg/graphml.Document: parsed input with typed attributes
//   - [Node], [Edge]: visualization schema (this package)
//   - pkg/io: writes nodes.json and edges.json
//
// Use [Project] to convert a document. Projection is pure: it never mutates
// the document and produces identical output for identical input.
//
// # Schema
//
// Nodes serialize as:
//
//	{
//	  "id": "A",
//	  "type": "sequence",
//	  "data": {"sequence": "MKT", "peptidesString": "", "intensitiesString": "", "peptideCount": ""},
//	  "position": {"x": 0, "y": 0}
//	}
//
// Edges serialize as:
//
//	{
//	  "id": "eA-B",
//	  "source": "A",
//	  "target": "B",
//	  "type": "arrow",
//	  "data": {"isoformString": "iso1", "generic": "", "peptidesString": "", "intensitiesString": "", "peptideCount": ""}
//	}
//
// Every data field is a string. Attributes missing from the input become
// the empty string, never null or an omitted field.
//
// # Layout Hints
//
// [PositionFor] derives a position hint from a node's position attribute:
// x = position * [PositionSpacing] and y = 0, or x = [UnpositionedX] when
// the attribute is absent. The real layout is computed by the frontend.
//
// # Edge Identifiers
//
// Edge ids are "e<source>-<target>". Parallel edges between the same pair
// therefore share an id; each is still emitted as its own entry.
package graph
