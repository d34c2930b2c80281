// Package io persists projected isoform graphs as the two JSON documents
// consumed by the graph frontend.
//
// # Overview
//
// A conversion produces two files in its output directory:
//
//   - nodes.json: array of positioned sequence nodes
//   - edges.json: array of directed arrows
//
// Both are pretty-printed with two-space indentation. Every data field is
// present on every element; absent attributes are written as "".
//
//	[
//	  {
//	    "id": "A",
//	    "type": "sequence",
//	    "data": {
//	      "sequence": "MKT",
//	      "peptidesString": "",
//	      "intensitiesString": "",
//	      "peptideCount": ""
//	    },
//	    "position": {"x": 0, "y": 0}
//	  }
//	]
//
// # Export
//
// Use [ExportArtifacts] to write both documents into a directory, or
// [WriteNodes] and [WriteEdges] for any io.Writer:
//
//	nodes, edges := graph.Project(doc)
//	if err := io.ExportArtifacts("generated", nodes, edges); err != nil {
//	    log.Fatal(err)
//	}
//
// ExportArtifacts stages both files in a private subdirectory and renames
// them into place, so readers never observe a partially written file. The
// two renames are not atomic as a pair: a failure between them can leave a
// new nodes.json next to the previous edges.json. Callers must treat any
// returned error as a failed conversion.
//
// # Import
//
// [ImportArtifacts] reads both documents back from a directory. It is used
// by the preview renderer.
package io
