// Package nodelink renders isoform graphs as node-link diagrams.
//
// # Overview
//
// The diagram is a quick preview of what the frontend will show: sequence
// nodes as boxes, left to right along the canonical sequence, connected by
// arrows labelled with the isoforms that take them.
//
// # Usage
//
// Read the artifacts back, convert to DOT, then render:
//
//	nodes, edges, err := io.ImportArtifacts("output")
//	dot := nodelink.ToDOT(nodes, edges, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// PDF and PNG go through SVG:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
//
// # Options
//
//   - Detailed: adds peptide counts to node and edge labels
//   - Features: per-node feature labels, known only when rendering from GraphML
//
// Unpositioned nodes and generic edges are drawn dashed.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
