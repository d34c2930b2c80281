// Package render provides preview rendering for converted isoform graphs.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg):
//
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the projected graph with Graphviz:
//
//	dot := nodelink.ToDOT(nodes, edges, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [nodelink]: github.com/matzehuels/isograph/pkg/render/nodelink
package render
