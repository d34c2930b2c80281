package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	apperrors "github.com/matzehuels/isograph/pkg/errors"
	"github.com/matzehuels/isograph/pkg/graph"
	"github.com/matzehuels/isograph/pkg/graphml"
	"github.com/matzehuels/isograph/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds peptide counts to node labels and peptide data to
	// edge labels.
	Detailed bool

	// Features maps node IDs to their feature label (e.g. VAR_SEQ).
	// The projected artifacts do not carry features, so this is only
	// available when rendering straight from GraphML.
	Features map[string]string
}

// FeaturesOf collects the feature label of every node that has one.
func FeaturesOf(doc *graphml.Document) map[string]string {
	features := make(map[string]string)
	for _, n := range doc.Nodes {
		if f := n.Attrs.Feature.String(); f != "" {
			features[n.ID] = f
		}
	}
	return features
}

// maxSequenceLabel truncates long sequences in node labels.
const maxSequenceLabel = 24

// ToDOT converts projected nodes and edges to Graphviz DOT. The layout runs
// left to right, following the canonical sequence. Parallel edges are kept
// and drawn separately.
//
// Nodes without a layout position are drawn dashed.
func ToDOT(nodes []graph.Node, edges []graph.Edge, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"monospace\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range nodes {
		label := fmtNodeLabel(n, opts)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtNodeAttrs(n, label), ", "))
	}

	buf.WriteString("\n")
	for _, e := range edges {
		attrs := fmtEdgeAttrs(e, opts.Detailed)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtNodeLabel(n graph.Node, opts Options) string {
	seq := n.Data.Sequence
	if len(seq) > maxSequenceLabel {
		seq = seq[:maxSequenceLabel-3] + "..."
	}
	parts := []string{n.ID, seq}
	if f := opts.Features[n.ID]; f != "" {
		parts = append(parts, f)
	}
	if opts.Detailed && n.Data.PeptideCount != "" {
		parts = append(parts, "peptides: "+n.Data.PeptideCount)
	}
	return strings.Join(parts, "\n")
}

func fmtNodeAttrs(n graph.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Position.X == graph.UnpositionedX {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}

func fmtEdgeAttrs(e graph.Edge, detailed bool) []string {
	var attrs []string
	label := e.Data.IsoformString
	if detailed && e.Data.PeptideCount != "" {
		label = strings.TrimSpace(label + "\npeptides: " + e.Data.PeptideCount)
	}
	if label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", label))
	}
	if e.Data.Generic == "true" {
		attrs = append(attrs, "style=dashed")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion. A scale of 2.0
// produces a 2x resolution image.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
