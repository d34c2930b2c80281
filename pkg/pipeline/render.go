package pipeline

import (
	"context"

	"github.com/matzehuels/isograph/pkg/graph"
	"github.com/matzehuels/isograph/pkg/graphml"
	artifactio "github.com/matzehuels/isograph/pkg/io"
	"github.com/matzehuels/isograph/pkg/render/nodelink"
)

// RenderOptions configures a preview.
type RenderOptions struct {
	Format   string
	Detailed bool
	Scale    float64 // PNG only; zero means 2x
}

// Preview renders the artifacts in dir.
func Preview(ctx context.Context, dir string, opts RenderOptions) ([]byte, error) {
	nodes, edges, err := artifactio.ImportArtifacts(dir)
	if err != nil {
		return nil, err
	}
	return Render(ctx, nodes, edges, nodelink.Options{Detailed: opts.Detailed}, opts)
}

// PreviewGraphML renders a GraphML file directly. Unlike [Preview] this
// labels nodes with their features.
func PreviewGraphML(ctx context.Context, path string, opts RenderOptions) ([]byte, error) {
	doc, err := graphml.ImportGraphML(path)
	if err != nil {
		return nil, err
	}
	nodes, edges := graph.Project(doc)
	return Render(ctx, nodes, edges, nodelink.Options{
		Detailed: opts.Detailed,
		Features: nodelink.FeaturesOf(doc),
	}, opts)
}

// Render produces a preview of nodes and edges in opts.Format.
func Render(ctx context.Context, nodes []graph.Node, edges []graph.Edge, dotOpts nodelink.Options, opts RenderOptions) ([]byte, error) {
	if opts.Format == "" {
		opts.Format = FormatSVG
	}
	if err := ValidateFormat(opts.Format); err != nil {
		return nil, err
	}

	dot := nodelink.ToDOT(nodes, edges, dotOpts)

	var (
		data []byte
		err  error
	)
	switch opts.Format {
	case FormatDOT:
		data = []byte(dot)
	case FormatSVG:
		data, err = nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		scale := opts.Scale
		if scale == 0 {
			scale = 2.0
		}
		data, err = nodelink.RenderPNG(ctx, dot, scale)
	case FormatPDF:
		data, err = nodelink.RenderPDF(ctx, dot)
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}
