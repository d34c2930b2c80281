package pipeline

import (
	"context"
	"time"

	apperrors "github.com/matzehuels/isograph/pkg/errors"
	"github.com/matzehuels/isograph/pkg/protgraph"
)

// GenerateOptions describes a graph generation request.
type GenerateOptions struct {
	// Token is an accession, entry name or gene name.
	Token string

	// Protgraph holds the generator switches. A PeptideFile in it is
	// rewritten to use the canonical accession before the generator runs.
	Protgraph protgraph.Options
}

// Generate resolves opts.Token, downloads its UniProt entry, runs the graph
// generator into the data directory and converts the result.
func (r *Runner) Generate(ctx context.Context, opts GenerateOptions) (*Result, error) {
	if r.Resolver == nil || r.Generator == nil {
		return nil, apperrors.New(apperrors.ErrCodeInternal, "runner is not configured for generation")
	}
	if err := opts.Protgraph.Validate(); err != nil {
		return nil, err
	}

	graphPath, err := r.generate(ctx, opts)
	if err != nil {
		return nil, err
	}
	return r.Convert(ctx, graphPath, r.Dirs.Output)
}

// generate runs the stages that read the scratch directories, keeping them
// from being emptied by a concurrent eviction.
func (r *Runner) generate(ctx context.Context, opts GenerateOptions) (string, error) {
	release := r.useScratch()
	defer release()

	accession, err := r.Resolver.Resolve(ctx, opts.Token, opts.Protgraph.PeptideFile)
	if err != nil {
		return "", err
	}

	_, entry, err := r.Resolver.Fetch(ctx, accession, r.Dirs.Download)
	if err != nil {
		return "", err
	}

	start := time.Now()
	graphPath, err := r.Generator.Run(ctx, entry, r.Dirs.Data, opts.Protgraph)
	if err != nil {
		return "", err
	}
	r.Logger.Info("generated graph", "id", accession, "path", graphPath, "duration", time.Since(start))
	return graphPath, nil
}
