package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/isograph/pkg/pipeline"
	"github.com/matzehuels/isograph/pkg/protgraph"
)

// generateOpts holds options for the generate command.
type generateOpts struct {
	features      []string
	peptides      string
	metadata      string
	compareColumn string
	intensity     bool
	count         bool
	mergePeptides bool
	oAggregation  string
	mAggregation  string
	noCache       bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	opts := &generateOpts{}

	cmd := &cobra.Command{
		Use:   "generate <protein>",
		Short: "Build and convert the isoform graph of a protein",
		Long: `Resolve a protein to its UniProt accession, download its entry, run the
protgraph generator and convert the resulting graph.

VAR_SEQ isoforms are always included. Use --features to add variants,
mutagenesis sites or sequence conflicts, and --peptides to annotate the
graph with peptide evidence.`,
		Example: `  isograph generate TP53
  isograph generate P04637 --features VARIANT,MUTAGEN
  isograph generate P04637 --peptides uploads/peptides.csv --intensity --o-agg median`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.features, "features", "f", nil, "extra features: VARIANT, MUTAGEN, CONFLICT")
	cmd.Flags().StringVar(&opts.peptides, "peptides", "", "peptide file")
	cmd.Flags().StringVar(&opts.metadata, "metadata", "", "metadata file")
	cmd.Flags().StringVar(&opts.compareColumn, "compare-column", "", "metadata column to compare (requires --metadata)")
	cmd.Flags().BoolVar(&opts.intensity, "intensity", false, "annotate peptide intensities")
	cmd.Flags().BoolVar(&opts.count, "count", false, "annotate peptide counts")
	cmd.Flags().BoolVar(&opts.mergePeptides, "merge-peptides", false, "merge overlapping peptides")
	cmd.Flags().StringVar(&opts.oAggregation, "o-agg", "", "aggregation over observations: median, sum, mean")
	cmd.Flags().StringVar(&opts.mAggregation, "m-agg", "", "aggregation over metadata groups: median, sum, mean")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the HTTP response cache")

	return cmd
}

func (o *generateOpts) protgraphOptions() (protgraph.Options, error) {
	popts := protgraph.Options{
		PeptideFile:   o.peptides,
		MetadataFile:  o.metadata,
		CompareColumn: o.compareColumn,
		Intensity:     o.intensity,
		Count:         o.count,
		MergePeptides: o.mergePeptides,
	}
	for _, name := range o.features {
		f, err := protgraph.ParseFeature(name)
		if err != nil {
			return popts, err
		}
		popts.Features = append(popts.Features, f)
	}
	var err error
	if popts.OAggregation, err = protgraph.ParseAggregation(o.oAggregation); err != nil {
		return popts, err
	}
	if popts.MAggregation, err = protgraph.ParseAggregation(o.mAggregation); err != nil {
		return popts, err
	}
	return popts, nil
}

func (c *CLI) runGenerate(ctx context.Context, token string, opts *generateOpts) error {
	popts, err := opts.protgraphOptions()
	if err != nil {
		return err
	}

	res, closeCache, err := c.openResolver(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer closeCache()

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()
	runner.Resolver = res
	runner.Generator = c.newGenerator()

	prog := newProgress(c.Logger)
	result, err := c.convertWithSpinner(ctx, token, func() (*pipeline.Result, error) {
		return runner.Generate(ctx, pipeline.GenerateOptions{Token: token, Protgraph: popts})
	})
	if err != nil {
		return err
	}
	prog.done("generated", "id", result.ID)

	printConvertResult(result)
	printFile(runner.Dirs.GraphPath(result.ID))
	return nil
}
