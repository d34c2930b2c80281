package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/isograph/pkg/errors"
	artifactio "github.com/matzehuels/isograph/pkg/io"
	"github.com/matzehuels/isograph/pkg/pipeline"
)

// convertOpts holds options for the convert command.
type convertOpts struct {
	input  string
	output string
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	opts := &convertOpts{}

	cmd := &cobra.Command{
		Use:   "convert [file.graphml]",
		Short: "Convert a GraphML graph into nodes.json and edges.json",
		Long: `Convert a GraphML protein graph into the viewer's nodes.json and
edges.json documents.

The file is looked up in the data directory. Without an argument an
interactive picker lists the available graphs. Use --input to convert a
file from anywhere on disk.`,
		Example: `  isograph convert P04637.graphml
  isograph convert --input ./graphs/Q9Y6K9.graphml --out ./viewer/data
  isograph convert`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd.Context(), args, opts)
		},
		ValidArgsFunction: c.completeGraphFiles,
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "path to a .graphml file outside the data directory")
	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "output directory (default from config)")

	return cmd
}

func (c *CLI) runConvert(ctx context.Context, args []string, opts *convertOpts) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	if opts.output != "" {
		runner.Dirs.Output = opts.output
	}

	var result *pipeline.Result
	switch {
	case opts.input != "":
		if len(args) > 0 {
			return apperrors.New(apperrors.ErrCodeInvalidInput, "use either a file argument or --input, not both")
		}
		if _, err := os.Stat(opts.input); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeNotFound, err, "input file %q does not exist", opts.input)
		}
		result, err = c.convertWithSpinner(ctx, opts.input, func() (*pipeline.Result, error) {
			return runner.Convert(ctx, opts.input, runner.Dirs.Output)
		})
	case len(args) == 1:
		result, err = c.convertWithSpinner(ctx, args[0], func() (*pipeline.Result, error) {
			return runner.ConvertFile(ctx, args[0])
		})
	default:
		name, perr := c.pickFile(ctx, runner)
		if perr != nil || name == "" {
			return perr
		}
		result, err = c.convertWithSpinner(ctx, name, func() (*pipeline.Result, error) {
			return runner.ConvertFile(ctx, name)
		})
	}
	if err != nil {
		return err
	}

	printConvertResult(result)
	return nil
}

// pickFile lets the user choose a graph from the data directory. It returns
// "" if nothing was chosen.
func (c *CLI) pickFile(ctx context.Context, runner *pipeline.Runner) (string, error) {
	var retained []string
	if runner.Retention != nil {
		ids, err := runner.Retention.Snapshot(ctx)
		if err != nil {
			c.Logger.Warn("could not read ledger", "error", err)
		}
		retained = ids
	}

	files, err := listGraphFiles(runner.Dirs.Data, retained)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		printWarning("No graphs in %s", runner.Dirs.Data)
		printNextStep("Generate one", "isograph generate <protein>")
		return "", nil
	}

	selected, err := pickGraphFile(files)
	if err != nil || selected == nil {
		return "", err
	}
	return selected.Name, nil
}

func (c *CLI) convertWithSpinner(ctx context.Context, label string, fn func() (*pipeline.Result, error)) (*pipeline.Result, error) {
	spinner := newSpinnerWithContext(ctx, "Converting "+label+"...")
	spinner.Start()
	result, err := fn()
	if err != nil {
		spinner.StopWithError("Conversion failed")
		return nil, err
	}
	spinner.Stop()
	return result, nil
}

func printConvertResult(result *pipeline.Result) {
	printSuccess("Converted %s", StyleHighlight.Render(result.ID))
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.Stats.ParseTime+result.Stats.WriteTime)
	printFile(filepath.Join(result.OutputDir, artifactio.NodesFile))
	printFile(filepath.Join(result.OutputDir, artifactio.EdgesFile))
	for _, id := range result.Evicted {
		printEvicted(id)
	}
	if result.RetentionErr != nil {
		printWarning("Ledger not updated: %s", apperrors.UserMessage(result.RetentionErr))
	}
}

// completeGraphFiles completes file names from the data directory.
func (c *CLI) completeGraphFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if err := c.setup(); err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	names, err := pipeline.AvailableFiles(c.settings().Dirs().Data)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
