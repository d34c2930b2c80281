package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/isograph/pkg/errors"
	"github.com/matzehuels/isograph/pkg/pipeline"
)

// renderOpts holds options for the render command.
type renderOpts struct {
	format   string
	graphml  string
	detailed bool
	scale    float64
	output   string
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := &renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [dir]",
		Short: "Preview converted artifacts as DOT, SVG, PNG or PDF",
		Long: `Render nodes.json and edges.json as a node-link diagram.

The artifacts are read from dir, or the configured output directory. Use
--graphml to render a GraphML file directly, which also labels features.
SVG output uses Graphviz; PNG and PDF additionally need rsvg-convert.`,
		Example: `  isograph render --format dot
  isograph render generated -f svg -o P04637.svg
  isograph render --graphml data/P04637.graphml -f png --detailed -o P04637.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ropts := pipeline.RenderOptions{Format: opts.format, Detailed: opts.detailed, Scale: opts.scale}

			var (
				data []byte
				err  error
			)
			if opts.graphml != "" {
				if len(args) > 0 {
					return apperrors.New(apperrors.ErrCodeInvalidInput, "use either a directory argument or --graphml, not both")
				}
				data, err = pipeline.PreviewGraphML(ctx, opts.graphml, ropts)
			} else {
				dir := c.settings().Dirs().Output
				if len(args) == 1 {
					dir = args[0]
				}
				data, err = pipeline.Preview(ctx, dir, ropts)
			}
			if err != nil {
				return err
			}

			if opts.output == "" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(opts.output, data, 0644); err != nil {
				return apperrors.Wrap(apperrors.ErrCodeWrite, err, "write %s", opts.output)
			}
			printSuccess("Rendered %s", opts.format)
			printFile(opts.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", pipeline.FormatSVG, fmt.Sprintf("output format: %s, %s, %s, %s",
		pipeline.FormatDOT, pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF))
	cmd.Flags().StringVar(&opts.graphml, "graphml", "", "render a GraphML file instead of artifacts")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include peptide annotations")
	cmd.Flags().Float64Var(&opts.scale, "scale", 2.0, "PNG scale factor")
	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "output file (default stdout)")

	return cmd
}
