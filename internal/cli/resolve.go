package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/isograph/pkg/resolver"
)

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	var (
		peptides string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <protein>",
		Short: "Resolve a protein name to its canonical UniProt accession",
		Long: `Resolve an accession, entry name or gene name to a canonical UniProt
accession. Canonical accessions are returned without a lookup.

With --peptides, every occurrence of the input token in the peptide file is
replaced by the resolved accession.`,
		Example: `  isograph resolve TP53
  isograph resolve P53_HUMAN --peptides uploads/peptides.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res, closeFn, err := c.openResolver(ctx, noCache)
			if err != nil {
				return err
			}
			defer closeFn()

			accession, err := res.Resolve(ctx, args[0], peptides)
			if err != nil {
				return err
			}
			fmt.Println(accession)
			return nil
		},
	}

	cmd.Flags().StringVar(&peptides, "peptides", "", "peptide file to rewrite with the accession")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the HTTP response cache")
	return cmd
}

// fetchCommand creates the fetch command.
func (c *CLI) fetchCommand() *cobra.Command {
	var (
		dir     string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "fetch <protein>",
		Short: "Download the UniProt entry of a protein",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res, closeFn, err := c.openResolver(ctx, noCache)
			if err != nil {
				return err
			}
			defer closeFn()

			if dir == "" {
				dir = c.settings().Dirs().Download
			}

			spinner := newSpinnerWithContext(ctx, "Downloading "+args[0]+"...")
			spinner.Start()
			accession, path, err := res.Fetch(ctx, args[0], dir)
			if err != nil {
				spinner.StopWithError("Download failed")
				return err
			}
			spinner.StopWithSuccess("Downloaded " + StyleHighlight.Render(accession))
			printFile(path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "out", "o", "", "download directory (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the HTTP response cache")
	return cmd
}

// openResolver opens the response cache and builds a resolver over it. The
// returned func closes the cache.
func (c *CLI) openResolver(ctx context.Context, noCache bool) (*resolver.Resolver, func(), error) {
	backend, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, nil, err
	}
	res := c.newResolver(c.newUniProt(backend))
	return res, func() { backend.Close() }, nil
}
