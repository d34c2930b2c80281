package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// filesCommand creates the files command.
func (c *CLI) filesCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "files",
		Short: "List the GraphML files available for conversion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dir := c.settings().Dirs().Data

			var retained []string
			if !plain {
				ledger, err := c.openLedger(ctx)
				if err != nil {
					c.Logger.Warn("could not open ledger", "error", err)
				} else if ledger != nil {
					defer ledger.Close()
					if retained, err = ledger.Snapshot(ctx); err != nil {
						c.Logger.Warn("could not read ledger", "error", err)
					}
				}
			}

			files, err := listGraphFiles(dir, retained)
			if err != nil {
				return err
			}
			if plain {
				for _, f := range files {
					fmt.Println(f.Name)
				}
				return nil
			}
			if len(files) == 0 {
				printInfo("No graphs in %s", dir)
				return nil
			}
			for _, f := range files {
				marker := "  "
				if f.Retained {
					marker = styleIconSuccess.Render(iconSuccess) + " "
				}
				printInfo("%s%s %s", marker, StyleValue.Render(f.Name), StyleDim.Render(formatSize(f.Size)))
			}
			printDetail("%d graphs in %s", len(files), dir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print bare file names, one per line")
	return cmd
}
