package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/isograph/pkg/errors"
	"github.com/matzehuels/isograph/pkg/pipeline"
)

// ledgerCommand creates the ledger management command.
func (c *CLI) ledgerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect and manage the retention ledger",
		Long: `The retention ledger records the most recently generated proteins.
When it is full, converting a new protein evicts the oldest one and deletes
its graph and UniProt entry.`,
	}

	cmd.AddCommand(c.ledgerShowCommand())
	cmd.AddCommand(c.ledgerTouchCommand())
	cmd.AddCommand(c.ledgerClearCommand())

	return cmd
}

// ledgerShowCommand creates the "ledger show" subcommand.
func (c *CLI) ledgerShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List retained protein ids, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.ledgerRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			ids, err := runner.Retention.Snapshot(ctx)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				printInfo("Ledger is empty")
				return nil
			}
			fmt.Println(ledgerTable(ids, runner.Dirs))
			printDetail("%d of %d slots used", len(ids), runner.Retention.Capacity())
			return nil
		},
	}
}

// ledgerTouchCommand creates the "ledger touch" subcommand.
func (c *CLI) ledgerTouchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "touch <protein-id>",
		Short: "Mark a protein as recently used, evicting the oldest if full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.ledgerRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			evicted, err := runner.Retain(ctx, args[0])
			if err != nil {
				return err
			}
			printSuccess("Retained %s", StyleHighlight.Render(args[0]))
			for _, id := range evicted {
				printEvicted(id)
			}
			return nil
		},
	}
}

// ledgerClearCommand creates the "ledger clear" subcommand.
func (c *CLI) ledgerClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget every retained protein without deleting files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.ledgerRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			if err := runner.Retention.Clear(ctx); err != nil {
				return err
			}
			printSuccess("Cleared ledger")
			return nil
		},
	}
}

// ledgerRunner opens a runner and fails if retention is disabled.
func (c *CLI) ledgerRunner(ctx context.Context) (*pipeline.Runner, error) {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return nil, err
	}
	if runner.Retention == nil {
		runner.Close()
		return nil, apperrors.New(apperrors.ErrCodeInvalidConfig, "retention is disabled (backend %q)", c.settings().Retention.Backend)
	}
	return runner, nil
}

// ledgerTable renders ids with the files each one keeps alive.
func ledgerTable(ids []string, dirs pipeline.Dirs) string {
	rows := make([][]string, len(ids))
	for i, id := range ids {
		rows[i] = []string{
			fmt.Sprintf("%d", i+1),
			id,
			presence(dirs.GraphPath(id)),
			presence(dirs.EntryPath(id)),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Protein", "Graph", "Entry").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleDim
			case col == 1:
				return StyleValue
			}
			return lipgloss.NewStyle().Foreground(colorGreen)
		}).
		Render()
}

func presence(path string) string {
	if fileExists(path) {
		return iconSuccess
	}
	return "—"
}
