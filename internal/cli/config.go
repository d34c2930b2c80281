package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/isograph/pkg/config"
)

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *c.settings()
			if cfg.Redis.Password != "" {
				cfg.Redis.Password = "********"
			}
			if cfg.Source != "" {
				fmt.Printf("# loaded from %s\n", cfg.Source)
			}
			return toml.NewEncoder(os.Stdout).Encode(cfg)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.configPath != "" {
				fmt.Println(c.configPath)
				return nil
			}
			path, err := config.DefaultPath()
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "env",
		Short: "List the supported environment variables",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.EnvNames() {
				value, set := os.LookupEnv(name)
				if !set {
					fmt.Println(StyleDim.Render(name))
					continue
				}
				if strings.HasSuffix(name, "PASSWORD") {
					value = "********"
				}
				printKeyValue(name, value)
			}
		},
	})

	return cmd
}
