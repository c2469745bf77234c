package cli

import (
	"fmt"

	"github.com/rileyhilliard/hostwatch/internal/config"
	"github.com/spf13/cobra"
)

// configCmd prints the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration hostwatch would run with, after defaults,
the config file and HOSTWATCH_* environment overrides are applied.

The output is valid YAML and can be saved as a starting config:
  hostwatch config > ~/.config/hostwatch/config.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfig()
		if err != nil {
			return err
		}

		out, err := config.Render(cfg)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if path != "" {
			fmt.Fprintf(w, "# loaded from %s\n", path)
		}
		_, err = w.Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
