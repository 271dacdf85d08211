package commands

import (
	"tv-keuzehulp-be/internal/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	catalogPath string
	noColor     bool
	cfg         *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "keuzehulp-cli",
	Short: "Inspect the TV catalog and exercise the keuzehulp from a terminal",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if catalogPath == "" {
			catalogPath = cfg.Keuzehulp.CatalogPath
		}
		color.NoColor = color.NoColor || noColor
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "catalog CSV path (defaults to CATALOG_PATH)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
