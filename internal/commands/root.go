// Package commands holds the ventctl operator commands
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "ventctl",
		Short: "Operator tools for the ventures backend",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ./config.toml, then VENTURES_* env)")

	rootCmd.AddCommand(
		newInvoiceCommand(&configPath),
		newReportCommand(&configPath),
		newMigrateCommand(&configPath),
		newTokenCommand(&configPath),
	)

	return rootCmd
}
