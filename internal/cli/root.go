// Package cli implements the ledgerctl commands. Every command loads the
// ledger through a sync facade, applies its change locally, and waits for the
// durable write before printing the result.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	APIURL     string
	Format     string // "json" | "text"

	config ClientConfig
	now    func() time.Time
}

// NewRootCommand creates the root command for ledgerctl.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{now: time.Now})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledgerctl",
		Short: "SmartSpend ledger client",
		Long:  "Plan purchases, log what you bought, and track the budget against a SmartSpend API.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			cfg, err := LoadClientConfig(opts.ConfigPath)
			if err != nil {
				return err
			}
			if opts.APIURL != "" {
				cfg.API.BaseURL = opts.APIURL
			}
			opts.config = cfg
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", DefaultConfigPath(), "config file")
	cmd.PersistentFlags().StringVar(&opts.APIURL, "api-url", "", "ledger API base URL (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(newBudgetCommand(opts))
	cmd.AddCommand(newPlanCommand(opts))
	cmd.AddCommand(newLogCommand(opts))
	cmd.AddCommand(newShowCommand(opts))
	cmd.AddCommand(newConfigCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
