package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newConfigCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Config file:   %s\n", opts.ConfigPath)
			if _, err := os.Stat(opts.ConfigPath); err == nil {
				fmt.Fprintln(w, "Status:        loaded")
			} else {
				fmt.Fprintln(w, "Status:        using defaults (no config file)")
			}
			fmt.Fprintf(w, "API URL:       %s\n", opts.config.API.BaseURL)
			fmt.Fprintf(w, "API timeout:   %s\n", opts.config.API.Timeout)
			fmt.Fprintf(w, "Queue size:    %d\n", opts.config.Sync.QueueSize)
			fmt.Fprintf(w, "Write timeout: %s\n", opts.config.Sync.WriteTimeout)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the current configuration to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := SaveClientConfig(opts.ConfigPath, opts.config); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", opts.ConfigPath)
			return err
		},
	})

	return cmd
}
