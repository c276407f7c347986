// Package main is the entry point for ledgerctl, the SmartSpend command-line client.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/smartspend/backend/internal/cli"
)

func main() {
	// Conflicts are logged by the facade; keep them off stdout
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
