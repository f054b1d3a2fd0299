package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "procurement-service",
		Short: "Turns chat messages into catalog reservations",
		Long: `procurement-service reads free-text material requests, matches them
against the catalog and reserves stock, answering in plain language.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newAskCmd(&configPath))
	return root
}
