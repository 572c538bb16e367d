package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <config.yaml>",
	Short: "Check a device config file without running it.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(args[0])
		if err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d steps)\n", args[0], len(cfg.Steps))
		return nil
	},
}
