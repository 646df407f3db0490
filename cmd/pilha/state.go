package main

import (
	"encoding/json"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"
)

var stateCmd = &cobra.Command{
	Use:    "state",
	Short:  "Print the internal state of the stack store as JSON",
	Args:   cobra.NoArgs,
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		var intro introspection.Introspectable = current.repo

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(map[string]any{
			"component": current.repo.ComponentType(),
			"state":     intro.State(),
		})
	},
}

func init() {
	rootCmd.AddCommand(stateCmd)
}
