package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/pilha"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pilha",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// No store needed.
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pilha version %s\n", pilha.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
