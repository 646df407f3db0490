package main

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/aretw0/pilha/pkg/output"
)

var matchPattern string

var stacksCmd = &cobra.Command{
	Use:     "stacks",
	Short:   "List the stacks in the data directory",
	Long:    `List stack names. Nested stacks use "/", so --match 'work/**' selects every stack under work/.`,
	Aliases: []string{"list-stacks"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if matchPattern != "" && !doublestar.ValidatePattern(matchPattern) {
			return fmt.Errorf("invalid pattern %q: %w", matchPattern, doublestar.ErrBadPattern)
		}

		names, err := current.repo.Names(cmd.Context())
		if err != nil {
			return err
		}

		table := output.NewTable("stack")
		for _, name := range names {
			if matchPattern != "" {
				ok, err := doublestar.Match(matchPattern, name)
				if err != nil {
					return err
				}
				if !ok {
					continue
				}
			}
			table.Add(name)
		}

		return current.format.Log(cmd.OutOrStdout(), table)
	},
}

func init() {
	rootCmd.AddCommand(stacksCmd)
	stacksCmd.Flags().StringVar(&matchPattern, "match", "", "Only list stacks matching this glob (supports **)")
}
