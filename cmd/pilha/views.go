package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aretw0/pilha"
	"github.com/aretw0/pilha/pkg/query"
)

func init() {
	for _, eff := range query.Effects() {
		rootCmd.AddCommand(newViewCommand(eff))
	}
}

// newViewCommand exposes a query effect as a subcommand. Head and Tail take
// an optional item count.
func newViewCommand(eff query.Effect) *cobra.Command {
	names := eff.Names()

	cmd := &cobra.Command{
		Use:     names.Name,
		Short:   names.Description,
		Aliases: names.Aliases,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseCount(args)
			if err != nil {
				return err
			}
			return runNamed(cmd, names.Name, n)
		},
	}

	switch eff.(type) {
	case query.Head, query.Tail:
		cmd.Use = names.Name + " [n]"
		cmd.Args = cobra.MaximumNArgs(1)
	}
	return cmd
}

func parseCount(args []string) (*int, error) {
	if len(args) == 0 {
		return nil, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return nil, fmt.Errorf("invalid item count %q", args[0])
	}
	return &n, nil
}

// runNamed builds the named effect for the current stack and runs it.
func runNamed(cmd *cobra.Command, name string, n *int) error {
	eff, ok := query.Lookup(name, current.stack, n)
	if !ok {
		return fmt.Errorf("unknown view %q", name)
	}
	return runEffect(cmd, eff)
}

// runEffect renders the effect's table. An aborting effect ends the process
// right here, skipping any deferred cleanup in the caller.
func runEffect(cmd *cobra.Command, eff query.Effect) error {
	term, err := pilha.RunWithLogger(cmd.Context(), current.repo, eff, current.format, cmd.OutOrStdout(), current.logger)
	if err != nil {
		return fmt.Errorf("error writing output: %w", err)
	}

	if term == query.Abort {
		exit(term.ExitCode())
	}
	return nil
}
