package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/pilha/pkg/adapters/lifecycle"
	"github.com/aretw0/pilha/pkg/query"
)

var watchChanges int

// watchSettle absorbs the event burst of a single atomic save.
const watchSettle = 100 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch [view] [n]",
	Short: "Show a view of the stack again every time it changes",
	Long: `Run a view (list by default) now and after every change to the stack
file, until interrupted. Any view name or alias works except is-empty.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		view := "list"
		if len(args) > 0 {
			view = args[0]
		}
		n, err := parseCount(args[min(len(args), 1):])
		if err != nil {
			return err
		}

		eff, ok := query.Lookup(view, current.stack, n)
		if !ok {
			return fmt.Errorf("unknown view %q", view)
		}
		if _, ok := eff.(query.IsEmpty); ok {
			return fmt.Errorf("cannot watch %s", view)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		events, err := current.repo.Watch(ctx, current.stack)
		if err != nil {
			return err
		}
		source := lifecycle.NewSource(events, lifecycle.WithSettle(watchSettle))
		if err := source.Start(ctx); err != nil {
			return err
		}

		if err := runEffect(cmd, eff); err != nil {
			return err
		}

		seen := 0
		for e := range source.Events() {
			current.logger.Debug("stack changed", "event", e.String())
			fmt.Fprintln(cmd.OutOrStdout())
			if err := runEffect(cmd, eff); err != nil {
				return err
			}
			seen++
			if watchChanges > 0 && seen >= watchChanges {
				return nil
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().IntVar(&watchChanges, "changes", 0, "Exit after this many changes (0 watches until interrupted)")
}
