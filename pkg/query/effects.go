package query

import (
	"context"
	"log/slog"
	"slices"
	"strconv"

	"github.com/aretw0/pilha/pkg/core"
	"github.com/aretw0/pilha/pkg/output"
)

const (
	// HeadDefaultLimit is used by Head when no count is given.
	HeadDefaultLimit = 10
	// TailDefaultLimit is used by Tail when no count is given.
	TailDefaultLimit = 10
)

// Termination tells the caller how an invocation must end.
type Termination int

const (
	// Continue means the caller returns normally.
	Continue Termination = iota
	// Abort means the caller must exit the process right after emitting the
	// table, without running further cleanup.
	Abort
)

// ExitCode is the process status matching the termination.
func (t Termination) ExitCode() int {
	if t == Abort {
		return 1
	}
	return 0
}

// Result is what an effect hands to the output layer.
// A nil Table means nothing is emitted.
type Result struct {
	Table       *output.Table
	Termination Termination
}

// Names describes how an effect is invoked from the command line.
type Names struct {
	Name        string
	Description string
	Aliases     []string
}

// Env carries the collaborators every effect needs.
type Env struct {
	Repo   core.Repository
	Format output.Format
	Logger *slog.Logger
}

func (env Env) load(ctx context.Context, stack string) ([]core.Item, error) {
	items, err := env.Repo.Load(ctx, stack)
	if err != nil && env.Logger != nil {
		env.Logger.Debug("stack not loaded", "stack", stack, "error", err)
	}
	return items, err
}

// Effect is a single read-only query against a stack.
type Effect interface {
	Names() Names
	Run(ctx context.Context, env Env) Result
}

// ===== Peek =====

// Peek shows the top item.
type Peek struct {
	Stack string
}

func (Peek) Names() Names {
	return Names{Name: "peek", Description: "Show the current item", Aliases: []string{"show"}}
}

func (p Peek) Run(ctx context.Context, env Env) Result {
	items, err := env.load(ctx, p.Stack)
	if err != nil || len(items) == 0 {
		return Result{}
	}

	table := output.NewTable("position", "item")
	table.Add(TopLabel, items[len(items)-1].Contents)
	return Result{Table: table}
}

// ===== ListAll / Head / Tail =====

// listRange is the shared path for every listing effect.
func listRange(ctx context.Context, env Env, stack string, r Range) Result {
	if env.Format.IsSilent() {
		return Result{}
	}

	items, err := env.load(ctx, stack)
	if err != nil {
		return Result{}
	}

	table := output.NewTable("position", "item", "created")
	table.Rows = Rows(Select(items, r), env.Format)
	return Result{Table: table}
}

// ListAll lists every item, most recent first.
type ListAll struct {
	Stack string
}

func (ListAll) Names() Names {
	return Names{Name: "list", Description: "List all items", Aliases: []string{"ls", "snoop", "all"}}
}

// Range returns the window ListAll shows.
func (ListAll) Range() Range {
	return Range{Start: 0, Limit: NoLimit}
}

func (l ListAll) Run(ctx context.Context, env Env) Result {
	return listRange(ctx, env, l.Stack, l.Range())
}

// Head lists the N most recent items.
type Head struct {
	Stack string
	// N is the number of items; nil means HeadDefaultLimit.
	N *int
}

func (Head) Names() Names {
	return Names{Name: "head", Description: "List the first N items", Aliases: []string{"top", "first"}}
}

// Range returns the window Head shows.
func (h Head) Range() Range {
	return Range{Start: 0, Limit: limitOr(h.N, HeadDefaultLimit)}
}

func (h Head) Run(ctx context.Context, env Env) Result {
	return listRange(ctx, env, h.Stack, h.Range())
}

// Tail lists the N oldest items.
type Tail struct {
	Stack string
	// N is the number of items; nil means TailDefaultLimit.
	N *int
}

func (Tail) Names() Names {
	return Names{Name: "tail", Description: "List the last N items", Aliases: []string{"bottom", "last"}}
}

// Range returns the window Tail shows.
func (t Tail) Range() Range {
	return Range{Limit: limitOr(t.N, TailDefaultLimit), FromEnd: true}
}

func (t Tail) Run(ctx context.Context, env Env) Result {
	return listRange(ctx, env, t.Stack, t.Range())
}

func limitOr(n *int, fallback int) int {
	if n == nil {
		return fallback
	}
	return max(*n, 0)
}

// ===== Count =====

// Count prints the number of items in the stack.
type Count struct {
	Stack string
}

func (Count) Names() Names {
	return Names{Name: "count", Description: "Print the total number of items in the stack", Aliases: []string{"size", "length"}}
}

func (c Count) Run(ctx context.Context, env Env) Result {
	items, err := env.load(ctx, c.Stack)
	if err != nil {
		return Result{}
	}

	table := output.NewTable("items")
	table.Add(strconv.Itoa(len(items)))
	return Result{Table: table}
}

// ===== IsEmpty =====

// IsEmpty reports whether the stack has no items. A non-empty stack also
// aborts the process with a non-zero status, so shell loops such as
//
//	while ! pilha -t todo is-empty; do ...; done
//
// can drain a stack.
//
// A stack that cannot be loaded is reported as empty.
type IsEmpty struct {
	Stack string
}

func (IsEmpty) Names() Names {
	return Names{
		Name:        "is-empty",
		Description: `"true" if stack has zero items, "false" (and nonzero exit code) if the stack does have items`,
		Aliases:     []string{"empty"},
	}
}

func (e IsEmpty) Run(ctx context.Context, env Env) Result {
	table := output.NewTable("empty")

	items, err := env.load(ctx, e.Stack)
	if err == nil && len(items) > 0 {
		table.Add("false")
		return Result{Table: table, Termination: Abort}
	}

	table.Add("true")
	return Result{Table: table}
}

// Effects returns one zero-valued instance of every effect, in help order.
func Effects() []Effect {
	return []Effect{Peek{}, ListAll{}, Head{}, Tail{}, Count{}, IsEmpty{}}
}

// Lookup builds the effect registered under name or one of its aliases.
// n is only used by Head and Tail.
func Lookup(name, stack string, n *int) (Effect, bool) {
	for _, eff := range Effects() {
		names := eff.Names()
		if names.Name != name && !slices.Contains(names.Aliases, name) {
			continue
		}
		switch eff.(type) {
		case Peek:
			return Peek{Stack: stack}, true
		case ListAll:
			return ListAll{Stack: stack}, true
		case Head:
			return Head{Stack: stack, N: n}, true
		case Tail:
			return Tail{Stack: stack, N: n}, true
		case Count:
			return Count{Stack: stack}, true
		case IsEmpty:
			return IsEmpty{Stack: stack}, true
		}
	}
	return nil, false
}
