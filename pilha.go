package pilha

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/pilha/internal/platform"
	"github.com/aretw0/pilha/pkg/adapters/fs"
	"github.com/aretw0/pilha/pkg/core"
	"github.com/aretw0/pilha/pkg/output"
	"github.com/aretw0/pilha/pkg/query"
)

// Version of the module.
const Version = "0.3.0"

// --- Configuration ---

// Option defines a functional option for opening a store.
type Option = platform.Option

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStorage selects the file format for new stacks ("json" or "yaml").
func WithStorage(format string) Option {
	return platform.WithStorage(format)
}

// WithReadOnly enables read-only mode.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithMustExist ensures the data directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithStrict rejects stack files carrying unknown fields.
func WithStrict(strict bool) Option {
	return platform.WithStrict(strict)
}

// --- Factory ---

// Open prepares the stack store rooted at path.
func Open(path string, opts ...Option) (*fs.Repository, error) {
	return platform.Open(path, opts...)
}

// FindRoot looks upwards from startDir for a project with a .pilha directory.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// --- Queries ---

// Run executes a query and writes its table to w.
//
// The returned termination is Abort when the query asks the process to end
// with a non-zero status (is-empty on a non-empty stack); Run itself never
// exits, so library callers decide what to do with it.
func Run(ctx context.Context, repo core.Repository, eff query.Effect, f output.Format, w io.Writer) (query.Termination, error) {
	return RunWithLogger(ctx, repo, eff, f, w, nil)
}

// RunWithLogger is Run with a logger for swallowed load failures.
func RunWithLogger(ctx context.Context, repo core.Repository, eff query.Effect, f output.Format, w io.Writer, logger *slog.Logger) (query.Termination, error) {
	res := eff.Run(ctx, query.Env{Repo: repo, Format: f, Logger: logger})
	if err := f.Log(w, res.Table); err != nil {
		return query.Continue, err
	}
	return res.Termination, nil
}
