package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/pilha/internal/platform"
	"github.com/aretw0/pilha/pkg/adapters/fs"
	"github.com/aretw0/pilha/pkg/output"
)

var (
	verbose    bool
	quiet      bool
	stackName  string
	dataDir    string
	formatName string
	configPath string
)

// session is resolved once per invocation, before any subcommand runs.
type session struct {
	repo   *fs.Repository
	stack  string
	format output.Format
	logger *slog.Logger
}

var current *session

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pilha",
	Short: "A stack of notes for the command line",
	Long: `Pilha keeps named stacks of short notes on disk.
The most recent item is the top ("Now"); list, head and tail show windows
of the stack, most recent first.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
		slog.SetDefault(logger)

		s, err := openSession(logger)
		if err != nil {
			return err
		}
		current = s
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bare "pilha" shows the top item.
		return runNamed(cmd, "peek", nil)
	},
}

func openSession(logger *slog.Logger) (*session, error) {
	cfg, err := platform.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	noise := ""
	switch {
	case verbose:
		noise = "verbose"
	case quiet:
		noise = "quiet"
	}

	cfg = cfg.WithEnv(os.Getenv).With(platform.Overrides{
		DataDir: dataDir,
		Stack:   stackName,
		Format:  formatName,
		Noise:   noise,
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	format, err := output.Parse(cfg.Format)
	if err != nil {
		return nil, err
	}
	switch cfg.Noise {
	case "quiet":
		format.Noise = output.Quiet
	case "verbose":
		format.Noise = output.Verbose
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("error getting working directory: %w", err)
	}

	repo, err := platform.Open(cfg.ResolveDataDir(wd),
		platform.WithLogger(logger),
		platform.WithStorage(cfg.Storage),
		platform.WithStrict(cfg.Strict),
	)
	if err != nil {
		return nil, fmt.Errorf("error opening stacks: %w", err)
	}

	return &session{repo: repo, stack: cfg.Stack, format: format, logger: logger}, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fatal("pilha", err)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Verbose output and debug logging")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Print only item contents in human output (ignored with --verbose)")
	flags.StringVarP(&stackName, "stack", "t", "", "Stack to query (default \"pilha\")")
	flags.StringVar(&dataDir, "dir", "", "Directory holding the stacks")
	flags.StringVarP(&formatName, "format", "f", "", "Output format: human, simple, json, json-compact, csv, tsv, yaml, silent")
	flags.StringVar(&configPath, "config", "", "Path to config.toml")
}
