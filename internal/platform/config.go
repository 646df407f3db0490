package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// Environment variables read by WithEnv.
const (
	EnvDir    = "PILHA_DIR"
	EnvStack  = "PILHA_STACK"
	EnvFormat = "PILHA_FORMAT"
)

// DefaultStack is the stack used when none is configured.
const DefaultStack = "pilha"

// Config is the user configuration, usually read from config.toml.
type Config struct {
	DataDir string `toml:"data_dir"`
	Stack   string `toml:"stack" validate:"required,excludesall=\\"`
	Format  string `toml:"format" validate:"required,oneof=human simple json json-compact csv tsv yaml silent"`
	Noise   string `toml:"noise" validate:"omitempty,oneof=quiet normal verbose"`
	Storage string `toml:"storage" validate:"required,oneof=json yaml"`
	Strict  bool   `toml:"strict"`
}

// Overrides carries values that beat both the environment and the file.
// Empty fields are left alone.
type Overrides struct {
	DataDir string
	Stack   string
	Format  string
	Noise   string
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Stack:   DefaultStack,
		Format:  "human",
		Noise:   "normal",
		Storage: "json",
	}
}

// DefaultConfigPath is $XDG_CONFIG_HOME/pilha/config.toml (or the platform
// equivalent).
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pilha", "config.toml")
}

// DefaultDataDir is $XDG_DATA_HOME/pilha, falling back to ~/.local/share/pilha.
func DefaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "pilha")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "pilha")
	}
	return filepath.Join(home, ".local", "share", "pilha")
}

// LoadConfig reads the TOML file at path on top of DefaultConfig.
// With an empty path the default location is used, and a missing default
// file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
		if path == "" {
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return cfg, nil
}

// WithEnv applies the PILHA_* variables found through getenv.
func (c Config) WithEnv(getenv func(string) string) Config {
	if v := getenv(EnvDir); v != "" {
		c.DataDir = v
	}
	if v := getenv(EnvStack); v != "" {
		c.Stack = v
	}
	if v := getenv(EnvFormat); v != "" {
		c.Format = v
	}
	return c
}

// With applies command-line overrides.
func (c Config) With(o Overrides) Config {
	if o.DataDir != "" {
		c.DataDir = o.DataDir
	}
	if o.Stack != "" {
		c.Stack = o.Stack
	}
	if o.Format != "" {
		c.Format = o.Format
	}
	if o.Noise != "" {
		c.Noise = o.Noise
	}
	return c
}

// Validate checks the final configuration.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ResolveDataDir picks the directory holding the stacks: the configured one,
// else the .pilha directory of an enclosing project, else DefaultDataDir.
func (c Config) ResolveDataDir(workDir string) string {
	if c.DataDir != "" {
		return c.DataDir
	}
	if root, err := FindRoot(workDir); err == nil {
		return filepath.Join(root, RootMarker)
	}
	return DefaultDataDir()
}
