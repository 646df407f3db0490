// Package fs stores stacks as one JSON or YAML file per stack in a directory.
package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/pilha/pkg/core"
)

// DefaultStorage is the extension used for stacks that do not exist yet.
const DefaultStorage = ".json"

// Repository implements core.Repository on top of a data directory.
type Repository struct {
	Path        string
	config      Config
	serializers map[string]Serializer

	mu            sync.RWMutex
	watchers      int
	lastLoad      *time.Time
	lastLoadStack string
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path      string
	Storage   string // extension for new stacks, e.g. ".json" or ".yaml"
	MustExist bool
	ReadOnly  bool
	Strict    bool
	Logger    *slog.Logger
	// Serializers overrides or extends DefaultSerializers, keyed by extension.
	Serializers map[string]Serializer
	// ErrorHandler receives watcher failures that have no caller to return to.
	ErrorHandler func(error)
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.Storage == "" {
		config.Storage = DefaultStorage
	}
	if !strings.HasPrefix(config.Storage, ".") {
		config.Storage = "." + config.Storage
	}

	serializers := DefaultSerializers(config.Strict)
	for ext, s := range config.Serializers {
		serializers[ext] = s
	}

	return &Repository{
		Path:        config.Path,
		config:      config,
		serializers: serializers,
	}
}

// Initialize ensures the data directory exists.
func (r *Repository) Initialize(ctx context.Context) error {
	if _, ok := r.serializers[r.config.Storage]; !ok {
		return fmt.Errorf("no serializer for storage format %q", r.config.Storage)
	}

	if r.config.MustExist || r.config.ReadOnly {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("data path does not exist: %s", r.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("data path is not a directory: %s", r.Path)
		}
		return nil
	}

	if err := os.MkdirAll(r.Path, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// validateName rejects names that would escape the data directory.
func validateName(stack string) error {
	if stack == "" || strings.TrimSpace(stack) != stack {
		return fmt.Errorf("%w: %q", core.ErrInvalidStackName, stack)
	}
	if strings.Contains(stack, `\`) || path.IsAbs(stack) || filepath.IsAbs(stack) {
		return fmt.Errorf("%w: %q", core.ErrInvalidStackName, stack)
	}
	for _, part := range strings.Split(stack, "/") {
		if part == "" || part == "." || part == ".." || strings.HasPrefix(part, ".") {
			return fmt.Errorf("%w: %q", core.ErrInvalidStackName, stack)
		}
	}
	return nil
}

// extensions returns the known extensions in lookup order.
func (r *Repository) extensions() []string {
	exts := make([]string, 0, len(r.serializers))
	for _, ext := range extensionOrder {
		if _, ok := r.serializers[ext]; ok {
			exts = append(exts, ext)
		}
	}
	var custom []string
	for ext := range r.serializers {
		if !slices.Contains(extensionOrder, ext) {
			custom = append(custom, ext)
		}
	}
	sort.Strings(custom)
	return append(exts, custom...)
}

// locate finds the file backing a stack.
func (r *Repository) locate(stack string) (string, string, error) {
	if err := validateName(stack); err != nil {
		return "", "", err
	}
	base := filepath.Join(r.Path, filepath.FromSlash(stack))
	for _, ext := range r.extensions() {
		info, err := os.Stat(base + ext)
		if err == nil && !info.IsDir() {
			return base + ext, ext, nil
		}
	}
	return "", "", fmt.Errorf("%w: %s", core.ErrStackNotFound, stack)
}

// Load reads the full snapshot of a stack, oldest item first.
func (r *Repository) Load(ctx context.Context, stack string) ([]core.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filename, ext, err := r.locate(stack)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read stack %s: %w", stack, err)
	}

	s, err := r.serializers[ext].Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse stack %s: %w", stack, err)
	}

	r.recordLoad(stack)
	if r.config.Logger != nil {
		r.config.Logger.Debug("stack loaded", "stack", stack, "file", filename, "items", len(s.Items))
	}
	return s.Items, nil
}

// Save replaces the stored items of a stack. Existing stacks keep their file
// format; new stacks use the configured storage format.
func (r *Repository) Save(ctx context.Context, stack string, items []core.Item) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	filename, ext, err := r.locate(stack)
	if errors.Is(err, core.ErrStackNotFound) {
		ext = r.config.Storage
		filename = filepath.Join(r.Path, filepath.FromSlash(stack)) + ext
	} else if err != nil {
		return err
	}

	s, ok := r.serializers[ext]
	if !ok {
		return fmt.Errorf("no serializer for storage format %q", ext)
	}

	data, err := s.Serialize(core.Stack{Items: items})
	if err != nil {
		return fmt.Errorf("failed to serialize stack %s: %w", stack, err)
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	if err := writeFileAtomic(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write stack %s: %w", stack, err)
	}

	if r.config.Logger != nil {
		r.config.Logger.Debug("stack saved", "stack", stack, "file", filename, "items", len(items))
	}
	return nil
}

// Names returns every stored stack name, sorted. Nested stacks use "/".
func (r *Repository) Names(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})

	err := filepath.WalkDir(r.Path, func(p string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		name := d.Name()
		if p != r.Path && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || strings.HasPrefix(name, TempFilePrefix) {
			return nil
		}

		ext := filepath.Ext(name)
		if _, ok := r.serializers[ext]; !ok {
			return nil
		}

		rel, err := filepath.Rel(r.Path, p)
		if err != nil {
			return err
		}
		seen[filepath.ToSlash(strings.TrimSuffix(rel, ext))] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list stacks: %w", err)
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (r *Repository) recordLoad(stack string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.lastLoad = &now
	r.lastLoadStack = stack
}

var (
	_ core.Repository = (*Repository)(nil)
	_ core.Writer     = (*Repository)(nil)
	_ core.Lister     = (*Repository)(nil)
	_ core.Watchable  = (*Repository)(nil)
)
