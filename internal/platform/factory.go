// Package platform wires configuration, options and the storage adapter
// together for the command line.
package platform

import (
	"context"

	"github.com/aretw0/pilha/pkg/adapters/fs"
)

// Open prepares the stack store rooted at path.
//
//	repo, err := platform.Open("/home/me/.local/share/pilha", platform.WithStorage("yaml"))
func Open(path string, opts ...Option) (*fs.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	repo := fs.NewRepository(fs.Config{
		Path:         path,
		Storage:      o.storage,
		MustExist:    o.mustExist,
		ReadOnly:     o.readOnly,
		Strict:       o.strict,
		Logger:       o.logger,
		ErrorHandler: o.errorHandler,
	})

	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}

	if o.logger != nil {
		o.logger.Debug("store opened", "path", path, "storage", o.storage, "read_only", o.readOnly)
	}
	return repo, nil
}
