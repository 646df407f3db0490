package core

import "context"

// Repository defines the read contract the query engine depends on.
// Adhering to this interface keeps the queries independent of the
// underlying storage mechanism.
type Repository interface {
	// Load returns the full snapshot of a stack, oldest item first.
	Load(ctx context.Context, stack string) ([]Item, error)
}

// Writer is implemented by repositories that can persist a stack.
type Writer interface {
	// Save replaces the stored items of a stack.
	Save(ctx context.Context, stack string, items []Item) error
}

// Lister is implemented by repositories that can enumerate their stacks.
type Lister interface {
	// Names returns every stored stack name, sorted.
	Names(ctx context.Context) ([]string, error)
}

// Watchable defines an interface for repositories that support observing changes.
type Watchable interface {
	// Watch emits an Event every time the given stack changes on storage.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context, stack string) (<-chan Event, error)
}
