package port

import (
	"context"
)

// UpdateFunc receives the current value of a key (found=false when the key is absent)
// and returns the next value. write=false leaves storage untouched.
type UpdateFunc func(current string, found bool) (next string, write bool, err error)

// Storage is a per-owner key-value store, the server-side counterpart of browser local storage.
type Storage interface {
	GetItem(ctx context.Context, ownerID, key string) (string, bool, error)
	SetItem(ctx context.Context, ownerID, key, value string) error
	RemoveItem(ctx context.Context, ownerID, key string) error
	// UpdateItem runs fn and stores its result atomically for (ownerID, key).
	// Adapters with optimistic concurrency may call fn more than once.
	UpdateItem(ctx context.Context, ownerID, key string, fn UpdateFunc) error
	Ping(ctx context.Context) error
}
