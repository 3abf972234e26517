// Package tokens is the secure store for session credentials. Values are
// sealed at rest; only the credential service reads or writes them.
package tokens

import "context"

type Repository interface {
	// Get returns the stored value for key, or (nil, nil) when absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Reset atomically replaces the whole store with the single given entry.
	Reset(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
