package domain

import "context"

// Database defines lifecycle operations for the underlying database.
// Implementations own their schema and bring it up to date in EnsureSchema.
type Database interface {
	EnsureSchema(ctx context.Context) error
	Close() error
}
