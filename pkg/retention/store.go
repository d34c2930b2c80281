package retention

import "context"

// Store persists a Ledger and serializes updates to it.
//
// Update loads the ledger (an empty one if none exists), calls fn while
// holding an exclusive lock, and persists the result if fn returns nil. The
// lock is released on every exit path. Implementations must be safe for
// concurrent use.
type Store interface {
	Update(ctx context.Context, fn func(*Ledger) error) error
	Load(ctx context.Context) (*Ledger, error)
	Reset(ctx context.Context) error
	Close() error
}
