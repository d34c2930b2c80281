package retention

import (
	"context"
	"time"

	apperrors "github.com/matzehuels/isograph/pkg/errors"
	"github.com/matzehuels/isograph/pkg/observability"
)

// Cache is the retention bookkeeping front end. It is safe for concurrent
// use when its Store is.
type Cache struct {
	store    Store
	capacity int
}

// New returns a Cache over store. A capacity below one uses DefaultCapacity.
func New(store Store, capacity int) *Cache {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Cache{store: store, capacity: capacity}
}

// Capacity returns the maximum number of retained ids.
func (c *Cache) Capacity() int { return c.capacity }

// Touch records id as the most recently generated artifact and returns the
// ids that fell out of the ledger, oldest first. Under a steady capacity at
// most one id is evicted. The ledger is left unchanged on error.
func (c *Cache) Touch(ctx context.Context, id string) ([]string, error) {
	if id == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "protein id cannot be empty")
	}
	if err := apperrors.ValidateProteinToken(id); err != nil {
		return nil, err
	}

	start := time.Now()
	var evicted []string
	var size int
	err := c.store.Update(ctx, func(l *Ledger) error {
		evicted = l.Touch(id, c.capacity)
		size = len(l.IDs)
		return nil
	})
	if err != nil {
		evicted = nil
		err = ledgerError(err, "touch %s", id)
	}
	observability.Retention().OnTouch(ctx, id, size, evicted, time.Since(start), err)
	return evicted, err
}

// Snapshot returns the retained ids, oldest first.
func (c *Cache) Snapshot(ctx context.Context) ([]string, error) {
	l, err := c.store.Load(ctx)
	if err != nil {
		return nil, ledgerError(err, "load ledger")
	}
	return l.IDs, nil
}

// Clear empties the ledger. Artifacts on disk are left alone.
func (c *Cache) Clear(ctx context.Context) error {
	if err := c.store.Reset(ctx); err != nil {
		return ledgerError(err, "reset ledger")
	}
	return nil
}

// Close releases the underlying store.
func (c *Cache) Close() error { return c.store.Close() }

// ledgerError wraps err as LEDGER_ERROR unless it already carries a code.
func ledgerError(err error, format string, args ...any) error {
	if apperrors.GetCode(err) != "" {
		return err
	}
	return apperrors.Wrap(apperrors.ErrCodeLedger, err, format, args...)
}
