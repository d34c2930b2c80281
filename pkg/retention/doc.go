// Package retention keeps a bounded ledger of generated graph artifacts.
//
// # Overview
//
// Every successful conversion touches its protein id in the ledger. The
// ledger is an ordered list, oldest first, holding at most Capacity ids
// (default 15). Touching an id already present moves it to the end;
// touching a new id appends it and, once the list is over capacity, evicts
// ids from the front. Evicted ids are returned to the caller, which owns
// deletion of the backing files. This package never touches artifacts.
//
// The persisted form is a single JSON object:
//
//	{"last_n_protein_ids": ["P04637", "Q9Y6K9"]}
//
// # Stores
//
// The ledger is shared by every conversion, so each read-modify-write cycle
// runs under an exclusive lock held by a [Store]:
//
//   - [FileStore]: JSON file guarded by an in-process mutex and an advisory
//     file lock on <path>.lock
//   - [RedisStore]: JSON value guarded by a SET NX lock with a TTL
//   - [MongoStore]: versioned document updated by compare-and-swap
//
// All stores release their lock on every exit path. A crashed process
// cannot leave the ledger locked: advisory locks die with the process and
// Redis locks expire.
//
// # Usage
//
//	store, err := retention.NewFileStore("generated/ledger.json", 5*time.Second)
//	if err != nil {
//	    return err
//	}
//	c := retention.New(store, retention.DefaultCapacity)
//	evicted, err := c.Touch(ctx, "P04637")
//
// Failures carry the LEDGER_ERROR code from pkg/errors.
package retention
