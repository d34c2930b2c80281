package retention

import "slices"

// DefaultCapacity is the number of artifacts retained when no capacity is
// configured.
const DefaultCapacity = 15

// Ledger is the persisted retention record. IDs is ordered oldest first.
type Ledger struct {
	IDs []string `json:"last_n_protein_ids"`
}

// Touch moves id to the most recent slot, appending it if absent, then drops
// the oldest ids until at most capacity remain. The dropped ids are returned
// oldest first. A ledger persisted under a larger capacity is trimmed here.
func (l *Ledger) Touch(id string, capacity int) []string {
	if i := slices.Index(l.IDs, id); i >= 0 {
		l.IDs = slices.Delete(l.IDs, i, i+1)
	}
	l.IDs = append(l.IDs, id)

	if len(l.IDs) <= capacity {
		return nil
	}
	n := len(l.IDs) - capacity
	evicted := slices.Clone(l.IDs[:n])
	l.IDs = slices.Clone(l.IDs[n:])
	return evicted
}

// normalize replaces a null id list with an empty one so the ledger always
// serializes as an array.
func (l *Ledger) normalize() {
	if l.IDs == nil {
		l.IDs = []string{}
	}
}
