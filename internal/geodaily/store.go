package geodaily

import "context"

// Store persists the game state as a single document. Load returns a
// private copy the caller may mutate; Save replaces the stored document
// atomically: after a failed Save the previously stored snapshot must
// still be readable.
//
// The game assumes a single active writer. Two processes saving
// concurrently can lose updates; that is an accepted limitation of the
// whole-snapshot model, not something the backends paper over.
type Store interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}
