package domain

import "context"

// Store is the durable seam for experiment-list snapshots. Implementations
// persist the structured representation only: a list is reconstructed
// purely from its contained experiments, with no additional container
// state.
type Store interface {
	// SaveList writes the snapshot under id, replacing any previous one.
	SaveList(ctx context.Context, id string, snap Snapshot) error
	// LoadList reads the snapshot stored under id. The boolean reports
	// whether the id was present; absence is not an error.
	LoadList(ctx context.Context, id string) (Snapshot, bool, error)
	// ListIDs returns the stored list identifiers in ascending order.
	ListIDs(ctx context.Context) ([]string, error)
	// DeleteList removes the snapshot stored under id, reporting whether
	// anything was removed.
	DeleteList(ctx context.Context, id string) (bool, error)
}
