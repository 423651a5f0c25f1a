// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"time"

	"github.com/example/dispatchboard/internal/core/snapshot"
)

// SnapshotCache defines the secondary port for the local copy of the last
// merged snapshot, used to render the board while the backend is unreachable.
type SnapshotCache interface {
	// Save stores the snapshot applied under the given sequence number.
	Save(ctx context.Context, rec *CachedSnapshot) error

	// Load returns the newest cached snapshot for a session.
	// Returns (nil, nil) when nothing is cached.
	Load(ctx context.Context, sessionID string) (*CachedSnapshot, error)

	// Prune keeps only the newest keep entries per session.
	Prune(ctx context.Context, keep int) (int, error)
}

// CachedSnapshot represents a snapshot as stored in the cache.
type CachedSnapshot struct {
	SessionID string
	Sequence  uint64
	Snapshot  *snapshot.Snapshot
	SavedAt   time.Time
}
