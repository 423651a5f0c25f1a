// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import (
	"context"
	"time"

	"github.com/example/dispatchboard/internal/core/projection"
	"github.com/example/dispatchboard/internal/core/snapshot"
)

// DashboardService defines the primary port for reading the board.
type DashboardService interface {
	// Refresh fetches a snapshot and merges it into the store.
	Refresh(ctx context.Context) (*RefreshResult, error)

	// Board projects the current snapshot for display.
	Board(now time.Time) projection.Board

	// Snapshot returns a copy of the current snapshot, or nil before the first refresh.
	Snapshot() *snapshot.Snapshot

	// WarmFromCache installs the newest cached snapshot.
	// Returns false when nothing was cached.
	WarmFromCache(ctx context.Context) (bool, error)
}

// RefreshResult contains the outcome of one fetch-and-merge.
type RefreshResult struct {
	Sequence  uint64
	Stale     bool // a newer response was already applied
	Preserved int  // local edits kept within the grace window
	Repairs   []string
}
