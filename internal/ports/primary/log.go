package primary

import (
	"context"

	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/ports/secondary"
)

// LogService defines the primary port for the audit trail and the local journal.
type LogService interface {
	// AddEntry records a free-text event on the backend.
	AddEntry(ctx context.Context, details string) error

	// Changes returns the backend change feed, newest first.
	Changes(ctx context.Context, limit int) ([]snapshot.LogEntry, error)

	// Journal lists locally journaled writes.
	Journal(ctx context.Context, filters secondary.JournalFilters) ([]*secondary.JournalEntry, error)

	// PruneJournal deletes journal entries older than the given number of days.
	PruneJournal(ctx context.Context, olderThanDays int) (int, error)
}
