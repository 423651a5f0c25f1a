package secondary

import (
	"context"
	"time"
)

// Journal outcomes.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// ActionJournal defines the secondary port for the local record of every
// write the console sent to the backend.
type ActionJournal interface {
	// Append records one executed write.
	Append(ctx context.Context, entry *JournalEntry) error

	// List retrieves journal entries matching the given filters, newest first.
	List(ctx context.Context, filters JournalFilters) ([]*JournalEntry, error)

	// PruneOlderThan deletes entries older than the given number of days.
	PruneOlderThan(ctx context.Context, days int) (int, error)
}

// JournalEntry represents a journal entry as stored in persistence.
type JournalEntry struct {
	ID        string
	Timestamp time.Time
	Operator  string
	RequestID string
	Kind      string // effect type, e.g. status_write
	SquadID   int    // 0 when not squad related
	MissionID int    // 0 when not mission related
	Detail    string
	Outcome   string // OutcomeOK or OutcomeFailed
	Error     string
}

// JournalFilters contains filter options for querying the journal.
type JournalFilters struct {
	Kind       string
	SquadID    int
	MissionID  int
	FailedOnly bool
	Limit      int
}
