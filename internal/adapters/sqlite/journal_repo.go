package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/dispatchboard/internal/ctxutil"
	"github.com/example/dispatchboard/internal/ports/secondary"
)

// JournalRepository implements secondary.ActionJournal with SQLite.
type JournalRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewJournalRepository creates a new SQLite action journal.
func NewJournalRepository(db *sql.DB) *JournalRepository {
	return &JournalRepository{db: db, now: time.Now}
}

// Append records an executed write. ID, timestamp, operator and request id
// are filled from the context when the caller left them empty.
func (r *JournalRepository) Append(ctx context.Context, entry *secondary.JournalEntry) error {
	if entry.Kind == "" {
		return fmt.Errorf("journal entry kind is required")
	}
	if entry.Outcome != secondary.OutcomeOK && entry.Outcome != secondary.OutcomeFailed {
		return fmt.Errorf("invalid journal outcome %q", entry.Outcome)
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = r.now()
	}
	if entry.Operator == "" {
		entry.Operator = ctxutil.OperatorFromContext(ctx)
	}
	if entry.RequestID == "" {
		entry.RequestID = ctxutil.RequestIDFromContext(ctx)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO action_journal (id, timestamp, operator, request_id, kind, squad_id, mission_id, detail, outcome, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Timestamp.UTC(), nullString(entry.Operator), nullString(entry.RequestID), entry.Kind,
		nullInt(entry.SquadID), nullInt(entry.MissionID), nullString(entry.Detail), entry.Outcome, nullString(entry.Error),
	)
	if err != nil {
		return fmt.Errorf("failed to append journal entry: %w", err)
	}
	return nil
}

// List retrieves journal entries, newest first.
func (r *JournalRepository) List(ctx context.Context, filters secondary.JournalFilters) ([]*secondary.JournalEntry, error) {
	query := "SELECT id, timestamp, operator, request_id, kind, squad_id, mission_id, detail, outcome, error FROM action_journal WHERE 1=1"
	args := []any{}

	if filters.Kind != "" {
		query += " AND kind = ?"
		args = append(args, filters.Kind)
	}
	if filters.SquadID != 0 {
		query += " AND squad_id = ?"
		args = append(args, filters.SquadID)
	}
	if filters.MissionID != 0 {
		query += " AND mission_id = ?"
		args = append(args, filters.MissionID)
	}
	if filters.FailedOnly {
		query += " AND outcome = ?"
		args = append(args, secondary.OutcomeFailed)
	}

	query += " ORDER BY timestamp DESC, rowid DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.JournalEntry
	for rows.Next() {
		var (
			operator, requestID, detail, errText sql.NullString
			squadID, missionID                   sql.NullInt64
		)
		entry := &secondary.JournalEntry{}
		if err := rows.Scan(&entry.ID, &entry.Timestamp, &operator, &requestID, &entry.Kind,
			&squadID, &missionID, &detail, &entry.Outcome, &errText); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entry.Operator = operator.String
		entry.RequestID = requestID.String
		entry.SquadID = int(squadID.Int64)
		entry.MissionID = int(missionID.Int64)
		entry.Detail = detail.String
		entry.Error = errText.String
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// PruneOlderThan deletes entries older than the given number of days.
func (r *JournalRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	cutoff := r.now().AddDate(0, 0, -days).UTC()
	result, err := r.db.ExecContext(ctx, "DELETE FROM action_journal WHERE timestamp < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune journal: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(n), nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}

var _ secondary.ActionJournal = (*JournalRepository)(nil)
