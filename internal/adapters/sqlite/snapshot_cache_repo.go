// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/ports/secondary"
)

// SnapshotCacheRepository implements secondary.SnapshotCache with SQLite.
type SnapshotCacheRepository struct {
	db *sql.DB
}

// NewSnapshotCacheRepository creates a new SQLite snapshot cache.
func NewSnapshotCacheRepository(db *sql.DB) *SnapshotCacheRepository {
	return &SnapshotCacheRepository{db: db}
}

// Save stores a merged snapshot as JSON.
func (r *SnapshotCacheRepository) Save(ctx context.Context, rec *secondary.CachedSnapshot) error {
	if rec == nil || rec.Snapshot == nil {
		return fmt.Errorf("snapshot must not be nil")
	}
	payload, err := json.Marshal(rec.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if rec.SavedAt.IsZero() {
		rec.SavedAt = time.Now()
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO snapshot_cache (session_id, sequence, payload, saved_at) VALUES (?, ?, ?, ?)",
		rec.SessionID, int64(rec.Sequence), string(payload), rec.SavedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to cache snapshot: %w", err)
	}
	return nil
}

// Load returns the newest snapshot cached for the session, or nil.
func (r *SnapshotCacheRepository) Load(ctx context.Context, sessionID string) (*secondary.CachedSnapshot, error) {
	var (
		seq     int64
		payload string
		savedAt time.Time
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT sequence, payload, saved_at FROM snapshot_cache WHERE session_id = ? ORDER BY saved_at DESC, id DESC LIMIT 1",
		sessionID,
	).Scan(&seq, &payload, &savedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cached snapshot: %w", err)
	}

	snap := &snapshot.Snapshot{}
	if err := json.Unmarshal([]byte(payload), snap); err != nil {
		return nil, fmt.Errorf("failed to decode cached snapshot: %w", err)
	}

	return &secondary.CachedSnapshot{
		SessionID: sessionID,
		Sequence:  uint64(seq),
		Snapshot:  snap,
		SavedAt:   savedAt,
	}, nil
}

// Prune keeps the newest keep entries of every session and deletes the rest.
func (r *SnapshotCacheRepository) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 1 {
		keep = 1
	}
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM snapshot_cache
		WHERE id NOT IN (
			SELECT s.id FROM snapshot_cache s
			WHERE s.session_id = snapshot_cache.session_id
			ORDER BY s.saved_at DESC, s.id DESC
			LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshot cache: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(n), nil
}

var _ secondary.SnapshotCache = (*SnapshotCacheRepository)(nil)
