// Package store holds the client's last-known backend snapshot together with
// the locally pending mission edits.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/example/dispatchboard/internal/core/mission"
	"github.com/example/dispatchboard/internal/core/reconcile"
	"github.com/example/dispatchboard/internal/core/snapshot"
)

// ErrStaleResponse is returned by Merge when a response older than the last
// applied one arrives.
var ErrStaleResponse = errors.New("stale snapshot response")

// ErrNoSnapshot is returned when an operation needs a snapshot before the
// first merge.
var ErrNoSnapshot = errors.New("no snapshot loaded")

// Store is the Snapshot Store. All methods are safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	snap     *snapshot.Snapshot
	issued   uint64
	applied  uint64
	mergedAt time.Time
	opts     reconcile.Options
}

// New creates an empty store.
func New(opts reconcile.Options) *Store {
	return &Store{opts: opts}
}

// NextSequence reserves the sequence number for a fetch about to be sent.
func (s *Store) NextSequence() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Applied returns the sequence number of the last merged response.
func (s *Store) Applied() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applied
}

// Replace installs a snapshot without reconciliation, e.g. when warming up
// from a local cache. Pending edit stamps are discarded.
func (s *Store) Replace(snap *snapshot.Snapshot) {
	next := snap.Clone()
	if next != nil {
		next.Normalize()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = next
}

// MergeResult reports what a merge did.
type MergeResult struct {
	Sequence  uint64
	Repairs   []string
	Preserved int                // grace-protected fields kept from local state
	Snapshot  *snapshot.Snapshot // copy of the snapshot this merge installed
}

// Merge reconciles an incoming snapshot fetched under seq with the current
// local state. It rejects responses whose sequence is not newer than the last
// applied one with ErrStaleResponse.
func (s *Store) Merge(seq uint64, incoming *snapshot.Snapshot, now time.Time, active *reconcile.ActiveEdit) (MergeResult, error) {
	next := incoming.Clone()
	if next == nil {
		next = &snapshot.Snapshot{}
	}
	repairs := next.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.applied {
		return MergeResult{Sequence: seq}, ErrStaleResponse
	}

	var previous []snapshot.Mission
	if s.snap != nil {
		previous = s.snap.Missions
	}
	next.Missions = reconcile.Reconcile(previous, next.Missions, now, active, s.opts)

	preserved := 0
	for _, m := range next.Missions {
		preserved += len(m.Edits)
	}

	s.snap = next
	s.applied = seq
	s.mergedAt = now
	return MergeResult{Sequence: seq, Repairs: repairs, Preserved: preserved, Snapshot: next.Clone()}, nil
}

// Current returns a deep copy of the current snapshot, or nil before the
// first merge.
func (s *Store) Current() *snapshot.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// MergedAt returns the time of the last successful merge.
func (s *Store) MergedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mergedAt
}

// RecordEdit applies an operator edit to the local copy of a mission before
// the backend has confirmed it. Grace fields are stamped with now so that
// polls arriving within the grace window keep the local value.
func (s *Store) RecordEdit(missionID int, f snapshot.Field, v string, now time.Time) (mission.LocalEditResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		return mission.LocalEditResult{}, ErrNoSnapshot
	}
	for i := range s.snap.Missions {
		if s.snap.Missions[i].ID == missionID {
			return mission.ApplyLocalEdit(&s.snap.Missions[i], f, v, now), nil
		}
	}
	return mission.LocalEditResult{}, fmt.Errorf("mission %d not found", missionID)
}

// PendingEdit is a grace-protected local edit.
type PendingEdit struct {
	MissionID int
	Field     snapshot.Field
	Value     string
	EditedAt  time.Time
}

// PendingEdits lists the local edits still inside the grace window at now.
func (s *Store) PendingEdits(now time.Time) []PendingEdit {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		return nil
	}
	var out []PendingEdit
	for _, m := range s.snap.Missions {
		for _, f := range snapshot.GraceFields {
			at, ok := m.Edits[f]
			if !ok || !reconcile.WithinGrace(at, now, s.opts) {
				continue
			}
			v, _ := m.Field(f)
			out = append(out, PendingEdit{MissionID: m.ID, Field: f, Value: v, EditedAt: at})
		}
	}
	return out
}
