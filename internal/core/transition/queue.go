package transition

import (
	"fmt"

	"github.com/example/dispatchboard/internal/core/snapshot"
)

// Resolution is the operator's answer for one conflicting mission.
type Resolution string

const (
	// Remove strips the squad from the mission before the status is set.
	Remove Resolution = "remove"
	// Keep leaves the mission roster untouched.
	Keep Resolution = "keep"
)

// ParseResolution converts operator input into a Resolution.
func ParseResolution(v string) (Resolution, error) {
	switch Resolution(v) {
	case Remove, Keep:
		return Resolution(v), nil
	}
	return "", fmt.Errorf("unknown resolution %q (want remove or keep)", v)
}

// ConflictQueue holds the open missions a squad must be released from,
// in the order they were discovered. Missions are presented one at a time.
type ConflictQueue struct {
	pending []snapshot.Mission
	current *snapshot.Mission
}

// Enqueue appends a mission to the back of the queue.
func (q *ConflictQueue) Enqueue(m snapshot.Mission) {
	q.pending = append(q.pending, m.Clone())
}

// Next moves the head of the queue into the current slot.
// Returns false once the queue is drained.
func (q *ConflictQueue) Next() (snapshot.Mission, bool) {
	if len(q.pending) == 0 {
		q.current = nil
		return snapshot.Mission{}, false
	}
	head := q.pending[0]
	q.pending = q.pending[1:]
	q.current = &head
	return head, true
}

// Current returns the mission awaiting a resolution, if any.
func (q *ConflictQueue) Current() (snapshot.Mission, bool) {
	if q.current == nil {
		return snapshot.Mission{}, false
	}
	return *q.current, true
}

// Remaining is the number of missions still waiting behind the current one.
func (q *ConflictQueue) Remaining() int {
	return len(q.pending)
}

// Reset empties the queue.
func (q *ConflictQueue) Reset() {
	q.pending = nil
	q.current = nil
}
