// Package reconcile merges freshly fetched missions with the client's local
// mission list.
// This is part of the Functional Core - no I/O, only pure functions.
package reconcile

import (
	"time"

	"github.com/example/dispatchboard/internal/core/snapshot"
)

// DefaultGraceWindow is how long a local edit wins over server values.
const DefaultGraceWindow = 5000 * time.Millisecond

// ActiveEdit describes the field currently holding input focus, as reported
// by the UI layer. Value is the literal text in the editor.
type ActiveEdit struct {
	MissionID int
	Field     snapshot.Field
	Value     string
}

// Options parameterizes a merge.
type Options struct {
	GraceWindow time.Duration
}

func (o Options) grace() time.Duration {
	if o.GraceWindow <= 0 {
		return DefaultGraceWindow
	}
	return o.GraceWindow
}

// Reconcile returns the merged mission list.
//
// The incoming list is authoritative except for:
//   - the field under active focus, which takes the editor's literal value;
//   - grace fields edited locally less than the grace window ago, which keep
//     the local value and carry the edit stamp forward.
//
// Neither input is mutated. Local edits for missions missing from incoming
// are dropped.
func Reconcile(previous, incoming []snapshot.Mission, now time.Time, active *ActiveEdit, opts Options) []snapshot.Mission {
	merged := snapshot.CloneMissions(incoming)
	if merged == nil {
		merged = []snapshot.Mission{}
	}

	if active != nil {
		for i := range merged {
			if merged[i].ID == active.MissionID {
				merged[i].SetField(active.Field, active.Value)
				break
			}
		}
	}

	local := make(map[int]snapshot.Mission, len(previous))
	for _, m := range previous {
		local[m.ID] = m
	}

	for i := range merged {
		// Stamps never come from the server.
		merged[i].Edits = nil

		prev, ok := local[merged[i].ID]
		if !ok || len(prev.Edits) == 0 {
			continue
		}
		for _, f := range snapshot.GraceFields {
			stamp, edited := prev.Edits[f]
			if !edited {
				continue
			}
			if !WithinGrace(stamp, now, opts) {
				continue
			}
			if stamp.After(now) {
				stamp = now
			}
			if active == nil || active.MissionID != merged[i].ID || active.Field != f {
				v, _ := prev.Field(f)
				merged[i].SetField(f, v)
			}
			if merged[i].Edits == nil {
				merged[i].Edits = make(snapshot.EditStamps, len(snapshot.GraceFields))
			}
			merged[i].Edits[f] = stamp
		}
	}
	return merged
}

// WithinGrace reports whether an edit stamped at t is still protected at now.
func WithinGrace(t, now time.Time, opts Options) bool {
	if t.IsZero() {
		return false
	}
	if t.After(now) {
		return true
	}
	return now.Sub(t) < opts.grace()
}
