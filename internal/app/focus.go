package app

import (
	"sync"

	"github.com/example/dispatchboard/internal/core/reconcile"
	"github.com/example/dispatchboard/internal/core/snapshot"
)

// FocusTracker remembers the mission field the operator is typing in.
// Merges read it so incoming snapshots never overwrite that field.
type FocusTracker struct {
	mu     sync.Mutex
	active *reconcile.ActiveEdit
}

// NewFocusTracker creates a tracker with no active edit.
func NewFocusTracker() *FocusTracker {
	return &FocusTracker{}
}

// Begin marks a field as focused with its current value.
func (f *FocusTracker) Begin(missionID int, field snapshot.Field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active = &reconcile.ActiveEdit{MissionID: missionID, Field: field, Value: value}
}

// Update replaces the value typed so far. No-op without an active edit.
func (f *FocusTracker) Update(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.active != nil {
		f.active.Value = value
	}
}

// UpdateField replaces the focused value when the focus is on missionID's field.
func (f *FocusTracker) UpdateField(missionID int, field snapshot.Field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.active != nil && f.active.MissionID == missionID && f.active.Field == field {
		f.active.Value = value
	}
}

// End clears the focus.
func (f *FocusTracker) End() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active = nil
}

// Active returns a copy of the focused field, or nil.
func (f *FocusTracker) Active() *reconcile.ActiveEdit {
	if f == nil {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.active == nil {
		return nil
	}
	cp := *f.active
	return &cp
}
