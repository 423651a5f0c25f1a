package app

import (
	"testing"

	"github.com/example/dispatchboard/internal/core/snapshot"
)

func TestFocusTracker(t *testing.T) {
	f := NewFocusTracker()
	if f.Active() != nil {
		t.Fatal("expected no focus initially")
	}

	f.Update("ignored")
	if f.Active() != nil {
		t.Fatal("Update without Begin must not create focus")
	}

	f.Begin(3, snapshot.FieldNotes, "a")
	f.Update("ab")
	active := f.Active()
	if active == nil || active.MissionID != 3 || active.Field != snapshot.FieldNotes || active.Value != "ab" {
		t.Fatalf("unexpected focus %+v", active)
	}

	// Active returns a copy.
	active.Value = "mutated"
	if f.Active().Value != "ab" {
		t.Error("caller mutated tracker state")
	}

	f.End()
	if f.Active() != nil {
		t.Error("expected focus cleared")
	}

	var nilTracker *FocusTracker
	if nilTracker.Active() != nil {
		t.Error("nil tracker must report no focus")
	}
}

func TestFocusTracker_UpdateField(t *testing.T) {
	f := NewFocusTracker()
	f.Begin(3, snapshot.FieldNotes, "a")

	f.UpdateField(4, snapshot.FieldNotes, "other mission")
	f.UpdateField(3, snapshot.FieldLocation, "other field")
	if got := f.Active().Value; got != "a" {
		t.Errorf("Value = %q, want unchanged %q", got, "a")
	}

	f.UpdateField(3, snapshot.FieldNotes, "b")
	if got := f.Active().Value; got != "b" {
		t.Errorf("Value = %q, want %q", got, "b")
	}
}
