// Package effects defines effect types as data structures representing I/O operations.
// This is the foundation of the Functional Core / Imperative Shell pattern.
// Effects are pure data - they describe what should happen, not how.
package effects

import (
	"fmt"

	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/core/status"
)

// Effect is the base interface for all effects.
// Effects represent I/O operations as data that can be interpreted by the shell.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// LogEffect represents a logging operation.
type LogEffect struct {
	Level   string
	Message string
	Fields  map[string]any
}

func (e LogEffect) EffectType() string { return "log" }

// StatusWriteEffect sets a squad status on the backend.
type StatusWriteEffect struct {
	SquadID int
	Status  status.Status
}

func (e StatusWriteEffect) EffectType() string { return "status_write" }

func (e StatusWriteEffect) String() string {
	return fmt.Sprintf("squad %d -> %s", e.SquadID, e.Status)
}

// MissionUpdateEffect applies a partial update to a mission.
type MissionUpdateEffect struct {
	MissionID int
	Patch     snapshot.MissionPatch
	Reason    string // short description for the journal
}

func (e MissionUpdateEffect) EffectType() string { return "mission_update" }

func (e MissionUpdateEffect) String() string {
	return fmt.Sprintf("mission %d: %s", e.MissionID, e.Reason)
}

// SquadUpdateEffect applies a partial update to a squad.
type SquadUpdateEffect struct {
	SquadID int
	Patch   snapshot.SquadPatch
	Reason  string
}

func (e SquadUpdateEffect) EffectType() string { return "squad_update" }

func (e SquadUpdateEffect) String() string {
	return fmt.Sprintf("squad %d: %s", e.SquadID, e.Reason)
}

// RefetchEffect requests a full snapshot reload.
type RefetchEffect struct {
	Reason string
}

func (e RefetchEffect) EffectType() string { return "refetch" }

// AlertEffect surfaces a message to the operator.
type AlertEffect struct {
	Message string
}

func (e AlertEffect) EffectType() string { return "alert" }

// CompositeEffect holds multiple effects to be executed in sequence.
type CompositeEffect struct {
	Effects []Effect
}

func (e CompositeEffect) EffectType() string { return "composite" }

// NoEffect represents an operation that produces no side effects.
type NoEffect struct{}

func (e NoEffect) EffectType() string { return "none" }

// HasWrite reports whether any effect in effs writes to the backend.
func HasWrite(effs []Effect) bool {
	for _, e := range effs {
		switch typed := e.(type) {
		case StatusWriteEffect, MissionUpdateEffect, SquadUpdateEffect:
			return true
		case CompositeEffect:
			if HasWrite(typed.Effects) {
				return true
			}
		}
	}
	return false
}
