package mission

import (
	"time"

	"github.com/example/dispatchboard/internal/core/snapshot"
)

// LocalEditResult describes how a local inline edit changed a mission.
type LocalEditResult struct {
	Changed            bool
	InitialLocationSet bool
	Stamp              time.Time
	PreviousStamp      time.Time
}

// ApplyLocalEdit writes v into field f of m the way the console does before
// the backend confirms it:
//   - a grace field gets its edit stamp set to now;
//   - the first location change records the old value as InitialLocation.
//
// The caller passes the current time to enable testing.
func ApplyLocalEdit(m *snapshot.Mission, f snapshot.Field, v string, now time.Time) LocalEditResult {
	var result LocalEditResult

	old, ok := m.Field(f)
	if !ok {
		return result
	}
	if f == snapshot.FieldLocation && m.InitialLocation == "" && old != v {
		m.InitialLocation = old
		result.InitialLocationSet = true
	}
	m.SetField(f, v)
	result.Changed = old != v

	if !isGraceField(f) {
		return result
	}
	if m.Edits == nil {
		m.Edits = make(snapshot.EditStamps, len(snapshot.GraceFields))
	}
	if prev, had := m.Edits[f]; had {
		result.PreviousStamp = prev
	}
	m.Edits[f] = now
	result.Stamp = now
	return result
}

func isGraceField(f snapshot.Field) bool {
	for _, g := range snapshot.GraceFields {
		if g == f {
			return true
		}
	}
	return false
}

// CompletionRequest carries the operator's completion input.
type CompletionRequest struct {
	Outcome   string
	ArmID     string
	ArmType   string
	ArmNotes  string
	NacaScore string
}

// CompletionPatch builds the backend patch for completing a mission.
// ARM fields are only sent for ARM outcomes and are cleared otherwise.
func CompletionPatch(req CompletionRequest) snapshot.MissionPatch {
	completed := snapshot.MissionCompleted
	outcome := req.Outcome
	patch := snapshot.MissionPatch{
		Status:  &completed,
		Outcome: &outcome,
	}
	armID, armType, armNotes := "", "", ""
	if snapshot.IsArmOutcome(req.Outcome) {
		armID, armType, armNotes = req.ArmID, req.ArmType, req.ArmNotes
	}
	patch.ArmID = &armID
	patch.ArmType = &armType
	patch.ArmNotes = &armNotes
	if req.NacaScore != "" {
		naca := req.NacaScore
		patch.NacaScore = &naca
	}
	return patch
}
