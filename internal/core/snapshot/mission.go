package snapshot

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// MissionStatus is the lifecycle state of a mission.
type MissionStatus string

const (
	MissionRunning     MissionStatus = "Laufend"
	MissionCompleted   MissionStatus = "Abgeschlossen"
	MissionCancelled   MissionStatus = "Storniert"
	MissionNoOperation MissionStatus = "Intervention unterblieben"
)

// Field names a mission attribute that can be edited inline.
type Field string

const (
	FieldNotes          Field = "notes"
	FieldDescription    Field = "description"
	FieldLocation       Field = "location"
	FieldReason         Field = "reason"
	FieldAlarmingEntity Field = "alarming_entity"
	FieldMissionNumber  Field = "mission_number"
)

// GraceFields are the fields whose local edits survive incoming polls for
// the grace window.
var GraceFields = []Field{FieldNotes, FieldDescription, FieldLocation}

// ParseField converts a field name into a Field.
func ParseField(name string) (Field, error) {
	switch f := Field(name); f {
	case FieldNotes, FieldDescription, FieldLocation, FieldReason, FieldAlarmingEntity, FieldMissionNumber:
		return f, nil
	}
	return "", fmt.Errorf("field %q is not editable", name)
}

// EditStamps records the time of the last local write per field.
// Client-only; never serialized to the backend.
type EditStamps map[Field]time.Time

// Mission is the cached copy of a backend mission.
type Mission struct {
	ID              int           `json:"id"`
	MissionNumber   string        `json:"mission_number"`
	Status          MissionStatus `json:"status"`
	Location        string        `json:"location"`
	InitialLocation string        `json:"initial_location"`
	Reason          string        `json:"reason"`
	AlarmingEntity  string        `json:"alarming_entity"`
	Description     string        `json:"description"`
	Notes           string        `json:"notes"`
	Outcome         string        `json:"outcome"`
	ArmID           string        `json:"arm_id"`
	ArmType         string        `json:"arm_type"`
	ArmNotes        string        `json:"arm_notes"`
	NacaScore       string        `json:"naca_score"`
	SquadIDs        []int         `json:"squad_ids"`
	Squads          []SquadRef    `json:"squads"`
	CreatedAt       time.Time     `json:"created_at"`

	Edits EditStamps `json:"-"`
}

// Closed reports whether the mission no longer binds its squads.
func (m Mission) Closed() bool {
	switch m.Status {
	case MissionCompleted, MissionCancelled, MissionNoOperation:
		return true
	}
	return false
}

// HasSquad reports whether squadID is listed in the mission's squad_ids.
func (m Mission) HasSquad(squadID int) bool {
	return slices.Contains(m.SquadIDs, squadID)
}

// DisplayNumber returns the mission number, falling back to the id.
func (m Mission) DisplayNumber() string {
	return displayNumber(m.MissionNumber, m.ID)
}

// Field returns the current value of an editable field.
func (m Mission) Field(f Field) (string, bool) {
	switch f {
	case FieldNotes:
		return m.Notes, true
	case FieldDescription:
		return m.Description, true
	case FieldLocation:
		return m.Location, true
	case FieldReason:
		return m.Reason, true
	case FieldAlarmingEntity:
		return m.AlarmingEntity, true
	case FieldMissionNumber:
		return m.MissionNumber, true
	}
	return "", false
}

// SetField overwrites an editable field. It returns false for fields that
// cannot be edited inline.
func (m *Mission) SetField(f Field, v string) bool {
	switch f {
	case FieldNotes:
		m.Notes = v
	case FieldDescription:
		m.Description = v
	case FieldLocation:
		m.Location = v
	case FieldReason:
		m.Reason = v
	case FieldAlarmingEntity:
		m.AlarmingEntity = v
	case FieldMissionNumber:
		m.MissionNumber = v
	default:
		return false
	}
	return true
}

// Clone returns a deep copy of the mission.
func (m Mission) Clone() Mission {
	m.SquadIDs = append([]int(nil), m.SquadIDs...)
	m.Squads = append([]SquadRef(nil), m.Squads...)
	if m.Edits != nil {
		edits := make(EditStamps, len(m.Edits))
		for k, v := range m.Edits {
			edits[k] = v
		}
		m.Edits = edits
	}
	return m
}

// CloneMissions deep-copies a mission list.
func CloneMissions(in []Mission) []Mission {
	if in == nil {
		return nil
	}
	out := make([]Mission, len(in))
	for i, m := range in {
		out[i] = m.Clone()
	}
	return out
}

// IsArmOutcome reports whether an outcome is a hand-off to another
// transport means.
func IsArmOutcome(outcome string) bool {
	return outcome == "ARM" || strings.HasPrefix(outcome, "ARM ") || strings.HasPrefix(outcome, "Übergeben")
}

func displayNumber(number string, id int) string {
	if number != "" {
		return number
	}
	return fmt.Sprintf("%d", id)
}
