package primary

import (
	"context"
	"time"

	"github.com/example/dispatchboard/internal/core/mission"
	"github.com/example/dispatchboard/internal/core/snapshot"
)

// MissionService defines the primary port for mission operations.
type MissionService interface {
	// CreateMission creates a new mission.
	CreateMission(ctx context.Context, req CreateMissionRequest) (*CreateMissionResponse, error)

	// EditField changes one inline-editable field. Grace fields are applied
	// locally first so polls within the grace window keep the new value.
	EditField(ctx context.Context, req EditFieldRequest) error

	// BeginEdit marks a field as being typed in; polls keep its value until EndEdit.
	BeginEdit(missionID int, field snapshot.Field) error

	// EndEdit clears the active edit.
	EndEdit()

	// AssignSquad adds a squad to a mission.
	AssignSquad(ctx context.Context, missionID, squadID int) error

	// CompleteMission closes a mission with an outcome.
	CompleteMission(ctx context.Context, req CompleteMissionRequest) error

	// DeleteMission deletes a mission; a reason is required.
	DeleteMission(ctx context.Context, req DeleteMissionRequest) error

	// MissionLogs returns the audit trail of a mission.
	MissionLogs(ctx context.Context, missionID int) ([]snapshot.LogEntry, error)
}

// CreateMissionRequest contains parameters for creating a mission.
type CreateMissionRequest struct {
	MissionNumber  string // empty: next free number
	Location       string
	Reason         string
	AlarmingEntity string
	Description    string
	Notes          string
	SquadIDs       []int
}

// CreateMissionResponse contains the result of creating a mission.
type CreateMissionResponse struct {
	MissionID     int
	MissionNumber string
}

// EditFieldRequest contains parameters for an inline edit.
type EditFieldRequest struct {
	MissionID int
	Field     snapshot.Field
	Value     string
	Now       time.Time
}

// CompleteMissionRequest contains parameters for completing a mission.
type CompleteMissionRequest struct {
	MissionID int
	mission.CompletionRequest
}

// DeleteMissionRequest contains parameters for deleting a mission.
type DeleteMissionRequest struct {
	MissionID int
	Reason    string
}
