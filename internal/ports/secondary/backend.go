package secondary

import (
	"context"

	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/core/status"
)

// Backend defines the secondary port for the dispatch server.
// Write responses are never trusted as state; callers refetch the snapshot.
type Backend interface {
	// FetchSnapshot loads the full board (config, squads, missions, options).
	FetchSnapshot(ctx context.Context) (*snapshot.Snapshot, error)

	// SetStatus writes a squad status.
	SetStatus(ctx context.Context, squadID int, s status.Status) error

	// CreateMission creates a mission and returns its id.
	CreateMission(ctx context.Context, m snapshot.NewMission) (int, error)

	// UpdateMission applies a partial update to a mission.
	UpdateMission(ctx context.Context, missionID int, patch snapshot.MissionPatch) error

	// DeleteMission soft-deletes a mission with a reason.
	DeleteMission(ctx context.Context, missionID int, reason string) error

	// MissionLogs returns the audit trail of one mission.
	MissionLogs(ctx context.Context, missionID int) ([]snapshot.LogEntry, error)

	// CreateSquad creates a squad and returns its id.
	CreateSquad(ctx context.Context, s snapshot.NewSquad) (int, error)

	// UpdateSquad applies a partial update to a squad.
	UpdateSquad(ctx context.Context, squadID int, patch snapshot.SquadPatch) error

	// DeleteSquad removes a squad.
	DeleteSquad(ctx context.Context, squadID int) error

	// ReorderSquads stores the display order of squads.
	ReorderSquads(ctx context.Context, order []int) error

	// StartShift creates the shift configuration.
	StartShift(ctx context.Context, settings snapshot.ShiftSettings) error

	// UpdateShift changes the running shift configuration.
	UpdateShift(ctx context.Context, settings snapshot.ShiftSettings) error

	// EndShift closes the shift and returns the export document.
	EndShift(ctx context.Context) (*ExportFile, error)

	// Changes returns the session's change feed, newest first.
	Changes(ctx context.Context) ([]snapshot.LogEntry, error)

	// AddLog records a free-text event in the audit trail.
	AddLog(ctx context.Context, details string) error
}

// ExportFile is a document produced by the backend.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ExportSink defines the secondary port for storing shift exports.
type ExportSink interface {
	// Put stores the file and returns where it was written.
	Put(ctx context.Context, file *ExportFile) (string, error)
}

// Alerter surfaces failures to the operator.
type Alerter interface {
	Alert(message string)
}
