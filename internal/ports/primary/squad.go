package primary

import (
	"context"

	"github.com/example/dispatchboard/internal/core/snapshot"
)

// SquadService defines the primary port for squad roster operations.
type SquadService interface {
	// CreateSquad adds a squad to the shift.
	CreateSquad(ctx context.Context, req snapshot.NewSquad) (int, error)

	// UpdateSquad edits name, qualification, type or service numbers.
	UpdateSquad(ctx context.Context, squadID int, patch snapshot.SquadPatch) error

	// DeleteSquad removes a squad.
	DeleteSquad(ctx context.Context, squadID int) error

	// SetLocation sets or, with an empty location, clears the location override.
	SetLocation(ctx context.Context, squadID int, location string) error

	// Reorder stores the display order; every squad must be listed once.
	Reorder(ctx context.Context, order []int) error
}
