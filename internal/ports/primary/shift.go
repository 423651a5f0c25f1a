package primary

import (
	"context"

	"github.com/example/dispatchboard/internal/core/snapshot"
)

// ShiftService defines the primary port for the shift lifecycle.
type ShiftService interface {
	// StartShift creates the shift configuration.
	StartShift(ctx context.Context, settings snapshot.ShiftSettings) error

	// UpdateShift changes the running shift.
	UpdateShift(ctx context.Context, settings snapshot.ShiftSettings) error

	// EndShift closes the shift and stores the export document.
	EndShift(ctx context.Context) (*EndShiftResponse, error)
}

// EndShiftResponse contains the result of ending a shift.
type EndShiftResponse struct {
	FileName string
	Location string // where the export was stored
	Size     int
}
