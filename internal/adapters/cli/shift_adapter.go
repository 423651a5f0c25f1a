package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/ports/primary"
)

// ShiftAdapter translates CLI shift commands to service calls.
type ShiftAdapter struct {
	service primary.ShiftService
	out     io.Writer
}

// NewShiftAdapter creates a new ShiftAdapter with the given service.
func NewShiftAdapter(service primary.ShiftService, out io.Writer) *ShiftAdapter {
	return &ShiftAdapter{
		service: service,
		out:     out,
	}
}

// Start starts a shift.
func (a *ShiftAdapter) Start(ctx context.Context, settings snapshot.ShiftSettings) error {
	if err := a.service.StartShift(ctx, settings); err != nil {
		return err
	}

	location := ""
	if settings.Location != nil {
		location = *settings.Location
	}
	fmt.Fprintf(a.out, "✓ Shift started at %s\n", location)
	return nil
}

// Update changes the running shift.
func (a *ShiftAdapter) Update(ctx context.Context, settings snapshot.ShiftSettings) error {
	if err := a.service.UpdateShift(ctx, settings); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "✓ Shift updated")
	return nil
}

// End closes the shift and reports where the export went.
func (a *ShiftAdapter) End(ctx context.Context) error {
	resp, err := a.service.EndShift(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "✓ Shift ended")
	fmt.Fprintf(a.out, "  Export: %s (%d bytes)\n", resp.FileName, resp.Size)
	fmt.Fprintf(a.out, "  Stored at: %s\n", resp.Location)
	return nil
}
