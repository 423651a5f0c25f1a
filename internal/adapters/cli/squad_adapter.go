package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/ports/primary"
)

// SquadAdapter translates CLI squad commands to service calls.
type SquadAdapter struct {
	service primary.SquadService
	out     io.Writer
}

// NewSquadAdapter creates a new SquadAdapter with the given service.
func NewSquadAdapter(service primary.SquadService, out io.Writer) *SquadAdapter {
	return &SquadAdapter{
		service: service,
		out:     out,
	}
}

// Add creates a squad.
func (a *SquadAdapter) Add(ctx context.Context, req snapshot.NewSquad) error {
	id, err := a.service.CreateSquad(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created squad %s (id %d)\n", req.Name, id)
	return nil
}

// Edit applies a partial update.
func (a *SquadAdapter) Edit(ctx context.Context, squadID int, patch snapshot.SquadPatch) error {
	if err := a.service.UpdateSquad(ctx, squadID, patch); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Squad %d updated\n", squadID)
	return nil
}

// Delete removes a squad.
func (a *SquadAdapter) Delete(ctx context.Context, squadID int) error {
	if err := a.service.DeleteSquad(ctx, squadID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Squad %d deleted\n", squadID)
	return nil
}

// Locate sets the location override; an empty location clears it.
func (a *SquadAdapter) Locate(ctx context.Context, squadID int, location string) error {
	if err := a.service.SetLocation(ctx, squadID, location); err != nil {
		return err
	}

	if location == "" {
		fmt.Fprintf(a.out, "✓ Squad %d location cleared\n", squadID)
	} else {
		fmt.Fprintf(a.out, "✓ Squad %d at %s\n", squadID, location)
	}
	return nil
}

// Reorder stores the display order.
func (a *SquadAdapter) Reorder(ctx context.Context, order []int) error {
	if err := a.service.Reorder(ctx, order); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Squad order saved: %v\n", order)
	return nil
}
