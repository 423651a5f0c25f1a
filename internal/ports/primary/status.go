package primary

import (
	"context"

	"github.com/example/dispatchboard/internal/core/status"
	"github.com/example/dispatchboard/internal/core/transition"
)

// StatusService defines the primary port for the squad status workflow.
// A request may leave a prompt or conflict pending; the follow-up methods
// answer it. Answering with nothing pending is a no-op.
type StatusService interface {
	// RequestStatus starts a status change for a squad.
	RequestStatus(ctx context.Context, squadID int, target status.Status) (transition.Decision, error)

	// ChooseAmbulanz answers a destination prompt with an Ambulanz unit.
	ChooseAmbulanz(ctx context.Context, ambulanzID int) (transition.Decision, error)

	// ChooseCustom answers a destination prompt with free text.
	ChooseCustom(ctx context.Context, destination string) (transition.Decision, error)

	// ResolveConflict answers the current open-mission conflict.
	ResolveConflict(ctx context.Context, r transition.Resolution) (transition.Decision, error)

	// Cancel abandons whatever is pending.
	Cancel(ctx context.Context) transition.Decision
}
