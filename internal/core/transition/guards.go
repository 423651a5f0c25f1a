package transition

import (
	"fmt"

	"github.com/example/dispatchboard/internal/core/status"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// StatusContext provides context for status change guards.
type StatusContext struct {
	SquadID     int
	SquadExists bool
	UnitType    status.UnitType
	Target      status.Status
}

// CanChangeStatus evaluates whether a squad may be moved to the target status.
// Rules:
//   - the squad must exist in the current snapshot
//   - the target must be a known status code
//   - Ambulanz units only take 2, NEB and 4
func CanChangeStatus(ctx StatusContext) GuardResult {
	if !ctx.SquadExists {
		return GuardResult{Reason: fmt.Sprintf("squad %d not found", ctx.SquadID)}
	}
	if !ctx.Target.Valid() {
		return GuardResult{Reason: fmt.Sprintf("unknown status %q", ctx.Target)}
	}
	if !status.Allowed(ctx.UnitType, ctx.Target) {
		return GuardResult{Reason: fmt.Sprintf("status %s is not available for %s units", ctx.Target, ctx.UnitType)}
	}
	return GuardResult{Allowed: true}
}
