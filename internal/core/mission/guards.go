package mission

import (
	"fmt"
	"strings"

	"github.com/example/dispatchboard/internal/core/snapshot"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

func deny(format string, args ...any) GuardResult {
	return GuardResult{Allowed: false, Reason: fmt.Sprintf(format, args...)}
}

var allowed = GuardResult{Allowed: true}

// CreateContext provides context for mission creation guards.
type CreateContext struct {
	ShiftActive bool
	Location    string
	Reason      string
}

// CanCreateMission evaluates whether a mission can be created.
// Rule: a shift must be running; location and reason are required.
func CanCreateMission(ctx CreateContext) GuardResult {
	if !ctx.ShiftActive {
		return deny("no shift in progress - start a shift first")
	}
	if strings.TrimSpace(ctx.Location) == "" || strings.TrimSpace(ctx.Reason) == "" {
		return deny("location and reason are required")
	}
	return allowed
}

// EditContext provides context for inline field edits.
type EditContext struct {
	MissionID     int
	MissionExists bool
	Field         snapshot.Field
}

// CanEditField evaluates whether a field can be edited inline.
func CanEditField(ctx EditContext) GuardResult {
	if !ctx.MissionExists {
		return deny("mission %d not found", ctx.MissionID)
	}
	if _, err := snapshot.ParseField(string(ctx.Field)); err != nil {
		return deny("%v", err)
	}
	return allowed
}

// CompleteContext provides context for mission completion guards.
type CompleteContext struct {
	MissionID     int
	MissionExists bool
	AlreadyClosed bool
	Outcome       string
	ArmID         string
	ArmType       string
}

// CanCompleteMission evaluates whether a mission can be completed.
// Rule: an ARM outcome requires the receiving unit's id and type.
func CanCompleteMission(ctx CompleteContext) GuardResult {
	if !ctx.MissionExists {
		return deny("mission %d not found", ctx.MissionID)
	}
	if ctx.AlreadyClosed {
		return deny("mission %d is already closed", ctx.MissionID)
	}
	if strings.TrimSpace(ctx.Outcome) == "" {
		return deny("an outcome is required to complete mission %d", ctx.MissionID)
	}
	if snapshot.IsArmOutcome(ctx.Outcome) && (strings.TrimSpace(ctx.ArmID) == "" || strings.TrimSpace(ctx.ArmType) == "") {
		return deny("ARM outcome requires --arm-id and --arm-type")
	}
	return allowed
}

// DeleteContext provides context for mission deletion guards.
type DeleteContext struct {
	MissionID     int
	MissionExists bool
	Reason        string
}

// CanDeleteMission evaluates whether a mission can be deleted.
// Rule: a deletion reason is mandatory.
func CanDeleteMission(ctx DeleteContext) GuardResult {
	if !ctx.MissionExists {
		return deny("mission %d not found", ctx.MissionID)
	}
	if strings.TrimSpace(ctx.Reason) == "" {
		return deny("a deletion reason is required for mission %d", ctx.MissionID)
	}
	return allowed
}
