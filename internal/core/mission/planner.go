package mission

import (
	"fmt"

	"github.com/example/dispatchboard/internal/core/effects"
	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/core/status"
)

// Plan is a list of effects produced by a mission planner.
type Plan struct {
	Noop    bool
	Writes  []effects.Effect
	Refetch bool
}

// Effects returns all effects as a flat slice for execution.
// A refetch always comes last.
func (p Plan) Effects() []effects.Effect {
	result := make([]effects.Effect, 0, len(p.Writes)+1)
	result = append(result, p.Writes...)
	if p.Refetch {
		result = append(result, effects.RefetchEffect{Reason: "mission write"})
	}
	return result
}

// GenerateFieldEditPlan plans persisting an inline field edit.
func GenerateFieldEditPlan(missionID int, f snapshot.Field, v string) Plan {
	return Plan{
		Writes: []effects.Effect{effects.MissionUpdateEffect{
			MissionID: missionID,
			Patch:     snapshot.FieldPatch(f, v),
			Reason:    fmt.Sprintf("set %s", f),
		}},
		Refetch: true,
	}
}

// AssignPlanInput contains the inputs needed to assign a squad to a mission.
// All values are pre-fetched by the caller - no I/O in the planner.
type AssignPlanInput struct {
	Mission snapshot.Mission
	Squad   snapshot.Squad
}

// GenerateAssignPlan plans adding a squad to a mission roster.
// Trupps move to zBO (3), Ambulanz units to occupied (4).
// Assigning an already listed squad is a no-op.
func GenerateAssignPlan(input AssignPlanInput) Plan {
	if input.Mission.HasSquad(input.Squad.ID) {
		return Plan{Noop: true}
	}
	ids := append(append([]int{}, input.Mission.SquadIDs...), input.Squad.ID)

	next := status.EnRouteIncident
	if input.Squad.IsAmbulanz() {
		next = status.AtIncident
	}
	return Plan{
		Writes: []effects.Effect{
			effects.MissionUpdateEffect{
				MissionID: input.Mission.ID,
				Patch:     snapshot.SquadIDsPatch(ids),
				Reason:    fmt.Sprintf("assign squad %d", input.Squad.ID),
			},
			effects.StatusWriteEffect{SquadID: input.Squad.ID, Status: next},
		},
		Refetch: true,
	}
}

// GenerateCompletionPlan plans completing a mission with an outcome.
func GenerateCompletionPlan(missionID int, req CompletionRequest) Plan {
	return Plan{
		Writes: []effects.Effect{effects.MissionUpdateEffect{
			MissionID: missionID,
			Patch:     CompletionPatch(req),
			Reason:    fmt.Sprintf("complete (%s)", req.Outcome),
		}},
		Refetch: true,
	}
}
