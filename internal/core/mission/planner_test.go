package mission

import (
	"testing"

	"github.com/example/dispatchboard/internal/core/effects"
	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/core/status"
)

func TestGenerateAssignPlan_Trupp(t *testing.T) {
	plan := GenerateAssignPlan(AssignPlanInput{
		Mission: snapshot.Mission{ID: 10, SquadIDs: []int{1}},
		Squad:   snapshot.Squad{ID: 2, Type: status.Trupp},
	})

	effs := plan.Effects()
	if len(effs) != 3 {
		t.Fatalf("Effects count = %d, want 3", len(effs))
	}
	update, ok := effs[0].(effects.MissionUpdateEffect)
	if !ok {
		t.Fatalf("first effect = %T, want MissionUpdateEffect", effs[0])
	}
	if got := *update.Patch.SquadIDs; len(got) != 2 || got[1] != 2 {
		t.Errorf("SquadIDs = %v, want [1 2]", got)
	}
	write, ok := effs[1].(effects.StatusWriteEffect)
	if !ok || write.Status != status.EnRouteIncident {
		t.Errorf("second effect = %+v, want status 3", effs[1])
	}
	if _, ok := effs[2].(effects.RefetchEffect); !ok {
		t.Errorf("last effect = %T, want RefetchEffect", effs[2])
	}
}

func TestGenerateAssignPlan_AmbulanzOccupied(t *testing.T) {
	plan := GenerateAssignPlan(AssignPlanInput{
		Mission: snapshot.Mission{ID: 10},
		Squad:   snapshot.Squad{ID: 5, Type: status.Ambulanz},
	})

	write, ok := plan.Writes[1].(effects.StatusWriteEffect)
	if !ok || write.Status != status.AtIncident {
		t.Errorf("status write = %+v, want 4", plan.Writes[1])
	}
}

func TestGenerateAssignPlan_AlreadyAssigned(t *testing.T) {
	plan := GenerateAssignPlan(AssignPlanInput{
		Mission: snapshot.Mission{ID: 10, SquadIDs: []int{2}},
		Squad:   snapshot.Squad{ID: 2},
	})

	if !plan.Noop {
		t.Error("Noop = false, want true")
	}
	if len(plan.Effects()) != 0 {
		t.Errorf("Effects = %v, want none", plan.Effects())
	}
}

func TestGenerateFieldEditPlan(t *testing.T) {
	plan := GenerateFieldEditPlan(3, snapshot.FieldNotes, "Patient stabil")

	effs := plan.Effects()
	if len(effs) != 2 {
		t.Fatalf("Effects count = %d, want 2", len(effs))
	}
	update := effs[0].(effects.MissionUpdateEffect)
	if update.Patch.Notes == nil || *update.Patch.Notes != "Patient stabil" {
		t.Errorf("Patch.Notes = %v", update.Patch.Notes)
	}
	if update.Patch.Location != nil {
		t.Error("patch must only carry the edited field")
	}
}

func TestNextMissionNumber(t *testing.T) {
	tests := []struct {
		name     string
		missions []snapshot.Mission
		want     string
	}{
		{"empty", nil, "001"},
		{"numeric", []snapshot.Mission{{MissionNumber: "007"}, {MissionNumber: "012"}}, "013"},
		{"ignores free text", []snapshot.Mission{{MissionNumber: "A-4"}, {MissionNumber: "2"}}, "003"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextMissionNumber(tt.missions); got != tt.want {
				t.Errorf("NextMissionNumber() = %q, want %q", got, tt.want)
			}
		})
	}
}
