package app

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	coremission "github.com/example/dispatchboard/internal/core/mission"
	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/core/status"
	"github.com/example/dispatchboard/internal/ports/primary"
)

func newMissionEnv(t *testing.T) (*testEnv, *MissionServiceImpl) {
	t.Helper()
	env := newTestEnv(fixtureBoard()).load()
	return env, NewMissionService(env.backend, env.store, env.executor, env.focus, nil)
}

func TestMissionService_CreateMission(t *testing.T) {
	env, svc := newMissionEnv(t)

	resp, err := svc.CreateMission(context.Background(), primary.CreateMissionRequest{
		Location: " Bar 3 ",
		Reason:   "Intox",
		SquadIDs: []int{2},
	})
	if err != nil {
		t.Fatalf("CreateMission failed: %v", err)
	}
	if resp.MissionNumber != "003" {
		t.Errorf("expected next number 003, got %s", resp.MissionNumber)
	}
	if resp.MissionID != 101 {
		t.Errorf("expected id from backend, got %d", resp.MissionID)
	}
	if got := env.backend.created[0]; got.Location != "Bar 3" || got.MissionNumber != "003" {
		t.Errorf("unexpected payload %+v", got)
	}
	if got := env.journal.kinds(); !reflect.DeepEqual(got, []string{"mission_create:ok"}) {
		t.Errorf("journal = %v", got)
	}
}

func TestMissionService_CreateMissionGuards(t *testing.T) {
	tests := []struct {
		name    string
		board   *snapshot.Snapshot
		req     primary.CreateMissionRequest
		wantErr string
	}{
		{
			name:    "no shift",
			board:   &snapshot.Snapshot{},
			req:     primary.CreateMissionRequest{Location: "a", Reason: "b"},
			wantErr: "no shift in progress",
		},
		{
			name:    "missing reason",
			board:   fixtureBoard(),
			req:     primary.CreateMissionRequest{Location: "a"},
			wantErr: "location and reason are required",
		},
		{
			name:    "unknown squad",
			board:   fixtureBoard(),
			req:     primary.CreateMissionRequest{Location: "a", Reason: "b", SquadIDs: []int{42}},
			wantErr: "squad 42 not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(tt.board).load()
			svc := NewMissionService(env.backend, env.store, env.executor, env.focus, nil)

			_, err := svc.CreateMission(context.Background(), tt.req)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
			if len(env.backend.callLog()) != 0 {
				t.Errorf("expected no backend writes, got %v", env.backend.callLog())
			}
		})
	}
}

func TestMissionService_EditField(t *testing.T) {
	env, svc := newMissionEnv(t)
	now := time.Now()

	err := svc.EditField(context.Background(), primary.EditFieldRequest{MissionID: 10, Field: snapshot.FieldLocation, Value: "Zelt 2", Now: now})
	if err != nil {
		t.Fatalf("EditField failed: %v", err)
	}

	patch := env.backend.missionPatch[10]
	if patch.Location == nil || *patch.Location != "Zelt 2" {
		t.Errorf("expected location patch, got %+v", patch)
	}
	m, _ := env.store.Current().FindMission(10)
	if m.Location != "Zelt 2" {
		t.Errorf("expected local location to survive the refetch, got %q", m.Location)
	}
	if pending := env.store.PendingEdits(now); len(pending) != 1 {
		t.Errorf("expected 1 pending edit, got %d", len(pending))
	}
}

func TestMissionService_EditFieldUnchangedIsNoop(t *testing.T) {
	env, svc := newMissionEnv(t)

	err := svc.EditField(context.Background(), primary.EditFieldRequest{MissionID: 10, Field: snapshot.FieldNotes, Value: "server"})
	if err != nil {
		t.Fatalf("EditField failed: %v", err)
	}
	if len(env.backend.callLog()) != 0 {
		t.Errorf("expected no write for unchanged value, got %v", env.backend.callLog())
	}
}

func TestMissionService_EditFieldGuards(t *testing.T) {
	_, svc := newMissionEnv(t)
	ctx := context.Background()

	if err := svc.EditField(ctx, primary.EditFieldRequest{MissionID: 99, Field: snapshot.FieldNotes, Value: "x"}); err == nil {
		t.Error("expected error for unknown mission")
	}
	if err := svc.EditField(ctx, primary.EditFieldRequest{MissionID: 10, Field: "outcome", Value: "x"}); err == nil {
		t.Error("expected error for non-editable field")
	}
}

func TestMissionService_BeginEndEdit(t *testing.T) {
	env, svc := newMissionEnv(t)

	if err := svc.BeginEdit(10, snapshot.FieldNotes); err != nil {
		t.Fatalf("BeginEdit failed: %v", err)
	}
	active := env.focus.Active()
	if active == nil || active.MissionID != 10 || active.Value != "server" {
		t.Fatalf("unexpected focus %+v", active)
	}

	svc.EndEdit()
	if env.focus.Active() != nil {
		t.Error("expected focus cleared")
	}

	if err := svc.BeginEdit(99, snapshot.FieldNotes); err == nil {
		t.Error("expected error for unknown mission")
	}
}

func TestMissionService_EditFieldWhileFocused(t *testing.T) {
	env, svc := newMissionEnv(t)
	ctx := context.Background()

	if err := svc.BeginEdit(10, snapshot.FieldNotes); err != nil {
		t.Fatalf("BeginEdit failed: %v", err)
	}
	err := svc.EditField(ctx, primary.EditFieldRequest{MissionID: 10, Field: snapshot.FieldNotes, Value: "neu", Now: time.Now()})
	if err != nil {
		t.Fatalf("EditField failed: %v", err)
	}

	m, _ := env.store.Current().FindMission(10)
	if m.Notes != "neu" {
		t.Errorf("notes after refetch = %q, want %q", m.Notes, "neu")
	}
	if active := env.focus.Active(); active == nil || active.Value != "neu" {
		t.Errorf("focus = %+v, want value %q", active, "neu")
	}

	svc.EndEdit()
	if _, err := env.dashboard.Refresh(ctx); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	m, _ = env.store.Current().FindMission(10)
	if m.Notes != "neu" {
		t.Errorf("notes after poll within grace = %q, want %q", m.Notes, "neu")
	}
}

func TestMissionService_AssignSquad(t *testing.T) {
	tests := []struct {
		name       string
		missionID  int
		squadID    int
		wantStatus status.Status
		wantErr    bool
		wantCalls  int
	}{
		{name: "trupp goes to 3", missionID: 10, squadID: 2, wantStatus: status.EnRouteIncident, wantCalls: 2},
		{name: "ambulanz goes to 4", missionID: 10, squadID: 5, wantStatus: status.AtIncident, wantCalls: 2},
		{name: "already assigned", missionID: 10, squadID: 1, wantCalls: 0},
		{name: "closed mission", missionID: 11, squadID: 2, wantErr: true},
		{name: "unknown squad", missionID: 10, squadID: 77, wantErr: true},
		{name: "unknown mission", missionID: 77, squadID: 2, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, svc := newMissionEnv(t)

			err := svc.AssignSquad(context.Background(), tt.missionID, tt.squadID)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AssignSquad error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := len(env.backend.callLog()); got != tt.wantCalls {
				t.Errorf("expected %d calls, got %v", tt.wantCalls, env.backend.callLog())
			}
			if tt.wantStatus != "" && env.backend.statuses[tt.squadID] != tt.wantStatus {
				t.Errorf("expected status %s, got %s", tt.wantStatus, env.backend.statuses[tt.squadID])
			}
		})
	}
}

func TestMissionService_CompleteMission(t *testing.T) {
	env, svc := newMissionEnv(t)

	err := svc.CompleteMission(context.Background(), primary.CompleteMissionRequest{
		MissionID: 10,
		CompletionRequest: coremission.CompletionRequest{
			Outcome: "ARM", ArmID: "RTW 1", ArmType: "RTW", NacaScore: "3",
		},
	})
	if err != nil {
		t.Fatalf("CompleteMission failed: %v", err)
	}
	patch := env.backend.missionPatch[10]
	if patch.Status == nil || *patch.Status != snapshot.MissionCompleted {
		t.Errorf("expected completed status, got %+v", patch.Status)
	}
	if patch.ArmID == nil || *patch.ArmID != "RTW 1" {
		t.Errorf("expected ARM id, got %+v", patch.ArmID)
	}
}

func TestMissionService_CompleteMissionGuards(t *testing.T) {
	_, svc := newMissionEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  primary.CompleteMissionRequest
	}{
		{"closed", primary.CompleteMissionRequest{MissionID: 11, CompletionRequest: coremission.CompletionRequest{Outcome: "Belassen"}}},
		{"no outcome", primary.CompleteMissionRequest{MissionID: 10}},
		{"arm without id", primary.CompleteMissionRequest{MissionID: 10, CompletionRequest: coremission.CompletionRequest{Outcome: "ARM"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.CompleteMission(ctx, tt.req); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestMissionService_DeleteMission(t *testing.T) {
	env, svc := newMissionEnv(t)
	ctx := context.Background()

	if err := svc.DeleteMission(ctx, primary.DeleteMissionRequest{MissionID: 10, Reason: " "}); err == nil {
		t.Error("expected error without reason")
	}
	if err := svc.DeleteMission(ctx, primary.DeleteMissionRequest{MissionID: 10, Reason: "Duplikat"}); err != nil {
		t.Fatalf("DeleteMission failed: %v", err)
	}
	if env.backend.deleted[10] != "Duplikat" {
		t.Errorf("expected deletion with reason, got %v", env.backend.deleted)
	}

	env.backend.failing["DeleteMission"] = errBackendDown
	if err := svc.DeleteMission(ctx, primary.DeleteMissionRequest{MissionID: 10, Reason: "again"}); !errors.Is(err, errBackendDown) {
		t.Errorf("expected backend error, got %v", err)
	}
}

func TestMissionService_MissionLogs(t *testing.T) {
	_, svc := newMissionEnv(t)

	entries, err := svc.MissionLogs(context.Background(), 10)
	if err != nil {
		t.Fatalf("MissionLogs failed: %v", err)
	}
	if len(entries) != 1 || *entries[0].MissionID != 10 {
		t.Errorf("unexpected entries %+v", entries)
	}
}
