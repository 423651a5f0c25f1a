package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/dispatchboard/internal/core/effects"
	coremission "github.com/example/dispatchboard/internal/core/mission"
	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/ports/primary"
	"github.com/example/dispatchboard/internal/ports/secondary"
	"github.com/example/dispatchboard/internal/store"
)

// MissionServiceImpl implements the MissionService interface.
type MissionServiceImpl struct {
	backend  secondary.Backend
	store    *store.Store
	executor EffectExecutor
	focus    *FocusTracker
	logger   *zap.Logger
	now      func() time.Time
}

// NewMissionService creates a new MissionService with injected dependencies.
func NewMissionService(backend secondary.Backend, st *store.Store, executor EffectExecutor, focus *FocusTracker, logger *zap.Logger) *MissionServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	if focus == nil {
		focus = NewFocusTracker()
	}
	return &MissionServiceImpl{
		backend:  backend,
		store:    st,
		executor: executor,
		focus:    focus,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateMission creates a new mission. An empty mission number takes the
// next free number on the board.
func (s *MissionServiceImpl) CreateMission(ctx context.Context, req primary.CreateMissionRequest) (*primary.CreateMissionResponse, error) {
	board := s.store.Current()

	guardCtx := coremission.CreateContext{
		ShiftActive: board.ShiftActive(),
		Location:    req.Location,
		Reason:      req.Reason,
	}
	if result := coremission.CanCreateMission(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	number := strings.TrimSpace(req.MissionNumber)
	if number == "" {
		number = coremission.NextMissionNumber(board.Missions)
	}
	for _, id := range req.SquadIDs {
		if _, ok := board.FindSquad(id); !ok {
			return nil, fmt.Errorf("squad %d not found", id)
		}
	}

	payload := snapshot.NewMission{
		MissionNumber:  number,
		Location:       strings.TrimSpace(req.Location),
		Reason:         strings.TrimSpace(req.Reason),
		AlarmingEntity: req.AlarmingEntity,
		Description:    req.Description,
		Notes:          req.Notes,
		SquadIDs:       req.SquadIDs,
	}

	var id int
	err := s.executor.Run(ctx, Action{Kind: "mission_create", Detail: fmt.Sprintf("create mission %s", number)},
		func(ctx context.Context) error {
			var err error
			id, err = s.backend.CreateMission(ctx, payload)
			return err
		})
	if err != nil {
		return nil, fmt.Errorf("failed to create mission: %w", err)
	}
	s.refetch(ctx, "mission created")

	return &primary.CreateMissionResponse{MissionID: id, MissionNumber: number}, nil
}

// EditField applies the edit locally, then writes it. Grace fields keep the
// local value over polls for the grace window.
func (s *MissionServiceImpl) EditField(ctx context.Context, req primary.EditFieldRequest) error {
	board := s.store.Current()
	_, exists := s.findMission(board, req.MissionID)

	guardCtx := coremission.EditContext{
		MissionID:     req.MissionID,
		MissionExists: exists,
		Field:         req.Field,
	}
	if result := coremission.CanEditField(guardCtx); !result.Allowed {
		return result.Error()
	}

	now := req.Now
	if now.IsZero() {
		now = s.now()
	}
	local, err := s.store.RecordEdit(req.MissionID, req.Field, req.Value, now)
	if err != nil {
		return err
	}
	s.focus.UpdateField(req.MissionID, req.Field, req.Value)
	if !local.Changed {
		return nil
	}

	plan := coremission.GenerateFieldEditPlan(req.MissionID, req.Field, req.Value)
	return s.executor.Execute(ctx, plan.Effects())
}

// BeginEdit marks a field as focused; polls keep its value until EndEdit.
func (s *MissionServiceImpl) BeginEdit(missionID int, field snapshot.Field) error {
	m, ok := s.findMission(s.store.Current(), missionID)
	guardCtx := coremission.EditContext{MissionID: missionID, MissionExists: ok, Field: field}
	if result := coremission.CanEditField(guardCtx); !result.Allowed {
		return result.Error()
	}
	value, _ := m.Field(field)
	s.focus.Begin(missionID, field, value)
	return nil
}

// EndEdit clears the active edit.
func (s *MissionServiceImpl) EndEdit() {
	s.focus.End()
}

// AssignSquad adds a squad to a mission and moves it to 3 (Trupp) or 4 (Ambulanz).
func (s *MissionServiceImpl) AssignSquad(ctx context.Context, missionID, squadID int) error {
	board := s.store.Current()
	m, ok := s.findMission(board, missionID)
	if !ok {
		return fmt.Errorf("mission %d not found", missionID)
	}
	if m.Closed() {
		return fmt.Errorf("mission %d is already closed", missionID)
	}
	squad, ok := board.FindSquad(squadID)
	if !ok {
		return fmt.Errorf("squad %d not found", squadID)
	}

	plan := coremission.GenerateAssignPlan(coremission.AssignPlanInput{Mission: m, Squad: squad})
	if plan.Noop {
		return nil
	}
	return s.executor.Execute(ctx, plan.Effects())
}

// CompleteMission closes a mission with an outcome.
func (s *MissionServiceImpl) CompleteMission(ctx context.Context, req primary.CompleteMissionRequest) error {
	m, ok := s.findMission(s.store.Current(), req.MissionID)

	guardCtx := coremission.CompleteContext{
		MissionID:     req.MissionID,
		MissionExists: ok,
		AlreadyClosed: ok && m.Closed(),
		Outcome:       req.Outcome,
		ArmID:         req.ArmID,
		ArmType:       req.ArmType,
	}
	if result := coremission.CanCompleteMission(guardCtx); !result.Allowed {
		return result.Error()
	}

	plan := coremission.GenerateCompletionPlan(req.MissionID, req.CompletionRequest)
	return s.executor.Execute(ctx, plan.Effects())
}

// DeleteMission deletes a mission; a reason is required.
func (s *MissionServiceImpl) DeleteMission(ctx context.Context, req primary.DeleteMissionRequest) error {
	_, ok := s.findMission(s.store.Current(), req.MissionID)

	guardCtx := coremission.DeleteContext{
		MissionID:     req.MissionID,
		MissionExists: ok,
		Reason:        req.Reason,
	}
	if result := coremission.CanDeleteMission(guardCtx); !result.Allowed {
		return result.Error()
	}

	reason := strings.TrimSpace(req.Reason)
	err := s.executor.Run(ctx, Action{Kind: "mission_delete", MissionID: req.MissionID, Detail: fmt.Sprintf("delete mission %d: %s", req.MissionID, reason)},
		func(ctx context.Context) error {
			return s.backend.DeleteMission(ctx, req.MissionID, reason)
		})
	if err != nil {
		return fmt.Errorf("failed to delete mission: %w", err)
	}
	s.refetch(ctx, "mission deleted")
	return nil
}

// MissionLogs returns the audit trail of a mission.
func (s *MissionServiceImpl) MissionLogs(ctx context.Context, missionID int) ([]snapshot.LogEntry, error) {
	entries, err := s.backend.MissionLogs(ctx, missionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load logs for mission %d: %w", missionID, err)
	}
	return entries, nil
}

// Helper methods

func (s *MissionServiceImpl) findMission(board *snapshot.Snapshot, id int) (snapshot.Mission, bool) {
	if board == nil {
		return snapshot.Mission{}, false
	}
	return board.FindMission(id)
}

func (s *MissionServiceImpl) refetch(ctx context.Context, reason string) {
	// Refetch failures are logged by the executor.
	_ = s.executor.Execute(ctx, []effects.Effect{effects.RefetchEffect{Reason: reason}})
}

// Ensure MissionServiceImpl implements the interface
var _ primary.MissionService = (*MissionServiceImpl)(nil)
