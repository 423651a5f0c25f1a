package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/example/dispatchboard/internal/core/effects"
	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/core/status"
	"github.com/example/dispatchboard/internal/ports/primary"
	"github.com/example/dispatchboard/internal/ports/secondary"
	"github.com/example/dispatchboard/internal/store"
)

// SquadServiceImpl implements the SquadService interface.
type SquadServiceImpl struct {
	backend  secondary.Backend
	store    *store.Store
	executor EffectExecutor
	logger   *zap.Logger
}

// NewSquadService creates a new SquadService with injected dependencies.
func NewSquadService(backend secondary.Backend, st *store.Store, executor EffectExecutor, logger *zap.Logger) *SquadServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SquadServiceImpl{
		backend:  backend,
		store:    st,
		executor: executor,
		logger:   logger,
	}
}

// CreateSquad adds a squad to the shift.
func (s *SquadServiceImpl) CreateSquad(ctx context.Context, req snapshot.NewSquad) (int, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return 0, fmt.Errorf("squad name is required")
	}
	if req.Type != "" {
		if _, err := status.ParseUnitType(req.Type); err != nil {
			return 0, err
		}
	}
	if !s.store.Current().ShiftActive() {
		return 0, fmt.Errorf("no shift in progress - start a shift first")
	}

	var id int
	err := s.executor.Run(ctx, Action{Kind: "squad_create", Detail: fmt.Sprintf("create squad %s", req.Name)},
		func(ctx context.Context) error {
			var err error
			id, err = s.backend.CreateSquad(ctx, req)
			return err
		})
	if err != nil {
		return 0, fmt.Errorf("failed to create squad: %w", err)
	}
	s.refetch(ctx, "squad created")
	return id, nil
}

// UpdateSquad edits name, qualification, type or service numbers.
func (s *SquadServiceImpl) UpdateSquad(ctx context.Context, squadID int, patch snapshot.SquadPatch) error {
	if err := s.requireSquad(squadID); err != nil {
		return err
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return fmt.Errorf("squad name must not be empty")
	}
	if patch.Type != nil {
		if _, err := status.ParseUnitType(*patch.Type); err != nil {
			return err
		}
	}

	return s.executor.Execute(ctx, []effects.Effect{
		effects.SquadUpdateEffect{SquadID: squadID, Patch: patch, Reason: "edit"},
		effects.RefetchEffect{Reason: "squad updated"},
	})
}

// DeleteSquad removes a squad.
func (s *SquadServiceImpl) DeleteSquad(ctx context.Context, squadID int) error {
	if err := s.requireSquad(squadID); err != nil {
		return err
	}

	err := s.executor.Run(ctx, Action{Kind: "squad_delete", SquadID: squadID, Detail: fmt.Sprintf("delete squad %d", squadID)},
		func(ctx context.Context) error {
			return s.backend.DeleteSquad(ctx, squadID)
		})
	if err != nil {
		return fmt.Errorf("failed to delete squad: %w", err)
	}
	s.refetch(ctx, "squad deleted")
	return nil
}

// SetLocation sets or, with an empty location, clears the location override.
func (s *SquadServiceImpl) SetLocation(ctx context.Context, squadID int, location string) error {
	if err := s.requireSquad(squadID); err != nil {
		return err
	}

	location = strings.TrimSpace(location)
	reason := "location " + location
	if location == "" {
		reason = "clear location"
	}
	return s.executor.Execute(ctx, []effects.Effect{
		effects.SquadUpdateEffect{SquadID: squadID, Patch: snapshot.LocationPatch(location), Reason: reason},
		effects.RefetchEffect{Reason: "squad location"},
	})
}

// Reorder stores the display order; every squad must be listed once.
func (s *SquadServiceImpl) Reorder(ctx context.Context, order []int) error {
	board := s.store.Current()
	if board == nil {
		return store.ErrNoSnapshot
	}
	if err := validateOrder(board.Squads, order); err != nil {
		return err
	}

	err := s.executor.Run(ctx, Action{Kind: "squad_reorder", Detail: fmt.Sprintf("reorder %v", order)},
		func(ctx context.Context) error {
			return s.backend.ReorderSquads(ctx, order)
		})
	if err != nil {
		return fmt.Errorf("failed to reorder squads: %w", err)
	}
	s.refetch(ctx, "squads reordered")
	return nil
}

// Helper methods

func (s *SquadServiceImpl) requireSquad(squadID int) error {
	board := s.store.Current()
	if board == nil {
		return store.ErrNoSnapshot
	}
	if _, ok := board.FindSquad(squadID); !ok {
		return fmt.Errorf("squad %d not found", squadID)
	}
	return nil
}

func (s *SquadServiceImpl) refetch(ctx context.Context, reason string) {
	_ = s.executor.Execute(ctx, []effects.Effect{effects.RefetchEffect{Reason: reason}})
}

func validateOrder(squads []snapshot.Squad, order []int) error {
	if len(order) != len(squads) {
		return fmt.Errorf("order must list every squad exactly once (%d given, %d squads)", len(order), len(squads))
	}
	known := make(map[int]bool, len(squads))
	for _, sq := range squads {
		known[sq.ID] = true
	}
	seen := make(map[int]bool, len(order))
	for _, id := range order {
		if !known[id] {
			return fmt.Errorf("squad %d not found", id)
		}
		if seen[id] {
			return fmt.Errorf("squad %d listed twice", id)
		}
		seen[id] = true
	}
	return nil
}

// Ensure SquadServiceImpl implements the interface
var _ primary.SquadService = (*SquadServiceImpl)(nil)
