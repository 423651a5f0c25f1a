package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/example/dispatchboard/internal/core/effects"
	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/ports/primary"
	"github.com/example/dispatchboard/internal/ports/secondary"
	"github.com/example/dispatchboard/internal/store"
)

// ShiftServiceImpl implements the ShiftService interface.
type ShiftServiceImpl struct {
	backend  secondary.Backend
	store    *store.Store
	sink     secondary.ExportSink
	executor EffectExecutor
	logger   *zap.Logger
}

// NewShiftService creates a new ShiftService with injected dependencies.
func NewShiftService(backend secondary.Backend, st *store.Store, sink secondary.ExportSink, executor EffectExecutor, logger *zap.Logger) *ShiftServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShiftServiceImpl{
		backend:  backend,
		store:    st,
		sink:     sink,
		executor: executor,
		logger:   logger,
	}
}

// StartShift creates the shift configuration.
func (s *ShiftServiceImpl) StartShift(ctx context.Context, settings snapshot.ShiftSettings) error {
	if s.store.Current().ShiftActive() {
		return fmt.Errorf("a shift is already in progress")
	}
	if settings.Location == nil || strings.TrimSpace(*settings.Location) == "" {
		return fmt.Errorf("shift location is required")
	}

	err := s.executor.Run(ctx, Action{Kind: "shift_start", Detail: fmt.Sprintf("start shift at %s", *settings.Location)},
		func(ctx context.Context) error {
			return s.backend.StartShift(ctx, settings)
		})
	if err != nil {
		return fmt.Errorf("failed to start shift: %w", err)
	}
	s.refetch(ctx, "shift started")
	return nil
}

// UpdateShift changes the running shift.
func (s *ShiftServiceImpl) UpdateShift(ctx context.Context, settings snapshot.ShiftSettings) error {
	if !s.store.Current().ShiftActive() {
		return fmt.Errorf("no shift in progress - start a shift first")
	}
	if settings.Location != nil && strings.TrimSpace(*settings.Location) == "" {
		return fmt.Errorf("shift location must not be empty")
	}

	err := s.executor.Run(ctx, Action{Kind: "shift_update", Detail: "update shift"},
		func(ctx context.Context) error {
			return s.backend.UpdateShift(ctx, settings)
		})
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}
	s.refetch(ctx, "shift updated")
	return nil
}

// EndShift closes the shift and stores the export document in the sink.
func (s *ShiftServiceImpl) EndShift(ctx context.Context) (*primary.EndShiftResponse, error) {
	if !s.store.Current().ShiftActive() {
		return nil, fmt.Errorf("no shift in progress - start a shift first")
	}

	var file *secondary.ExportFile
	err := s.executor.Run(ctx, Action{Kind: "shift_end", Detail: "end shift"},
		func(ctx context.Context) error {
			var err error
			file, err = s.backend.EndShift(ctx)
			return err
		})
	if err != nil {
		return nil, fmt.Errorf("failed to end shift: %w", err)
	}
	s.refetch(ctx, "shift ended")

	if file == nil || len(file.Data) == 0 {
		return nil, fmt.Errorf("backend returned an empty export")
	}
	location, err := s.sink.Put(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("failed to store export %s: %w", file.Name, err)
	}
	s.logger.Info("stored shift export", zap.String("file", file.Name), zap.String("location", location))

	return &primary.EndShiftResponse{
		FileName: file.Name,
		Location: location,
		Size:     len(file.Data),
	}, nil
}

func (s *ShiftServiceImpl) refetch(ctx context.Context, reason string) {
	_ = s.executor.Execute(ctx, []effects.Effect{effects.RefetchEffect{Reason: reason}})
}

// Ensure ShiftServiceImpl implements the interface
var _ primary.ShiftService = (*ShiftServiceImpl)(nil)
