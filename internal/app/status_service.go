package app

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/example/dispatchboard/internal/core/status"
	"github.com/example/dispatchboard/internal/core/transition"
	"github.com/example/dispatchboard/internal/ports/primary"
	"github.com/example/dispatchboard/internal/store"
)

// StatusServiceImpl implements the StatusService interface.
// It owns the transition engine; only one status interaction is pending at a time.
type StatusServiceImpl struct {
	mu       sync.Mutex
	engine   *transition.Engine
	store    *store.Store
	executor EffectExecutor
	logger   *zap.Logger
}

// NewStatusService creates a new StatusService with injected dependencies.
func NewStatusService(st *store.Store, executor EffectExecutor, logger *zap.Logger) *StatusServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatusServiceImpl{
		engine:   transition.NewEngine(),
		store:    st,
		executor: executor,
		logger:   logger,
	}
}

// RequestStatus starts a status change for a squad.
func (s *StatusServiceImpl) RequestStatus(ctx context.Context, squadID int, target status.Status) (transition.Decision, error) {
	return s.decide(ctx, func() (transition.Decision, error) {
		return s.engine.RequestStatusChange(s.store.Current(), squadID, target)
	})
}

// ChooseAmbulanz answers a destination prompt with an Ambulanz unit.
func (s *StatusServiceImpl) ChooseAmbulanz(ctx context.Context, ambulanzID int) (transition.Decision, error) {
	return s.decide(ctx, func() (transition.Decision, error) {
		return s.engine.ChooseAmbulanz(s.store.Current(), ambulanzID)
	})
}

// ChooseCustom answers a destination prompt with free text.
func (s *StatusServiceImpl) ChooseCustom(ctx context.Context, destination string) (transition.Decision, error) {
	return s.decide(ctx, func() (transition.Decision, error) {
		return s.engine.ChooseCustom(destination)
	})
}

// ResolveConflict answers the current open-mission conflict.
func (s *StatusServiceImpl) ResolveConflict(ctx context.Context, r transition.Resolution) (transition.Decision, error) {
	return s.decide(ctx, func() (transition.Decision, error) {
		return s.engine.Resolve(s.store.Current(), r)
	})
}

// Cancel abandons whatever is pending. Nothing is written.
func (s *StatusServiceImpl) Cancel(ctx context.Context) transition.Decision {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Cancel()
}

// decide runs one engine step under the lock and executes its effects
// outside of it, so a slow backend never blocks the next answer.
func (s *StatusServiceImpl) decide(ctx context.Context, step func() (transition.Decision, error)) (transition.Decision, error) {
	s.mu.Lock()
	d, err := step()
	s.mu.Unlock()
	if err != nil {
		return d, err
	}

	s.logger.Debug("status decision", zap.Stringer("outcome", d.Outcome), zap.Int("effects", len(d.Effects)))
	if len(d.Effects) == 0 {
		return d, nil
	}
	return d, s.executor.Execute(ctx, d.Effects)
}

// Ensure StatusServiceImpl implements the interface
var _ primary.StatusService = (*StatusServiceImpl)(nil)
