package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/dispatchboard/internal/core/projection"
	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/ports/primary"
	"github.com/example/dispatchboard/internal/ports/secondary"
	"github.com/example/dispatchboard/internal/store"
)

// DashboardServiceImpl implements the DashboardService interface.
type DashboardServiceImpl struct {
	backend  secondary.Backend
	store    *store.Store
	cache    secondary.SnapshotCache
	cacheKey string
	focus    *FocusTracker
	metrics  *Metrics
	logger   *zap.Logger
	now      func() time.Time
}

// DashboardDeps bundles the dashboard's collaborators. Cache, Focus and
// Metrics are optional.
type DashboardDeps struct {
	Backend  secondary.Backend
	Store    *store.Store
	Cache    secondary.SnapshotCache
	CacheKey string // session the cache is keyed by
	Focus    *FocusTracker
	Metrics  *Metrics
	Logger   *zap.Logger
}

// NewDashboardService creates a new DashboardService with injected dependencies.
func NewDashboardService(deps DashboardDeps) *DashboardServiceImpl {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardServiceImpl{
		backend:  deps.Backend,
		store:    deps.Store,
		cache:    deps.Cache,
		cacheKey: deps.CacheKey,
		focus:    deps.Focus,
		metrics:  deps.Metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// Refresh fetches a snapshot under a fresh sequence number and merges it.
// A response overtaken by a newer one is reported as stale, not as an error.
func (s *DashboardServiceImpl) Refresh(ctx context.Context) (*primary.RefreshResult, error) {
	seq := s.store.NextSequence()

	snap, err := s.backend.FetchSnapshot(ctx)
	if err != nil {
		s.metrics.ObserveFetch(FetchFailed)
		s.logger.Warn("snapshot fetch failed", zap.Uint64("sequence", seq), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch snapshot: %w", err)
	}

	start := time.Now()
	merged, err := s.store.Merge(seq, snap, s.now(), s.focus.Active())
	if errors.Is(err, store.ErrStaleResponse) {
		s.metrics.ObserveFetch(FetchStale)
		s.logger.Debug("discarded stale snapshot",
			zap.Uint64("sequence", seq), zap.Uint64("applied", s.store.Applied()))
		return &primary.RefreshResult{Sequence: seq, Stale: true}, nil
	}
	if err != nil {
		s.metrics.ObserveFetch(FetchFailed)
		return nil, fmt.Errorf("failed to merge snapshot: %w", err)
	}
	s.metrics.ObserveFetch(FetchApplied)
	s.metrics.ObserveMerge(seq, merged.Preserved, time.Since(start))

	for _, r := range merged.Repairs {
		s.logger.Debug("normalized snapshot", zap.String("repair", r))
	}
	if merged.Preserved > 0 {
		s.logger.Debug("kept local edits", zap.Int("fields", merged.Preserved))
	}

	s.saveCache(ctx, seq, merged.Snapshot)

	return &primary.RefreshResult{
		Sequence:  seq,
		Preserved: merged.Preserved,
		Repairs:   merged.Repairs,
	}, nil
}

func (s *DashboardServiceImpl) saveCache(ctx context.Context, seq uint64, snap *snapshot.Snapshot) {
	if s.cache == nil {
		return
	}
	rec := &secondary.CachedSnapshot{
		SessionID: s.cacheKey,
		Sequence:  seq,
		Snapshot:  snap,
		SavedAt:   s.now(),
	}
	if err := s.cache.Save(ctx, rec); err != nil {
		s.logger.Warn("failed to cache snapshot", zap.Error(err))
	}
}

// Board projects the current snapshot for display.
func (s *DashboardServiceImpl) Board(now time.Time) projection.Board {
	return projection.Project(s.store.Current(), now)
}

// Snapshot returns a copy of the current snapshot.
func (s *DashboardServiceImpl) Snapshot() *snapshot.Snapshot {
	return s.store.Current()
}

// WarmFromCache installs the newest cached snapshot when the store is empty.
func (s *DashboardServiceImpl) WarmFromCache(ctx context.Context) (bool, error) {
	if s.cache == nil || s.store.Current() != nil {
		return false, nil
	}
	rec, err := s.cache.Load(ctx, s.cacheKey)
	if err != nil {
		return false, fmt.Errorf("failed to load cached snapshot: %w", err)
	}
	if rec == nil {
		return false, nil
	}
	s.store.Replace(rec.Snapshot)
	s.logger.Info("loaded cached snapshot",
		zap.Uint64("sequence", rec.Sequence), zap.Time("saved_at", rec.SavedAt))
	return true, nil
}

// Ensure DashboardServiceImpl implements the interface
var _ primary.DashboardService = (*DashboardServiceImpl)(nil)
