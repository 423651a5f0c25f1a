package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/ports/primary"
	"github.com/example/dispatchboard/internal/ports/secondary"
)

// LogServiceImpl implements the LogService interface.
type LogServiceImpl struct {
	backend  secondary.Backend
	journal  secondary.ActionJournal
	executor EffectExecutor
}

// NewLogService creates a new LogService with injected dependencies.
func NewLogService(backend secondary.Backend, journal secondary.ActionJournal, executor EffectExecutor) *LogServiceImpl {
	return &LogServiceImpl{
		backend:  backend,
		journal:  journal,
		executor: executor,
	}
}

// AddEntry records a free-text event on the backend.
func (s *LogServiceImpl) AddEntry(ctx context.Context, details string) error {
	details = strings.TrimSpace(details)
	if details == "" {
		return fmt.Errorf("log entry must not be empty")
	}
	err := s.executor.Run(ctx, Action{Kind: "log_add", Detail: details},
		func(ctx context.Context) error {
			return s.backend.AddLog(ctx, details)
		})
	if err != nil {
		return fmt.Errorf("failed to add log entry: %w", err)
	}
	return nil
}

// Changes returns the backend change feed, newest first.
func (s *LogServiceImpl) Changes(ctx context.Context, limit int) ([]snapshot.LogEntry, error) {
	entries, err := s.backend.Changes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load changes: %w", err)
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Journal lists locally journaled writes.
func (s *LogServiceImpl) Journal(ctx context.Context, filters secondary.JournalFilters) ([]*secondary.JournalEntry, error) {
	entries, err := s.journal.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal: %w", err)
	}
	return entries, nil
}

// PruneJournal deletes journal entries older than the specified number of days.
func (s *LogServiceImpl) PruneJournal(ctx context.Context, olderThanDays int) (int, error) {
	if olderThanDays < 0 {
		return 0, fmt.Errorf("days must not be negative")
	}
	return s.journal.PruneOlderThan(ctx, olderThanDays)
}

// Ensure LogServiceImpl implements the interface
var _ primary.LogService = (*LogServiceImpl)(nil)
