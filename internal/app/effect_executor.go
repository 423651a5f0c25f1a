// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/dispatchboard/internal/core/effects"
	"github.com/example/dispatchboard/internal/ctxutil"
	"github.com/example/dispatchboard/internal/ports/primary"
	"github.com/example/dispatchboard/internal/ports/secondary"
)

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - the only place I/O happens.
type EffectExecutor interface {
	// Execute runs effs in order. A failed write does not stop the rest;
	// the errors are joined. A refetch always runs when requested.
	Execute(ctx context.Context, effs []effects.Effect) error

	// Run performs a backend write that has no effect type of its own
	// (create, delete, reorder, shift calls) with the same journaling,
	// alerting and metrics as effect writes.
	Run(ctx context.Context, action Action, fn func(context.Context) error) error
}

// Action describes one backend write for the journal.
type Action struct {
	Kind      string
	SquadID   int
	MissionID int
	Detail    string
}

// Refresher reloads the snapshot after writes.
type Refresher interface {
	Refresh(ctx context.Context) (*primary.RefreshResult, error)
}

// DefaultEffectExecutor implements EffectExecutor against the backend.
// Writes are never retried.
type DefaultEffectExecutor struct {
	backend   secondary.Backend
	journal   secondary.ActionJournal
	alerter   secondary.Alerter
	refresher Refresher
	metrics   *Metrics
	logger    *zap.Logger
}

// ExecutorDeps bundles the executor's collaborators. Journal, Alerter,
// Refresher and Metrics are optional.
type ExecutorDeps struct {
	Backend   secondary.Backend
	Journal   secondary.ActionJournal
	Alerter   secondary.Alerter
	Refresher Refresher
	Metrics   *Metrics
	Logger    *zap.Logger
}

// NewEffectExecutor creates a new DefaultEffectExecutor.
func NewEffectExecutor(deps ExecutorDeps) *DefaultEffectExecutor {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultEffectExecutor{
		backend:   deps.Backend,
		journal:   deps.Journal,
		alerter:   deps.Alerter,
		refresher: deps.Refresher,
		metrics:   deps.Metrics,
		logger:    logger,
	}
}

// SetRefresher sets the refresher after construction; the dashboard service
// and the executor depend on each other only through this hook.
func (e *DefaultEffectExecutor) SetRefresher(r Refresher) {
	e.refresher = r
}

// Execute processes a slice of effects, executing each in sequence.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	var errs []error
	var refetch *effects.RefetchEffect
	e.execute(ctx, effs, &errs, &refetch)

	if refetch != nil {
		e.refetch(ctx, *refetch)
	}
	return errors.Join(errs...)
}

func (e *DefaultEffectExecutor) execute(ctx context.Context, effs []effects.Effect, errs *[]error, refetch **effects.RefetchEffect) {
	for _, eff := range effs {
		switch typed := eff.(type) {
		case effects.CompositeEffect:
			e.execute(ctx, typed.Effects, errs, refetch)
		case effects.RefetchEffect:
			// Deferred until all writes ran, at most once per batch.
			if *refetch == nil {
				r := typed
				*refetch = &r
			}
		default:
			if err := e.executeOne(ctx, eff); err != nil {
				*errs = append(*errs, fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err))
			}
		}
	}
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect) error {
	switch typed := eff.(type) {
	case effects.StatusWriteEffect:
		return e.Run(ctx, Action{Kind: typed.EffectType(), SquadID: typed.SquadID, Detail: typed.String()},
			func(ctx context.Context) error {
				return e.backend.SetStatus(ctx, typed.SquadID, typed.Status)
			})
	case effects.MissionUpdateEffect:
		return e.Run(ctx, Action{Kind: typed.EffectType(), MissionID: typed.MissionID, Detail: typed.String()},
			func(ctx context.Context) error {
				return e.backend.UpdateMission(ctx, typed.MissionID, typed.Patch)
			})
	case effects.SquadUpdateEffect:
		return e.Run(ctx, Action{Kind: typed.EffectType(), SquadID: typed.SquadID, Detail: typed.String()},
			func(ctx context.Context) error {
				return e.backend.UpdateSquad(ctx, typed.SquadID, typed.Patch)
			})
	case effects.AlertEffect:
		e.alert(typed.Message)
		return nil
	case effects.LogEffect:
		e.log(typed)
		return nil
	case effects.NoEffect:
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

// Run performs one backend write, journals the outcome and alerts on failure.
func (e *DefaultEffectExecutor) Run(ctx context.Context, action Action, fn func(context.Context) error) error {
	if ctxutil.RequestIDFromContext(ctx) == "" {
		ctx = ctxutil.WithRequestID(ctx, uuid.NewString())
	}

	err := fn(ctx)

	entry := &secondary.JournalEntry{
		Kind:      action.Kind,
		SquadID:   action.SquadID,
		MissionID: action.MissionID,
		Detail:    action.Detail,
		Outcome:   secondary.OutcomeOK,
		Operator:  ctxutil.OperatorFromContext(ctx),
		RequestID: ctxutil.RequestIDFromContext(ctx),
	}
	fields := []zap.Field{
		zap.String("kind", action.Kind),
		zap.String("detail", action.Detail),
		zap.String("request_id", entry.RequestID),
	}
	if err != nil {
		entry.Outcome = secondary.OutcomeFailed
		entry.Error = err.Error()
		e.logger.Error("backend write failed", append(fields, zap.Error(err))...)
		e.alert(fmt.Sprintf("%s failed: %v", action.Detail, err))
	} else {
		e.logger.Debug("backend write", fields...)
	}
	e.metrics.ObserveWrite(action.Kind, entry.Outcome)

	if e.journal != nil {
		if jerr := e.journal.Append(ctx, entry); jerr != nil {
			e.logger.Warn("failed to journal write", zap.String("kind", action.Kind), zap.Error(jerr))
		}
	}
	return err
}

func (e *DefaultEffectExecutor) refetch(ctx context.Context, eff effects.RefetchEffect) {
	if e.refresher == nil {
		return
	}
	if _, err := e.refresher.Refresh(ctx); err != nil {
		// The poll loop catches up on the next tick.
		e.logger.Warn("refetch failed", zap.String("reason", eff.Reason), zap.Error(err))
	}
}

func (e *DefaultEffectExecutor) alert(message string) {
	if e.alerter != nil {
		e.alerter.Alert(message)
	}
}

func (e *DefaultEffectExecutor) log(eff effects.LogEffect) {
	fields := make([]zap.Field, 0, len(eff.Fields))
	for k, v := range eff.Fields {
		fields = append(fields, zap.Any(k, v))
	}
	switch eff.Level {
	case "debug":
		e.logger.Debug(eff.Message, fields...)
	case "warn":
		e.logger.Warn(eff.Message, fields...)
	case "error":
		e.logger.Error(eff.Message, fields...)
	default:
		e.logger.Info(eff.Message, fields...)
	}
}

var _ EffectExecutor = (*DefaultEffectExecutor)(nil)
