package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/example/dispatchboard/internal/ports/primary"
)

// DefaultPollInterval is used when the configured interval is not positive.
const DefaultPollInterval = 5 * time.Second

// PollEvent reports the outcome of one poll to the caller's hook.
type PollEvent struct {
	Result *primary.RefreshResult // nil when Err is set
	Err    error
	At     time.Time
}

// Poller refreshes the dashboard on a fixed interval. Failures never stop it.
type Poller struct {
	dashboard primary.DashboardService
	interval  time.Duration
	logger    *zap.Logger
	onPoll    func(PollEvent)
}

// NewPoller creates a poller. onPoll may be nil.
func NewPoller(dashboard primary.DashboardService, interval time.Duration, logger *zap.Logger, onPoll func(PollEvent)) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		dashboard: dashboard,
		interval:  interval,
		logger:    logger,
		onPoll:    onPoll,
	}
}

// Run polls once immediately, then every interval until ctx is done.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("polling started", zap.Duration("interval", p.interval))
	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("polling stopped")
			return nil
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	res, err := p.dashboard.Refresh(ctx)
	if err != nil && ctx.Err() != nil {
		// Shutting down; the cancelled request is not a failure.
		return
	}
	if err != nil {
		p.logger.Warn("poll failed", zap.Error(err))
	} else if res.Stale {
		p.logger.Debug("poll response was stale", zap.Uint64("sequence", res.Sequence))
	}
	if p.onPoll != nil {
		p.onPoll(PollEvent{Result: res, Err: err, At: time.Now()})
	}
}
