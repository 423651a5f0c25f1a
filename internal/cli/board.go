package cli

import (
	gocontext "context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/dispatchboard/internal/app"
	"github.com/example/dispatchboard/internal/wire"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the dashboard once",
	Long:  "Fetch the current snapshot and print squads and missions. Falls back to the local cache when the server is unreachable.",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer wire.Close()
		return wire.BoardAdapter().Show(NewContext(), time.Now())
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the dashboard on screen",
	Long: `Poll the server and redraw the dashboard until interrupted.

Squad timers advance every second between polls. With --metrics-addr the
console serves Prometheus metrics about fetches, merges and writes.

Examples:
  board watch
  board watch --metrics-addr :9105`,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer wire.Close()
		metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

		ctx, stop := signal.NotifyContext(NewContext(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if ok, err := wire.DashboardService().WarmFromCache(ctx); err != nil {
			wire.Logger().Warn("cache warm-up failed", zap.Error(err))
		} else if ok {
			wire.Logger().Info("showing cached board until the first poll")
		}

		if metricsAddr != "" {
			srv := &http.Server{
				Addr:              metricsAddr,
				Handler:           promhttp.HandlerFor(wire.Registry(), promhttp.HandlerOpts{}),
				ReadHeaderTimeout: 5 * time.Second,
			}
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					wire.Logger().Error("metrics server failed", zap.Error(err))
				}
			}()
			defer func() {
				shutdownCtx, cancel := gocontext.WithTimeout(gocontext.Background(), 2*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()
		}

		s := &screen{}
		poller := wire.Poller(s.onPoll)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			ticker := time.NewTicker(time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					s.draw()
				}
			}
		}()

		err := poller.Run(ctx)
		wg.Wait()
		return err
	},
}

// screen redraws the board; polls and the timer tick share it.
type screen struct {
	mu      sync.Mutex
	last    app.PollEvent
	lastOK  time.Time
	started bool
}

func (s *screen) onPoll(ev app.PollEvent) {
	s.mu.Lock()
	s.last = ev
	if ev.Err == nil {
		s.lastOK = ev.At
	}
	s.started = true
	s.mu.Unlock()
	s.draw()
}

func (s *screen) draw() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}

	now := time.Now()
	fmt.Print("\033[H\033[2J")
	wire.BoardAdapter().Render(wire.DashboardService().Board(now))

	status := fmt.Sprintf("updated %s", s.lastOK.Format("15:04:05"))
	if s.lastOK.IsZero() {
		status = "no successful update yet"
	}
	if s.last.Err != nil {
		status = color.New(color.FgYellow).Sprintf("%s, last poll failed: %v", status, s.last.Err)
	}
	fmt.Printf("%s  (Ctrl-C to quit)\n", status)
}

// BoardCmd returns the board command.
func BoardCmd() *cobra.Command {
	return boardCmd
}

// WatchCmd returns the watch command.
func WatchCmd() *cobra.Command {
	watchCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9105)")
	return watchCmd
}
