// Package cli contains the cobra commands of the board console.
package cli

import (
	gocontext "context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/example/dispatchboard/internal/wire"
)

// NewContext returns a background context tagged with the console operator.
func NewContext() gocontext.Context {
	return wire.Context(gocontext.Background())
}

// parseID parses a numeric squad or mission id.
func parseID(kind, s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q (expected a positive number)", kind, s)
	}
	return id, nil
}

// parseIDs parses a list of ids; comma separated values are split.
func parseIDs(kind string, args []string) ([]int, error) {
	var ids []int
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			id, err := parseID(kind, part)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// syncBoard loads the current snapshot. Commands that change the board
// decide against it, so they never act on a cached copy.
func syncBoard(ctx gocontext.Context) error {
	if _, err := wire.DashboardService().Refresh(ctx); err != nil {
		return fmt.Errorf("cannot load board: %w", err)
	}
	return nil
}

// withPolling runs fn while poll keeps the board fresh in the background.
// poll runs until fn returns and has stopped before withPolling returns.
func withPolling(ctx gocontext.Context, poll func(gocontext.Context) error, fn func(gocontext.Context) error) error {
	pollCtx, cancel := gocontext.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = poll(pollCtx)
	}()

	err := fn(ctx)
	cancel()
	wg.Wait()
	return err
}
