package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/dispatchboard/internal/ports/primary"
	"github.com/example/dispatchboard/internal/ports/secondary"
)

// LogAdapter translates CLI log and journal commands to service calls.
type LogAdapter struct {
	service primary.LogService
	out     io.Writer
}

// NewLogAdapter creates a new LogAdapter with the given service.
func NewLogAdapter(service primary.LogService, out io.Writer) *LogAdapter {
	return &LogAdapter{
		service: service,
		out:     out,
	}
}

// Add records a free-text entry.
func (a *LogAdapter) Add(ctx context.Context, details string) error {
	if err := a.service.AddEntry(ctx, details); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "✓ Log entry added")
	return nil
}

// Changes prints the backend change feed.
func (a *LogAdapter) Changes(ctx context.Context, limit int) error {
	entries, err := a.service.Changes(ctx, limit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No changes recorded")
		return nil
	}
	writeLogEntries(a.out, entries)
	return nil
}

// Journal prints locally journaled writes.
func (a *LogAdapter) Journal(ctx context.Context, filters secondary.JournalFilters) error {
	entries, err := a.service.Journal(ctx, filters)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "Journal is empty")
		return nil
	}

	fmt.Fprintf(a.out, "%-19s %-16s %-6s %-8s %-12s %s\n", "TIME", "KIND", "SQUAD", "MISSION", "OPERATOR", "DETAIL")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, e := range entries {
		detail := e.Detail
		if e.Outcome == secondary.OutcomeFailed {
			detail = color.New(color.FgRed).Sprintf("%s: %s", detail, e.Error)
		}
		fmt.Fprintf(a.out, "%-19s %-16s %-6s %-8s %-12s %s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Kind, idOrDash(e.SquadID), idOrDash(e.MissionID), e.Operator, detail)
	}
	return nil
}

// Prune deletes journal entries older than the given number of days.
func (a *LogAdapter) Prune(ctx context.Context, olderThanDays int) error {
	n, err := a.service.PruneJournal(ctx, olderThanDays)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Pruned %d journal entries\n", n)
	return nil
}

func idOrDash(id int) string {
	if id == 0 {
		return "-"
	}
	return fmt.Sprint(id)
}
