// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/example/dispatchboard/internal/core/projection"
	"github.com/example/dispatchboard/internal/ports/primary"
)

// BoardAdapter renders the dashboard.
type BoardAdapter struct {
	service primary.DashboardService
	out     io.Writer
}

// NewBoardAdapter creates a new BoardAdapter with the given service.
func NewBoardAdapter(service primary.DashboardService, out io.Writer) *BoardAdapter {
	return &BoardAdapter{
		service: service,
		out:     out,
	}
}

// Show refreshes and renders the board. When the backend is unreachable the
// cached board is shown instead, marked as stale.
func (a *BoardAdapter) Show(ctx context.Context, now time.Time) error {
	if _, err := a.service.Refresh(ctx); err != nil {
		ok, cacheErr := a.service.WarmFromCache(ctx)
		if cacheErr != nil || !ok {
			return err
		}
		fmt.Fprintf(a.out, "%s backend unreachable (%v) - showing cached board\n\n",
			color.New(color.FgYellow).Sprint("!"), err)
	}
	a.Render(a.service.Board(now))
	return nil
}

// Render writes a projected board.
func (a *BoardAdapter) Render(b projection.Board) {
	if !b.ShiftActive {
		fmt.Fprintln(a.out, "No shift in progress. Start one with: board shift start --location <name>")
		return
	}

	fmt.Fprintf(a.out, "\n%s  (%d open / %d missions)\n", color.New(color.Bold).Sprint(b.Location), b.OpenCount, b.Total)

	fmt.Fprintln(a.out, "\nSQUADS")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, sq := range b.Squads {
		a.renderSquad(sq)
	}

	fmt.Fprintln(a.out, "\nOPEN MISSIONS")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	if len(b.Open) == 0 {
		fmt.Fprintln(a.out, "  (none)")
	}
	for _, m := range b.Open {
		a.renderMission(m)
	}

	if len(b.Closed) > 0 {
		fmt.Fprintln(a.out, "\nCLOSED MISSIONS")
		fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
		for _, m := range b.Closed {
			a.renderMission(m)
		}
	}
	fmt.Fprintln(a.out)
}

func (a *BoardAdapter) renderSquad(sq projection.SquadView) {
	name := sq.Name
	if sq.Qualification != "" {
		name += " (" + sq.Qualification + ")"
	}

	buttons := make([]string, 0, len(sq.Buttons))
	for _, b := range sq.Buttons {
		if b.Active {
			buttons = append(buttons, color.New(b.Color.Color, color.Bold).Sprintf("[%s]", b.Label))
		} else {
			buttons = append(buttons, b.Label)
		}
	}

	timer := ""
	if sq.Timer.Visible {
		timer = sq.Timer.Text
	}

	info := sq.Info
	if sq.Warning {
		info = color.New(color.FgYellow).Sprint(info)
	}

	fmt.Fprintf(a.out, "%3d  %-24s %8s  %s\n", sq.ID, name, timer, strings.Join(buttons, " "))
	if info != "" {
		fmt.Fprintf(a.out, "     %s\n", info)
	}
}

func (a *BoardAdapter) renderMission(m projection.MissionCard) {
	loc := m.Location
	if m.InitialLocation != "" {
		loc += fmt.Sprintf(" (Initial: %s)", m.InitialLocation)
	}

	number := fmt.Sprintf("#%s", m.Number)
	if m.NoSquads {
		number = color.New(color.FgRed).Sprint(number)
	}
	fmt.Fprintf(a.out, "%-6s %-4d %-30s %s\n", number, m.ID, loc, m.Reason)

	var tags []string
	for _, s := range m.Squads {
		if s.Label == "" {
			tags = append(tags, s.Name)
			continue
		}
		tags = append(tags, fmt.Sprintf("%s %s", s.Name, color.New(s.Color.Color).Sprint(s.Label)))
	}
	if len(tags) > 0 {
		fmt.Fprintf(a.out, "       Squads: %s\n", strings.Join(tags, ", "))
	}
	if m.AlarmingEntity != "" {
		fmt.Fprintf(a.out, "       Alarmiert durch: %s\n", m.AlarmingEntity)
	}
	if m.Description != "" {
		fmt.Fprintf(a.out, "       %s\n", m.Description)
	}
	if m.Notes != "" {
		fmt.Fprintf(a.out, "       Notes: %s\n", m.Notes)
	}
	if !m.Open {
		fmt.Fprintf(a.out, "       %s %s\n", m.Status, m.Outcome)
	}
}
