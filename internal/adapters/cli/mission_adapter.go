package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/ports/primary"
)

// MissionAdapter translates CLI mission commands to service calls.
type MissionAdapter struct {
	service primary.MissionService
	in      *bufio.Reader
	out     io.Writer
	now     func() time.Time
}

// NewMissionAdapter creates a new MissionAdapter with the given service.
func NewMissionAdapter(service primary.MissionService, in io.Reader, out io.Writer) *MissionAdapter {
	return &MissionAdapter{
		service: service,
		in:      bufio.NewReader(in),
		out:     out,
		now:     time.Now,
	}
}

// Create creates a new mission.
func (a *MissionAdapter) Create(ctx context.Context, req primary.CreateMissionRequest) error {
	resp, err := a.service.CreateMission(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created mission #%s (id %d)\n", resp.MissionNumber, resp.MissionID)
	fmt.Fprintf(a.out, "  Location: %s\n", req.Location)
	fmt.Fprintf(a.out, "  Reason: %s\n", req.Reason)
	if len(req.SquadIDs) > 0 {
		fmt.Fprintf(a.out, "  Squads: %v\n", req.SquadIDs)
	}
	return nil
}

// Edit sets one inline-editable field.
func (a *MissionAdapter) Edit(ctx context.Context, missionID int, fieldName, value string) error {
	field, err := snapshot.ParseField(fieldName)
	if err != nil {
		return err
	}

	if err := a.service.EditField(ctx, primary.EditFieldRequest{
		MissionID: missionID,
		Field:     field,
		Value:     value,
		Now:       a.now(),
	}); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Mission %d: %s updated\n", missionID, field)
	return nil
}

// EditInteractive reads the new value from input. While the operator is
// typing, background polls keep the field's local value. An empty line keeps
// the current value.
func (a *MissionAdapter) EditInteractive(ctx context.Context, missionID int, fieldName string) error {
	field, err := snapshot.ParseField(fieldName)
	if err != nil {
		return err
	}

	if err := a.service.BeginEdit(missionID, field); err != nil {
		return err
	}
	defer a.service.EndEdit()

	fmt.Fprintf(a.out, "New %s for mission %d (empty keeps current): ", field, missionID)
	line, _ := a.in.ReadString('\n')
	value := strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(value) == "" {
		fmt.Fprintln(a.out, "Unchanged")
		return nil
	}

	return a.Edit(ctx, missionID, fieldName, value)
}

// Assign adds a squad to a mission.
func (a *MissionAdapter) Assign(ctx context.Context, missionID, squadID int) error {
	if err := a.service.AssignSquad(ctx, missionID, squadID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Squad %d assigned to mission %d\n", squadID, missionID)
	return nil
}

// Complete closes a mission.
func (a *MissionAdapter) Complete(ctx context.Context, req primary.CompleteMissionRequest) error {
	if err := a.service.CompleteMission(ctx, req); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Mission %d completed: %s\n", req.MissionID, req.Outcome)
	return nil
}

// Delete deletes a mission.
func (a *MissionAdapter) Delete(ctx context.Context, missionID int, reason string) error {
	if err := a.service.DeleteMission(ctx, primary.DeleteMissionRequest{
		MissionID: missionID,
		Reason:    reason,
	}); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Mission %d deleted\n", missionID)
	return nil
}

// Logs prints the audit trail of a mission.
func (a *MissionAdapter) Logs(ctx context.Context, missionID int) error {
	entries, err := a.service.MissionLogs(ctx, missionID)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintf(a.out, "No log entries for mission %d\n", missionID)
		return nil
	}
	writeLogEntries(a.out, entries)
	return nil
}

func writeLogEntries(out io.Writer, entries []snapshot.LogEntry) {
	fmt.Fprintf(out, "%-20s %-22s %s\n", "TIME", "ACTION", "DETAILS")
	fmt.Fprintln(out, "────────────────────────────────────────────────────────────────")
	for _, e := range entries {
		fmt.Fprintf(out, "%-20s %-22s %s\n", e.Timestamp, e.Action, e.Details)
	}
}
