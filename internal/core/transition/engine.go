// Package transition implements the squad status workflow: destination
// selection when a squad leaves for a drop-off point, and release from open
// missions when a squad becomes ready or not ready.
// This is part of the Functional Core - decisions are returned as effects,
// the engine performs no I/O.
package transition

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/example/dispatchboard/internal/core/effects"
	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/core/status"
)

// Outcome classifies a Decision.
type Outcome int

const (
	// Applied means the decision is final; its effects perform the change.
	Applied Outcome = iota
	// AwaitingDestination means the operator must pick a drop-off point.
	AwaitingDestination
	// AwaitingConflictResolution means the operator must answer for an open mission.
	AwaitingConflictResolution
	// Cancelled means the pending change was abandoned without a status write.
	Cancelled
	// Ignored means there was nothing pending to act on.
	Ignored
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case AwaitingDestination:
		return "awaiting destination"
	case AwaitingConflictResolution:
		return "awaiting conflict resolution"
	case Cancelled:
		return "cancelled"
	case Ignored:
		return "ignored"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// ErrEmptyDestination is returned when a custom destination is blank.
// The destination prompt stays open.
var ErrEmptyDestination = errors.New("destination must not be empty")

// Candidate is an Ambulanz unit offered as drop-off point.
type Candidate struct {
	ID           int
	Name         string
	PatientCount int
}

// DestinationPrompt asks where a squad heading to status 7 is going.
// Custom free text is always accepted besides the candidates.
type DestinationPrompt struct {
	SquadID    int
	SquadName  string
	Candidates []Candidate
}

// Conflict asks what to do with one open mission before the target status is set.
type Conflict struct {
	SquadID   int
	SquadName string
	Target    status.Status
	Mission   snapshot.Mission
	Remaining int
}

// Decision is the result of a status request or a follow-up answer.
type Decision struct {
	Outcome  Outcome
	Effects  []effects.Effect
	Prompt   *DestinationPrompt
	Conflict *Conflict
}

type pendingConflict struct {
	squadID   int
	squadName string
	target    status.Status
	queue     ConflictQueue
}

// Engine tracks at most one pending interaction: either a destination prompt
// or a conflict queue. A new status request discards whatever was pending.
type Engine struct {
	destination *DestinationPrompt
	conflict    *pendingConflict
}

// NewEngine returns an engine with nothing pending.
func NewEngine() *Engine {
	return &Engine{}
}

// Pending reports whether a prompt or conflict is awaiting an answer.
func (e *Engine) Pending() bool {
	return e.destination != nil || e.conflict != nil
}

// RequestStatusChange decides how to move squadID to target given the board.
// Rules in priority order:
//  1. target 7 with at least one Ambulanz on the board asks for a destination
//  2. target NEB or 2 while the squad is listed on open missions asks, mission
//     by mission, whether to remove it
//  3. otherwise the status is written directly
func (e *Engine) RequestStatusChange(board *snapshot.Snapshot, squadID int, target status.Status) (Decision, error) {
	e.destination = nil
	e.conflict = nil
	board = orEmpty(board)

	squad, found := board.FindSquad(squadID)
	guard := CanChangeStatus(StatusContext{
		SquadID:     squadID,
		SquadExists: found,
		UnitType:    squad.Type,
		Target:      target,
	})
	if !guard.Allowed {
		return Decision{}, guard.Error()
	}

	if target == status.EnRouteDropoff {
		if units := board.AmbulanzUnits(); len(units) > 0 {
			prompt := &DestinationPrompt{SquadID: squad.ID, SquadName: squad.Name}
			for _, u := range units {
				prompt.Candidates = append(prompt.Candidates, Candidate{ID: u.ID, Name: u.Name, PatientCount: u.PatientCount})
			}
			e.destination = prompt
			return Decision{Outcome: AwaitingDestination, Prompt: prompt}, nil
		}
	}

	if target.In(status.NotReady, status.Ready) {
		if open := board.OpenMissionsFor(squad.ID); len(open) > 0 {
			pc := &pendingConflict{squadID: squad.ID, squadName: squad.Name, target: target}
			for _, m := range open {
				pc.queue.Enqueue(m)
			}
			e.conflict = pc
			return e.nextConflict(nil), nil
		}
	}

	return Decision{Outcome: Applied, Effects: withRefetch(statusWrite(squad.ID, target))}, nil
}

// ChooseAmbulanz answers the destination prompt with an Ambulanz unit.
// The squad goes to 7 and joins the Ambulanz's active mission if not listed
// yet. Without an Ambulanz mission, the Ambulanz joins the squad's active
// mission instead.
func (e *Engine) ChooseAmbulanz(board *snapshot.Snapshot, ambulanzID int) (Decision, error) {
	prompt := e.destination
	if prompt == nil {
		return Decision{Outcome: Ignored}, nil
	}
	if !slices.ContainsFunc(prompt.Candidates, func(c Candidate) bool { return c.ID == ambulanzID }) {
		return Decision{}, fmt.Errorf("squad %d is not an Ambulanz destination", ambulanzID)
	}
	e.destination = nil

	writes := []effects.Effect{statusWrite(prompt.SquadID, status.EnRouteDropoff)}
	if update, ok := joinAmbulanzMission(orEmpty(board), prompt.SquadID, ambulanzID); ok {
		writes = append(writes, update)
	}
	return Decision{Outcome: Applied, Effects: withRefetch(writes...)}, nil
}

// ChooseCustom answers the destination prompt with free text, stored as the
// squad's location override.
func (e *Engine) ChooseCustom(text string) (Decision, error) {
	prompt := e.destination
	if prompt == nil {
		return Decision{Outcome: Ignored}, nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Decision{}, ErrEmptyDestination
	}
	e.destination = nil

	return Decision{Outcome: Applied, Effects: withRefetch(
		statusWrite(prompt.SquadID, status.EnRouteDropoff),
		effects.SquadUpdateEffect{
			SquadID: prompt.SquadID,
			Patch:   snapshot.LocationPatch(text),
			Reason:  fmt.Sprintf("destination %s", text),
		},
	)}, nil
}

// Resolve answers the current conflict. Remove strips the squad from the
// mission, Keep leaves it. The status write is emitted once the queue drains.
func (e *Engine) Resolve(board *snapshot.Snapshot, r Resolution) (Decision, error) {
	pc := e.conflict
	if pc == nil {
		return Decision{Outcome: Ignored}, nil
	}
	current, ok := pc.queue.Current()
	if !ok {
		return Decision{Outcome: Ignored}, nil
	}

	var writes []effects.Effect
	switch r {
	case Remove:
		if m, found := orEmpty(board).FindMission(current.ID); found {
			current = m
		}
		ids := slices.DeleteFunc(slices.Clone(current.SquadIDs), func(id int) bool { return id == pc.squadID })
		writes = append(writes, effects.MissionUpdateEffect{
			MissionID: current.ID,
			Patch:     snapshot.SquadIDsPatch(ids),
			Reason:    fmt.Sprintf("remove squad %d", pc.squadID),
		})
	case Keep:
	default:
		return Decision{}, fmt.Errorf("unknown resolution %q", r)
	}

	return e.nextConflict(writes), nil
}

// Cancel abandons any pending prompt or conflict queue. Removals already
// answered stay; the target status is never written.
func (e *Engine) Cancel() Decision {
	if !e.Pending() {
		return Decision{Outcome: Ignored}
	}
	e.destination = nil
	e.conflict = nil
	return Decision{Outcome: Cancelled}
}

// nextConflict advances the queue; writes are effects produced by the
// previous answer.
func (e *Engine) nextConflict(writes []effects.Effect) Decision {
	pc := e.conflict
	if m, ok := pc.queue.Next(); ok {
		return Decision{
			Outcome: AwaitingConflictResolution,
			Effects: withRefetch(writes...),
			Conflict: &Conflict{
				SquadID:   pc.squadID,
				SquadName: pc.squadName,
				Target:    pc.target,
				Mission:   m,
				Remaining: pc.queue.Remaining(),
			},
		}
	}
	e.conflict = nil
	writes = append(writes, statusWrite(pc.squadID, pc.target))
	return Decision{Outcome: Applied, Effects: withRefetch(writes...)}
}

func joinAmbulanzMission(board *snapshot.Snapshot, squadID, ambulanzID int) (effects.Effect, bool) {
	if amb, ok := board.FindSquad(ambulanzID); ok && amb.ActiveMission != nil {
		return appendToMission(board, *amb.ActiveMission, squadID, fmt.Sprintf("squad %d to Ambulanz %d", squadID, ambulanzID))
	}
	squad, ok := board.FindSquad(squadID)
	if !ok || squad.ActiveMission == nil {
		return nil, false
	}
	return appendToMission(board, *squad.ActiveMission, ambulanzID, fmt.Sprintf("assign Ambulanz %d", ambulanzID))
}

// appendToMission lists unitID on the mission, preferring the board's current
// squad_ids over the active-mission summary.
func appendToMission(board *snapshot.Snapshot, active snapshot.ActiveMission, unitID int, reason string) (effects.Effect, bool) {
	ids := active.SquadIDs
	if m, found := board.FindMission(active.ID); found {
		ids = m.SquadIDs
	}
	if slices.Contains(ids, unitID) {
		return nil, false
	}
	return effects.MissionUpdateEffect{
		MissionID: active.ID,
		Patch:     snapshot.SquadIDsPatch(append(slices.Clone(ids), unitID)),
		Reason:    reason,
	}, true
}

func orEmpty(board *snapshot.Snapshot) *snapshot.Snapshot {
	if board == nil {
		return &snapshot.Snapshot{}
	}
	return board
}

func statusWrite(squadID int, s status.Status) effects.Effect {
	return effects.StatusWriteEffect{SquadID: squadID, Status: s}
}

// withRefetch appends a refetch when there is anything to write.
func withRefetch(writes ...effects.Effect) []effects.Effect {
	if len(writes) == 0 {
		return nil
	}
	return append(writes, effects.RefetchEffect{Reason: "status workflow"})
}
