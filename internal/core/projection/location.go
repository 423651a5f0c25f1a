package projection

import (
	"fmt"

	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/core/status"
)

// DefaultDestination is shown when a squad heads to a drop-off point without
// a named Ambulanz or override.
const DefaultDestination = "BHP"

// UnknownLocation is shown when no previous mission location is known.
const UnknownLocation = "Standort?"

// LocationText is the two-part location line on a Trupp card.
type LocationText struct {
	Left  string
	Right string
	// Warning marks a squad that is listed on an active mission while
	// reporting a status that contradicts it.
	Warning bool
}

func (l LocationText) String() string {
	if l.Right == "" {
		return l.Left
	}
	return l.Left + " | " + l.Right
}

var missionStatuses = []status.Status{status.EnRouteIncident, status.AtIncident, status.EnRouteDropoff, status.AtDropoff}

var contradictory = []status.Status{status.Ready, status.Pause, status.NotReady}

// Location derives the location line for a Trupp from the board.
func Location(sq snapshot.Squad, board *snapshot.Snapshot) LocationText {
	if sq.ActiveMission != nil {
		return activeLocation(sq, board)
	}
	return idleLocation(sq, board)
}

func activeLocation(sq snapshot.Squad, board *snapshot.Snapshot) LocationText {
	am := sq.ActiveMission
	dest := destinationName(sq, board)

	var out LocationText
	switch sq.CurrentStatus {
	case status.EnRouteDropoff:
		out.Left = fmt.Sprintf("Einsatz #%s (%s) - %s", am.DisplayNumber(), am.Location, am.Reason)
		out.Right = "r. " + dest
	case status.AtDropoff:
		out.Left = fmt.Sprintf("Einsatz #%s (%s) - %s", am.DisplayNumber(), am.Location, am.Reason)
		out.Right = dest
	case status.EnRouteIncident:
		out.Left = fmt.Sprintf("Einsatz #%s - %s", am.DisplayNumber(), am.Reason)
		out.Right = "r. " + am.Location
	default:
		out.Left = fmt.Sprintf("Einsatz #%s - %s", am.DisplayNumber(), am.Reason)
		out.Right = am.Location
	}

	if sq.CustomLocation != "" && !sq.CurrentStatus.In(missionStatuses...) {
		out.Right = sq.CustomLocation
	}
	out.Warning = sq.CurrentStatus.In(contradictory...)
	return out
}

// destinationName is the override, else an Ambulanz on the active mission,
// else the default treatment point.
func destinationName(sq snapshot.Squad, board *snapshot.Snapshot) string {
	if sq.CustomLocation != "" {
		return sq.CustomLocation
	}
	if board == nil {
		return DefaultDestination
	}
	m, ok := board.FindMission(sq.ActiveMission.ID)
	if !ok {
		return DefaultDestination
	}
	for _, unit := range board.Squads {
		if unit.IsAmbulanz() && m.HasSquad(unit.ID) {
			return unit.Name
		}
	}
	return DefaultDestination
}

func idleLocation(sq snapshot.Squad, board *snapshot.Snapshot) LocationText {
	label, known := status.LabelFor(sq.CurrentStatus)
	if !known {
		return LocationText{Left: string(sq.CurrentStatus)}
	}

	out := LocationText{Left: label.Long}
	switch sq.CurrentStatus {
	case status.EnRouteDropoff, status.AtDropoff:
		dest := sq.CustomLocation
		if dest == "" {
			dest = DefaultDestination
		}
		out.Right = dest
		if sq.CurrentStatus == status.EnRouteDropoff {
			out.Right = "r. " + dest
		}
	case status.EnRouteIncident, status.AtIncident:
		where := UnknownLocation
		if board != nil {
			if m, ok := board.LastCompletedMissionFor(sq.ID); ok {
				where = m.Location
			}
		}
		out.Right = where
		if sq.CurrentStatus == status.EnRouteIncident {
			out.Right = "r. " + where
		}
	default:
		out.Right = sq.CustomLocation
	}
	return out
}
