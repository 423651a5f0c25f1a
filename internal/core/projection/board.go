package projection

import (
	"time"

	"github.com/example/dispatchboard/internal/core/snapshot"
)

// SquadView is the display state of one squad card.
type SquadView struct {
	ID            int
	Name          string
	Qualification string
	Ambulanz      bool
	Info          string // location line for Trupps, patient count for Ambulanz units
	Warning       bool
	Timer         TimerView
	Buttons       []Button
}

// Board is the display state of the whole dashboard.
type Board struct {
	ShiftActive bool
	Location    string
	Squads      []SquadView
	Open        []MissionCard
	Closed      []MissionCard
	Total       int
	OpenCount   int
}

// Project derives the full board from a snapshot at now.
func Project(snap *snapshot.Snapshot, now time.Time) Board {
	var b Board
	if snap == nil {
		return b
	}
	b.ShiftActive = snap.ShiftActive()
	if snap.Config != nil {
		b.Location = snap.Config.Location
	}

	for _, sq := range snap.Squads {
		v := SquadView{
			ID:            sq.ID,
			Name:          sq.Name,
			Qualification: sq.Qualification,
			Ambulanz:      sq.IsAmbulanz(),
			Timer:         Timer(sq, now),
			Buttons:       Buttons(sq),
		}
		if v.Ambulanz {
			v.Info = AmbulanzInfo(sq)
		} else {
			loc := Location(sq, snap)
			v.Info = loc.String()
			v.Warning = loc.Warning
		}
		b.Squads = append(b.Squads, v)
	}

	open, closed := SortMissions(snap.Missions)
	for _, m := range open {
		b.Open = append(b.Open, Card(m))
	}
	for _, m := range closed {
		b.Closed = append(b.Closed, Card(m))
	}
	b.Total = len(snap.Missions)
	b.OpenCount = len(open)
	return b
}
