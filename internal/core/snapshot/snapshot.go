// Package snapshot contains the client-side model of the backend snapshot:
// shift config, squads, missions and predefined options.
// This is part of the Functional Core - no I/O, only pure functions.
package snapshot

import (
	"time"

	"github.com/example/dispatchboard/internal/core/status"
)

// Snapshot is the full state returned by GET /api/init.
type Snapshot struct {
	Config   *Config             `json:"config"`
	Squads   []Squad             `json:"squads"`
	Missions []Mission           `json:"missions"`
	Options  map[string][]string `json:"options"`
}

// Config describes the running shift. A nil Config means no shift is active.
type Config struct {
	SessionID string     `json:"session_id"`
	Location  string     `json:"location"`
	Address   string     `json:"address"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	IsActive  bool       `json:"is_active"`
}

// ShiftActive reports whether a shift is in progress.
func (s *Snapshot) ShiftActive() bool {
	return s != nil && s.Config != nil
}

// Squad is the cached copy of a backend squad.
type Squad struct {
	ID               int             `json:"id"`
	Name             string          `json:"name"`
	Type             status.UnitType `json:"type"`
	Qualification    string          `json:"qualification"`
	ServiceNumbers   string          `json:"service_numbers"`
	CustomLocation   string          `json:"custom_location"`
	CurrentStatus    status.Status   `json:"current_status"`
	Position         int             `json:"position"`
	LastStatusChange time.Time       `json:"last_status_change"`
	ActiveMission    *ActiveMission  `json:"active_mission"`
	LastMission      *MissionRef     `json:"last_mission"`
	PatientCount     int             `json:"patient_count"`
}

// IsAmbulanz reports whether the squad is a stationary Ambulanz unit.
func (s Squad) IsAmbulanz() bool {
	return s.Type == status.Ambulanz
}

// ActiveMission is the server-computed summary of the newest open mission
// that references a squad.
type ActiveMission struct {
	ID            int    `json:"id"`
	MissionNumber string `json:"mission_number"`
	Location      string `json:"location"`
	Reason        string `json:"reason"`
	SquadIDs      []int  `json:"squad_ids"`
}

// DisplayNumber returns the mission number, falling back to the id.
func (a ActiveMission) DisplayNumber() string {
	return displayNumber(a.MissionNumber, a.ID)
}

// MissionRef is a short reference to a mission.
type MissionRef struct {
	ID            int    `json:"id"`
	MissionNumber string `json:"mission_number"`
	Location      string `json:"location"`
}

// SquadRef is the denormalized squad projection carried on a mission.
type SquadRef struct {
	ID     int           `json:"id"`
	Name   string        `json:"name"`
	Status status.Status `json:"status"`
}

// FindSquad returns the squad with the given id.
func (s *Snapshot) FindSquad(id int) (Squad, bool) {
	for _, sq := range s.Squads {
		if sq.ID == id {
			return sq, true
		}
	}
	return Squad{}, false
}

// FindMission returns the mission with the given id.
func (s *Snapshot) FindMission(id int) (Mission, bool) {
	for _, m := range s.Missions {
		if m.ID == id {
			return m, true
		}
	}
	return Mission{}, false
}

// AmbulanzUnits returns all Ambulanz squads in snapshot order.
func (s *Snapshot) AmbulanzUnits() []Squad {
	var out []Squad
	for _, sq := range s.Squads {
		if sq.IsAmbulanz() {
			out = append(out, sq)
		}
	}
	return out
}

// OpenMissionsFor returns every open mission whose squad_ids contain the
// squad, in snapshot order.
func (s *Snapshot) OpenMissionsFor(squadID int) []Mission {
	var out []Mission
	for _, m := range s.Missions {
		if !m.Closed() && m.HasSquad(squadID) {
			out = append(out, m)
		}
	}
	return out
}

// LastCompletedMissionFor returns the completed mission with the highest id
// that references the squad.
func (s *Snapshot) LastCompletedMissionFor(squadID int) (Mission, bool) {
	var (
		best  Mission
		found bool
	)
	for _, m := range s.Missions {
		if m.Status != MissionCompleted || !m.HasSquad(squadID) {
			continue
		}
		if !found || m.ID > best.ID {
			best = m
			found = true
		}
	}
	return best, found
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := &Snapshot{
		Squads:   make([]Squad, len(s.Squads)),
		Missions: CloneMissions(s.Missions),
	}
	if s.Config != nil {
		cfg := *s.Config
		if s.Config.EndTime != nil {
			end := *s.Config.EndTime
			cfg.EndTime = &end
		}
		out.Config = &cfg
	}
	for i, sq := range s.Squads {
		out.Squads[i] = sq.clone()
	}
	if s.Options != nil {
		out.Options = make(map[string][]string, len(s.Options))
		for k, v := range s.Options {
			out.Options[k] = append([]string(nil), v...)
		}
	}
	return out
}

func (s Squad) clone() Squad {
	if s.ActiveMission != nil {
		am := *s.ActiveMission
		am.SquadIDs = append([]int(nil), s.ActiveMission.SquadIDs...)
		s.ActiveMission = &am
	}
	if s.LastMission != nil {
		lm := *s.LastMission
		s.LastMission = &lm
	}
	return s
}
