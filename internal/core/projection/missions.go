package projection

import (
	"sort"
	"strings"

	"github.com/example/dispatchboard/internal/core/mission"
	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/core/status"
)

// SquadTag is a squad listed on a mission card.
type SquadTag struct {
	Name  string
	Label string // empty on closed missions
	Color status.Label
}

// MissionCard is the display state of one mission.
type MissionCard struct {
	ID              int
	Number          string
	Status          snapshot.MissionStatus
	Open            bool
	NoSquads        bool
	CreatedAt       string
	Location        string
	InitialLocation string // set only when it differs from Location
	Reason          string
	AlarmingEntity  string
	Description     string
	Notes           string
	Outcome         string
	Squads          []SquadTag
}

var outcomeLabels = map[string]string{
	"Intervention unterblieben":   "Int. Unt.",
	"Belassen (vor Ort belassen)": "Belassen",
	"PVW (Patient verweigert)":    "PVW",
}

// OutcomeLabel abbreviates an outcome. Hand-off outcomes render as
// "Übergeben / <type> / <id> / <notes>".
func OutcomeLabel(m snapshot.Mission) string {
	if m.Outcome == "" {
		return ""
	}
	if snapshot.IsArmOutcome(m.Outcome) {
		parts := []string{"Übergeben"}
		for _, p := range []string{m.ArmType, m.ArmID, m.ArmNotes} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		return strings.Join(parts, " / ")
	}
	if l, ok := outcomeLabels[m.Outcome]; ok {
		return l
	}
	return m.Outcome
}

// Card projects a mission.
func Card(m snapshot.Mission) MissionCard {
	c := MissionCard{
		ID:             m.ID,
		Number:         "#" + m.DisplayNumber(),
		Status:         m.Status,
		Open:           !m.Closed(),
		Location:       m.Location,
		Reason:         m.Reason,
		AlarmingEntity: m.AlarmingEntity,
		Description:    m.Description,
		Notes:          m.Notes,
		Outcome:        OutcomeLabel(m),
	}
	c.NoSquads = c.Open && len(m.SquadIDs) == 0
	if !m.CreatedAt.IsZero() {
		c.CreatedAt = m.CreatedAt.Local().Format("15:04")
	}
	if m.InitialLocation != "" && m.InitialLocation != m.Location {
		c.InitialLocation = m.InitialLocation
	}
	for _, ref := range m.Squads {
		tag := SquadTag{Name: ref.Name}
		if c.Open {
			label, _ := status.LabelFor(ref.Status)
			tag.Label = label.Short
			tag.Color = label
		}
		c.Squads = append(c.Squads, tag)
	}
	return c
}

// SortMissions splits missions into open and closed lists. Open missions
// without squads come first; both lists are otherwise newest first.
func SortMissions(missions []snapshot.Mission) (open, closed []snapshot.Mission) {
	for _, m := range missions {
		if m.Closed() {
			closed = append(closed, m)
		} else {
			open = append(open, m)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		ei, ej := len(open[i].SquadIDs) == 0, len(open[j].SquadIDs) == 0
		if ei != ej {
			return ei
		}
		return sortKey(open[i]) > sortKey(open[j])
	})
	sort.SliceStable(closed, func(i, j int) bool {
		return sortKey(closed[i]) > sortKey(closed[j])
	})
	return open, closed
}

func sortKey(m snapshot.Mission) int {
	if n := mission.ParseMissionNumber(m.MissionNumber); n > 0 {
		return n
	}
	return m.ID
}
