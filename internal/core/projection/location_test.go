package projection

import (
	"testing"

	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/core/status"
)

func activeBoard(ambulanzOnMission bool) *snapshot.Snapshot {
	ids := []int{1}
	if ambulanzOnMission {
		ids = append(ids, 5)
	}
	return &snapshot.Snapshot{
		Squads: []snapshot.Squad{
			{ID: 1, Name: "Trupp 1", Type: status.Trupp},
			{ID: 5, Name: "Ambulanz Nord", Type: status.Ambulanz},
		},
		Missions: []snapshot.Mission{
			{ID: 10, MissionNumber: "004", Status: snapshot.MissionRunning, Location: "Bühne", Reason: "Sturz", SquadIDs: ids},
			{ID: 3, MissionNumber: "001", Status: snapshot.MissionCompleted, Location: "Eingang", SquadIDs: []int{1}},
			{ID: 7, MissionNumber: "002", Status: snapshot.MissionCompleted, Location: "Zelt 3", SquadIDs: []int{1}},
		},
	}
}

func onMission(s status.Status, custom string) snapshot.Squad {
	return snapshot.Squad{
		ID: 1, Type: status.Trupp, CurrentStatus: s, CustomLocation: custom,
		ActiveMission: &snapshot.ActiveMission{ID: 10, MissionNumber: "004", Location: "Bühne", Reason: "Sturz"},
	}
}

func TestLocation_ActiveMission(t *testing.T) {
	tests := []struct {
		name        string
		squad       snapshot.Squad
		ambulanz    bool
		wantLeft    string
		wantRight   string
		wantWarning bool
	}{
		{
			name:      "en route to incident",
			squad:     onMission(status.EnRouteIncident, ""),
			wantLeft:  "Einsatz #004 - Sturz",
			wantRight: "r. Bühne",
		},
		{
			name:      "at incident",
			squad:     onMission(status.AtIncident, ""),
			wantLeft:  "Einsatz #004 - Sturz",
			wantRight: "Bühne",
		},
		{
			name:      "en route to drop-off defaults to BHP",
			squad:     onMission(status.EnRouteDropoff, ""),
			wantLeft:  "Einsatz #004 (Bühne) - Sturz",
			wantRight: "r. BHP",
		},
		{
			name:      "en route to Ambulanz on mission",
			squad:     onMission(status.EnRouteDropoff, ""),
			ambulanz:  true,
			wantLeft:  "Einsatz #004 (Bühne) - Sturz",
			wantRight: "r. Ambulanz Nord",
		},
		{
			name:      "custom destination wins over Ambulanz",
			squad:     onMission(status.AtDropoff, "Uniklinik"),
			ambulanz:  true,
			wantLeft:  "Einsatz #004 (Bühne) - Sturz",
			wantRight: "Uniklinik",
		},
		{
			name:        "contradictory status with override",
			squad:       onMission(status.Pause, "Kantine"),
			wantLeft:    "Einsatz #004 - Sturz",
			wantRight:   "Kantine",
			wantWarning: true,
		},
		{
			name:        "ready while on mission warns",
			squad:       onMission(status.Ready, ""),
			wantLeft:    "Einsatz #004 - Sturz",
			wantRight:   "Bühne",
			wantWarning: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Location(tt.squad, activeBoard(tt.ambulanz))
			if got.Left != tt.wantLeft {
				t.Errorf("Left = %q, want %q", got.Left, tt.wantLeft)
			}
			if got.Right != tt.wantRight {
				t.Errorf("Right = %q, want %q", got.Right, tt.wantRight)
			}
			if got.Warning != tt.wantWarning {
				t.Errorf("Warning = %v, want %v", got.Warning, tt.wantWarning)
			}
		})
	}
}

func TestLocation_NoActiveMission(t *testing.T) {
	tests := []struct {
		name      string
		squad     snapshot.Squad
		board     *snapshot.Snapshot
		wantLeft  string
		wantRight string
	}{
		{
			name:      "ready",
			squad:     snapshot.Squad{ID: 1, CurrentStatus: status.Ready},
			board:     activeBoard(false),
			wantLeft:  "Einsatzbereit",
			wantRight: "",
		},
		{
			name:      "ready with override",
			squad:     snapshot.Squad{ID: 1, CurrentStatus: status.Ready, CustomLocation: "Tor 4"},
			board:     activeBoard(false),
			wantLeft:  "Einsatzbereit",
			wantRight: "Tor 4",
		},
		{
			name:      "en route uses last completed mission",
			squad:     snapshot.Squad{ID: 1, CurrentStatus: status.EnRouteIncident},
			board:     activeBoard(false),
			wantLeft:  "Zum Berufungsort",
			wantRight: "r. Zelt 3",
		},
		{
			name:      "at incident without history",
			squad:     snapshot.Squad{ID: 2, CurrentStatus: status.AtIncident},
			board:     activeBoard(false),
			wantLeft:  "Am Berufungsort",
			wantRight: "Standort?",
		},
		{
			name:      "to drop-off with override",
			squad:     snapshot.Squad{ID: 1, CurrentStatus: status.EnRouteDropoff, CustomLocation: "KH Mitte"},
			board:     activeBoard(false),
			wantLeft:  "Zum Abgabeort",
			wantRight: "r. KH Mitte",
		},
		{
			name:      "at drop-off default",
			squad:     snapshot.Squad{ID: 1, CurrentStatus: status.AtDropoff},
			board:     nil,
			wantLeft:  "Am Abgabeort",
			wantRight: "BHP",
		},
		{
			name:      "dispatched",
			squad:     snapshot.Squad{ID: 1, CurrentStatus: status.Dispatched},
			board:     activeBoard(false),
			wantLeft:  "Disponiert",
			wantRight: "",
		},
		{
			name:      "unknown code echoed",
			squad:     snapshot.Squad{ID: 1, CurrentStatus: status.Status("1")},
			board:     activeBoard(false),
			wantLeft:  "1",
			wantRight: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Location(tt.squad, tt.board)
			if got.Left != tt.wantLeft || got.Right != tt.wantRight {
				t.Errorf("Location() = %q | %q, want %q | %q", got.Left, got.Right, tt.wantLeft, tt.wantRight)
			}
			if got.Warning {
				t.Error("Warning set without active mission")
			}
		})
	}
}

func TestLocationText_String(t *testing.T) {
	if got := (LocationText{Left: "Pause"}).String(); got != "Pause" {
		t.Errorf("String() = %q", got)
	}
	if got := (LocationText{Left: "Am Abgabeort", Right: "BHP"}).String(); got != "Am Abgabeort | BHP" {
		t.Errorf("String() = %q", got)
	}
}
