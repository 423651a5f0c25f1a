package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/example/dispatchboard/internal/core/reconcile"
	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/core/status"
	"github.com/example/dispatchboard/internal/ports/secondary"
	"github.com/example/dispatchboard/internal/store"
)

var errBackendDown = errors.New("connection refused")

// Ensure mockBackend implements the interface
var _ secondary.Backend = (*mockBackend)(nil)

// mockBackend implements secondary.Backend for testing.
// Writes are recorded as calls; failing holds per-method errors.
type mockBackend struct {
	mu       sync.Mutex
	snap     *snapshot.Snapshot
	fetchErr error
	failing  map[string]error
	calls    []string
	fetches  int

	statuses      map[int]status.Status
	missionPatch  map[int]snapshot.MissionPatch
	squadPatch    map[int]snapshot.SquadPatch
	created       []snapshot.NewMission
	createdSquads []snapshot.NewSquad
	deleted       map[int]string
	order         []int
	logs          []string
	export        *secondary.ExportFile
	changes       []snapshot.LogEntry
}

func newMockBackend(snap *snapshot.Snapshot) *mockBackend {
	return &mockBackend{
		snap:         snap,
		failing:      make(map[string]error),
		statuses:     make(map[int]status.Status),
		missionPatch: make(map[int]snapshot.MissionPatch),
		squadPatch:   make(map[int]snapshot.SquadPatch),
		deleted:      make(map[int]string),
	}
}

func (m *mockBackend) record(call string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
	return m.failing[call]
}

func (m *mockBackend) callLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockBackend) FetchSnapshot(ctx context.Context) (*snapshot.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches++
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.snap.Clone(), nil
}

func (m *mockBackend) SetStatus(ctx context.Context, squadID int, s status.Status) error {
	if err := m.record("SetStatus"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses[squadID] = s
	return nil
}

func (m *mockBackend) CreateMission(ctx context.Context, nm snapshot.NewMission) (int, error) {
	if err := m.record("CreateMission"); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, nm)
	return 100 + len(m.created), nil
}

func (m *mockBackend) UpdateMission(ctx context.Context, missionID int, patch snapshot.MissionPatch) error {
	if err := m.record("UpdateMission"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.missionPatch[missionID] = patch
	return nil
}

func (m *mockBackend) DeleteMission(ctx context.Context, missionID int, reason string) error {
	if err := m.record("DeleteMission"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted[missionID] = reason
	return nil
}

func (m *mockBackend) MissionLogs(ctx context.Context, missionID int) ([]snapshot.LogEntry, error) {
	if err := m.record("MissionLogs"); err != nil {
		return nil, err
	}
	id := missionID
	return []snapshot.LogEntry{{ID: 1, Action: "Einsatz erstellt", MissionID: &id}}, nil
}

func (m *mockBackend) CreateSquad(ctx context.Context, s snapshot.NewSquad) (int, error) {
	if err := m.record("CreateSquad"); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createdSquads = append(m.createdSquads, s)
	return 50 + len(m.createdSquads), nil
}

func (m *mockBackend) UpdateSquad(ctx context.Context, squadID int, patch snapshot.SquadPatch) error {
	if err := m.record("UpdateSquad"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.squadPatch[squadID] = patch
	return nil
}

func (m *mockBackend) DeleteSquad(ctx context.Context, squadID int) error {
	return m.record("DeleteSquad")
}

func (m *mockBackend) ReorderSquads(ctx context.Context, order []int) error {
	if err := m.record("ReorderSquads"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.order = append([]int(nil), order...)
	return nil
}

func (m *mockBackend) StartShift(ctx context.Context, settings snapshot.ShiftSettings) error {
	return m.record("StartShift")
}

func (m *mockBackend) UpdateShift(ctx context.Context, settings snapshot.ShiftSettings) error {
	return m.record("UpdateShift")
}

func (m *mockBackend) EndShift(ctx context.Context) (*secondary.ExportFile, error) {
	if err := m.record("EndShift"); err != nil {
		return nil, err
	}
	return m.export, nil
}

func (m *mockBackend) Changes(ctx context.Context) ([]snapshot.LogEntry, error) {
	if err := m.record("Changes"); err != nil {
		return nil, err
	}
	return m.changes, nil
}

func (m *mockBackend) AddLog(ctx context.Context, details string) error {
	if err := m.record("AddLog"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, details)
	return nil
}

// mockJournal implements secondary.ActionJournal for testing.
type mockJournal struct {
	mu        sync.Mutex
	entries   []*secondary.JournalEntry
	appendErr error
	pruned    int
}

func (m *mockJournal) Append(ctx context.Context, entry *secondary.JournalEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return m.appendErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockJournal) List(ctx context.Context, filters secondary.JournalFilters) ([]*secondary.JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*secondary.JournalEntry
	for _, e := range m.entries {
		if filters.FailedOnly && e.Outcome != secondary.OutcomeFailed {
			continue
		}
		if filters.Kind != "" && e.Kind != filters.Kind {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *mockJournal) PruneOlderThan(ctx context.Context, days int) (int, error) {
	return m.pruned, nil
}

func (m *mockJournal) kinds() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Kind + ":" + e.Outcome
	}
	return out
}

// mockAlerter collects alerts.
type mockAlerter struct {
	mu       sync.Mutex
	messages []string
}

func (m *mockAlerter) Alert(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
}

func (m *mockAlerter) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

var fixtureStart = time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC)

// fixtureBoard: Trupp 1 on open mission 10, Trupp 2 free, Ambulanz 5.
func fixtureBoard() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Config: &snapshot.Config{SessionID: "sess-1", Location: "Stadtfest", StartTime: fixtureStart, IsActive: true},
		Squads: []snapshot.Squad{
			{ID: 1, Name: "Trupp 1", Type: status.Trupp, CurrentStatus: status.EnRouteIncident, LastStatusChange: fixtureStart,
				ActiveMission: &snapshot.ActiveMission{ID: 10, MissionNumber: "001", Location: "Bühne", SquadIDs: []int{1}}},
			{ID: 2, Name: "Trupp 2", Type: status.Trupp, CurrentStatus: status.Ready, LastStatusChange: fixtureStart},
			{ID: 5, Name: "Ambulanz", Type: status.Ambulanz, CurrentStatus: status.Ready, LastStatusChange: fixtureStart, PatientCount: 1},
		},
		Missions: []snapshot.Mission{
			{ID: 10, MissionNumber: "001", Status: snapshot.MissionRunning, Location: "Bühne", Reason: "Kollaps", Notes: "server", SquadIDs: []int{1}},
			{ID: 11, MissionNumber: "002", Status: snapshot.MissionCompleted, Location: "Eingang", Reason: "Sturz", Outcome: "Belassen"},
		},
	}
}

// testEnv wires real services against the mocks.
type testEnv struct {
	backend   *mockBackend
	journal   *mockJournal
	alerter   *mockAlerter
	store     *store.Store
	focus     *FocusTracker
	dashboard *DashboardServiceImpl
	executor  *DefaultEffectExecutor
}

func newTestEnv(snap *snapshot.Snapshot) *testEnv {
	env := &testEnv{
		backend: newMockBackend(snap),
		journal: &mockJournal{},
		alerter: &mockAlerter{},
		store:   store.New(reconcile.Options{GraceWindow: 5 * time.Second}),
		focus:   NewFocusTracker(),
	}
	env.dashboard = NewDashboardService(DashboardDeps{
		Backend: env.backend,
		Store:   env.store,
		Focus:   env.focus,
	})
	env.executor = NewEffectExecutor(ExecutorDeps{
		Backend:   env.backend,
		Journal:   env.journal,
		Alerter:   env.alerter,
		Refresher: env.dashboard,
	})
	return env
}

// load performs the initial refresh.
func (e *testEnv) load() *testEnv {
	if _, err := e.dashboard.Refresh(context.Background()); err != nil {
		panic(err)
	}
	return e
}
