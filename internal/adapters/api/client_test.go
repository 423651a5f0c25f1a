package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/core/status"
	"github.com/example/dispatchboard/internal/ctxutil"
)

const initPayload = `{
  "config": {"session_id": "sess-42", "location": "Stadtfest", "start_time": "2025-06-14T16:00:00.000000Z", "end_time": null, "is_active": true},
  "squads": [
    {"id": 1, "name": "Trupp 1", "type": "Trupp", "current_status": "3", "custom_location": null,
     "last_status_change": "2025-06-14T17:58:30.123456Z",
     "active_mission": {"id": 10, "mission_number": "004", "location": "Bühne", "reason": "Sturz", "squad_ids": [1]},
     "patient_count": 0},
    {"id": 5, "name": "Ambulanz Nord", "type": "Ambulanz", "current_status": "2", "patient_count": 2}
  ],
  "missions": [
    {"id": 10, "mission_number": "004", "status": "Laufend", "location": "Bühne", "reason": "Sturz",
     "notes": null, "squad_ids": [1], "squads": [{"id": 1, "name": "Trupp 1", "status": "3"}],
     "created_at": "2025-06-14T17:55:00.000000Z"}
  ],
  "options": {"location": ["Bühne", "Eingang"]},
  "logs": []
}`

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Options{BaseURL: srv.URL, SessionID: "sess-1", Timeout: 2 * time.Second}, zap.NewNop()), srv
}

func TestFetchSnapshot(t *testing.T) {
	var gotSession, gotRequestID string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/init", r.URL.Path)
		gotSession = r.Header.Get(HeaderSessionID)
		gotRequestID = r.Header.Get(HeaderRequestID)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, initPayload)
	})

	snap, err := client.FetchSnapshot(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "sess-1", gotSession)
	assert.NotEmpty(t, gotRequestID)
	require.Len(t, snap.Squads, 2)
	assert.Equal(t, status.EnRouteIncident, snap.Squads[0].CurrentStatus)
	assert.Equal(t, 58, snap.Squads[0].LastStatusChange.Minute())
	require.NotNil(t, snap.Squads[0].ActiveMission)
	assert.Equal(t, "004", snap.Squads[0].ActiveMission.MissionNumber)
	assert.Equal(t, status.Ambulanz, snap.Squads[1].Type)
	require.Len(t, snap.Missions, 1)
	assert.Equal(t, snapshot.MissionRunning, snap.Missions[0].Status)
	assert.Empty(t, snap.Missions[0].Notes)
	assert.Equal(t, []string{"Bühne", "Eingang"}, snap.Options["location"])
	assert.Equal(t, "sess-42", client.SessionID(), "session id refreshed from snapshot")
}

func TestRequestIDFromContext(t *testing.T) {
	var got string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(HeaderRequestID)
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `{}`)
	})
	ctx := ctxutil.WithRequestID(context.Background(), "req-7")

	require.NoError(t, client.AddLog(ctx, "Gewitterwarnung"))

	assert.Equal(t, "req-7", got)
}

func TestSetStatus(t *testing.T) {
	var body map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/squads/3/status", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":3}`)
	})

	err := client.SetStatus(context.Background(), 3, status.NotReady)

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"status": "NEB"}, body)
}

func TestUpdateMission_SendsOnlyPatchedFields(t *testing.T) {
	var body map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/missions/10", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = io.WriteString(w, `{}`)
	})

	err := client.UpdateMission(context.Background(), 10, snapshot.SquadIDsPatch([]int{1, 5}))

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"squad_ids": []any{float64(1), float64(5)}}, body)
}

func TestDeleteMission_SendsReason(t *testing.T) {
	var body map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = io.WriteString(w, `{"status":"deleted"}`)
	})

	require.NoError(t, client.DeleteMission(context.Background(), 4, "Fehlalarm"))
	assert.Equal(t, "Fehlalarm", body["reason"])
}

func TestCreateMission(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var m snapshot.NewMission
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&m))
		assert.Equal(t, "Eingang", m.Location)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id": 17, "mission_number": "005"}`)
	})

	id, err := client.CreateMission(context.Background(), snapshot.NewMission{Location: "Eingang", Reason: "Sturz"})

	require.NoError(t, err)
	assert.Equal(t, 17, id)
}

func TestValidationError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error": "Missing required fields"}`)
	})

	_, err := client.CreateMission(context.Background(), snapshot.NewMission{})

	require.Error(t, err)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, http.StatusBadRequest, ve.StatusCode)
	assert.Equal(t, "Missing required fields", ve.Message)
	assert.True(t, IsValidation(err))
	assert.False(t, IsTransport(err))
}

func TestServerErrorIsTransport(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error": "Database error"}`)
	})

	err := client.SetStatus(context.Background(), 1, status.Ready)

	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.Contains(t, err.Error(), "Database error")
	assert.Equal(t, 1, calls, "requests must not be retried")
}

func TestConnectionFailureIsTransport(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := client.FetchSnapshot(context.Background())

	require.Error(t, err)
	assert.True(t, IsTransport(err))
}

func TestEndShift(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/config/end", r.URL.Path)
		w.Header().Set("Content-Type", "text/plain")
		w.Header().Set("Content-Disposition", `attachment; filename=abschluss_20250614_2300.txt`)
		_, _ = io.WriteString(w, "Einsatzprotokoll\n")
	})

	file, err := client.EndShift(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "abschluss_20250614_2300.txt", file.Name)
	assert.Equal(t, "Einsatzprotokoll\n", string(file.Data))
}

func TestExportNameFallback(t *testing.T) {
	now := time.Date(2025, 6, 14, 23, 5, 0, 0, time.UTC)
	assert.Equal(t, "abschluss_20250614_2305.txt", exportName("", now))
	assert.Equal(t, "x.txt", exportName(`attachment; filename="x.txt"`, now))
}

func TestReorderAndChanges(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/squads/reorder":
			var body map[string][]int
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, []int{3, 1, 2}, body["order"])
			_, _ = io.WriteString(w, `{"status":"ok"}`)
		case "/api/changes":
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `[{"id": 2, "timestamp": "2025-06-14T18:00:00Z", "action": "STATUS", "details": "Trupp 1: 2 -> 3", "mission_id": null, "squad_id": 1}]`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	require.NoError(t, client.ReorderSquads(context.Background(), []int{3, 1, 2}))
	entries, err := client.Changes(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "STATUS", entries[0].Action)
	require.NotNil(t, entries[0].SquadID)
	assert.Equal(t, 1, *entries[0].SquadID)
	assert.Nil(t, entries[0].MissionID)
}
