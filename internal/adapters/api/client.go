// Package api implements the backend port over the dispatch server's HTTP/JSON API.
package api

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/core/status"
	"github.com/example/dispatchboard/internal/ctxutil"
	"github.com/example/dispatchboard/internal/ports/secondary"
)

// Header names sent with every request.
const (
	HeaderSessionID = "X-Session-ID"
	HeaderRequestID = "X-Request-ID"
)

// Options configures a Client.
type Options struct {
	BaseURL   string
	SessionID string
	Timeout   time.Duration
}

// Client implements secondary.Backend.
// Failed requests are not retried; the next poll is the retry.
type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger

	mu        sync.RWMutex
	sessionID string
}

// NewClient creates a backend client.
func NewClient(opts Options, logger *zap.Logger) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: client,
		logger:     logger,
		sessionID:  opts.SessionID,
	}
}

// SessionID returns the session id currently sent with requests.
func (c *Client) SessionID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionID
}

// SetSessionID changes the session id sent with requests.
func (c *Client) SetSessionID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionID = id
}

func (c *Client) request(ctx context.Context) *resty.Request {
	requestID := ctxutil.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req := c.httpClient.R().
		SetContext(ctx).
		SetHeader(HeaderRequestID, requestID).
		SetError(&errorBody{})
	if sid := c.SessionID(); sid != "" {
		req.SetHeader(HeaderSessionID, sid)
	}
	return req
}

// do executes req and classifies failures.
func (c *Client) do(req *resty.Request, method, path string) (*resty.Response, error) {
	start := time.Now()
	resp, err := req.Execute(method, path)
	fields := []zap.Field{
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", req.Header.Get(HeaderRequestID)),
		zap.Duration("elapsed", time.Since(start)),
	}
	if err != nil {
		c.logger.Warn("backend request failed", append(fields, zap.Error(err))...)
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	fields = append(fields, zap.Int("status_code", resp.StatusCode()))

	switch {
	case resp.StatusCode() >= 500:
		c.logger.Warn("backend server error", fields...)
		return nil, &TransportError{Method: method, Path: path, Err: fmt.Errorf("server returned %s: %s", resp.Status(), errorMessage(resp))}
	case resp.IsError():
		c.logger.Info("backend rejected request", fields...)
		return nil, &ValidationError{Method: method, Path: path, StatusCode: resp.StatusCode(), Message: errorMessage(resp)}
	}
	c.logger.Debug("backend request", fields...)
	return resp, nil
}

func errorMessage(resp *resty.Response) string {
	if body, ok := resp.Error().(*errorBody); ok && body.Error != "" {
		return body.Error
	}
	if msg := http.StatusText(resp.StatusCode()); msg != "" {
		return msg
	}
	return resp.Status()
}

// FetchSnapshot loads GET /api/init. The session id is refreshed from the
// snapshot's shift config.
func (c *Client) FetchSnapshot(ctx context.Context) (*snapshot.Snapshot, error) {
	var snap snapshot.Snapshot
	if _, err := c.do(c.request(ctx).SetResult(&snap), http.MethodGet, "/api/init"); err != nil {
		return nil, err
	}
	if snap.Config != nil && snap.Config.SessionID != "" && snap.Config.SessionID != c.SessionID() {
		c.logger.Info("session id refreshed from snapshot", zap.String("session_id", snap.Config.SessionID))
		c.SetSessionID(snap.Config.SessionID)
	}
	return &snap, nil
}

// SetStatus writes POST /api/squads/{id}/status.
func (c *Client) SetStatus(ctx context.Context, squadID int, s status.Status) error {
	body := map[string]string{"status": string(s)}
	_, err := c.do(c.request(ctx).SetBody(body), http.MethodPost, fmt.Sprintf("/api/squads/%d/status", squadID))
	return err
}

type idBody struct {
	ID int `json:"id"`
}

// CreateMission writes POST /api/missions.
func (c *Client) CreateMission(ctx context.Context, m snapshot.NewMission) (int, error) {
	var created idBody
	if _, err := c.do(c.request(ctx).SetBody(m).SetResult(&created), http.MethodPost, "/api/missions"); err != nil {
		return 0, err
	}
	return created.ID, nil
}

// UpdateMission writes PUT /api/missions/{id} with only the patched fields.
func (c *Client) UpdateMission(ctx context.Context, missionID int, patch snapshot.MissionPatch) error {
	_, err := c.do(c.request(ctx).SetBody(patch), http.MethodPut, fmt.Sprintf("/api/missions/%d", missionID))
	return err
}

// DeleteMission writes DELETE /api/missions/{id} with the reason in the body.
func (c *Client) DeleteMission(ctx context.Context, missionID int, reason string) error {
	body := map[string]string{"reason": reason}
	_, err := c.do(c.request(ctx).SetBody(body), http.MethodDelete, fmt.Sprintf("/api/missions/%d", missionID))
	return err
}

// MissionLogs loads GET /api/missions/{id}/logs.
func (c *Client) MissionLogs(ctx context.Context, missionID int) ([]snapshot.LogEntry, error) {
	var entries []snapshot.LogEntry
	if _, err := c.do(c.request(ctx).SetResult(&entries), http.MethodGet, fmt.Sprintf("/api/missions/%d/logs", missionID)); err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateSquad writes POST /api/squads.
func (c *Client) CreateSquad(ctx context.Context, s snapshot.NewSquad) (int, error) {
	var created idBody
	if _, err := c.do(c.request(ctx).SetBody(s).SetResult(&created), http.MethodPost, "/api/squads"); err != nil {
		return 0, err
	}
	return created.ID, nil
}

// UpdateSquad writes PUT /api/squads/{id}.
func (c *Client) UpdateSquad(ctx context.Context, squadID int, patch snapshot.SquadPatch) error {
	_, err := c.do(c.request(ctx).SetBody(patch), http.MethodPut, fmt.Sprintf("/api/squads/%d", squadID))
	return err
}

// DeleteSquad writes DELETE /api/squads/{id}.
func (c *Client) DeleteSquad(ctx context.Context, squadID int) error {
	_, err := c.do(c.request(ctx), http.MethodDelete, fmt.Sprintf("/api/squads/%d", squadID))
	return err
}

// ReorderSquads writes POST /api/squads/reorder.
func (c *Client) ReorderSquads(ctx context.Context, order []int) error {
	body := map[string][]int{"order": order}
	_, err := c.do(c.request(ctx).SetBody(body), http.MethodPost, "/api/squads/reorder")
	return err
}

// StartShift writes POST /api/config.
func (c *Client) StartShift(ctx context.Context, settings snapshot.ShiftSettings) error {
	_, err := c.do(c.request(ctx).SetBody(settings), http.MethodPost, "/api/config")
	return err
}

// UpdateShift writes PUT /api/config.
func (c *Client) UpdateShift(ctx context.Context, settings snapshot.ShiftSettings) error {
	_, err := c.do(c.request(ctx).SetBody(settings), http.MethodPut, "/api/config")
	return err
}

// EndShift writes POST /api/config/end and returns the export document.
func (c *Client) EndShift(ctx context.Context) (*secondary.ExportFile, error) {
	resp, err := c.do(c.request(ctx).SetHeader("Accept", "*/*"), http.MethodPost, "/api/config/end")
	if err != nil {
		return nil, err
	}
	return &secondary.ExportFile{
		Name:        exportName(resp.Header().Get("Content-Disposition"), time.Now()),
		ContentType: resp.Header().Get("Content-Type"),
		Data:        resp.Body(),
	}, nil
}

// exportName takes the file name from a Content-Disposition header, falling
// back to a timestamped name.
func exportName(disposition string, now time.Time) string {
	if _, params, err := mime.ParseMediaType(disposition); err == nil && params["filename"] != "" {
		return params["filename"]
	}
	return fmt.Sprintf("abschluss_%s.txt", now.Format("20060102_1504"))
}

// Changes loads GET /api/changes.
func (c *Client) Changes(ctx context.Context) ([]snapshot.LogEntry, error) {
	var entries []snapshot.LogEntry
	if _, err := c.do(c.request(ctx).SetResult(&entries), http.MethodGet, "/api/changes"); err != nil {
		return nil, err
	}
	return entries, nil
}

// AddLog writes POST /api/logs/custom.
func (c *Client) AddLog(ctx context.Context, details string) error {
	body := map[string]string{"details": details}
	_, err := c.do(c.request(ctx).SetBody(body), http.MethodPost, "/api/logs/custom")
	return err
}

// Ensure Client implements the interface
var _ secondary.Backend = (*Client)(nil)
