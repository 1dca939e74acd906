// Package webhook posts task events to a user-supplied URL (Zapier
// style). Dispatch is best-effort by contract: the response body is
// never read, so delivery cannot be confirmed, and a failure never
// reaches the caller.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"taskpilot/backend/config"
	"taskpilot/backend/types"
)

const (
	sourceTag = "taskpilot"

	EventTaskCreated   = "task.created"
	EventTaskCompleted = "task.completed"
	EventTaskDeleted   = "task.deleted"
)

type payload struct {
	Event     string     `json:"event"`
	Task      types.Task `json:"task"`
	Timestamp time.Time  `json:"timestamp"`
	Source    string     `json:"source"`
}

type Dispatcher struct {
	httpClient *http.Client
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{httpClient: &http.Client{Timeout: 10 * time.Second}}
}

// Notify fires one event at the URL. Errors are logged and dropped.
func (d *Dispatcher) Notify(ctx context.Context, url, event string, task types.Task) {
	if url == "" {
		return
	}

	body, err := json.Marshal(payload{
		Event:     event,
		Task:      task,
		Timestamp: time.Now().UTC(),
		Source:    sourceTag,
	})
	if err != nil {
		config.Logger.Warnf("webhook: marshal failed: %v", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		config.Logger.Warnf("webhook: bad request for %s: %v", url, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		config.Logger.Warnf("webhook: delivery to %s failed: %v", url, err)
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
