package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"taskpilot/backend/types"
)

func TestNotifyDeliversPayload(t *testing.T) {
	var got []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		got, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()

	task := types.Task{ID: "1", Title: "write report", Completed: true}
	NewDispatcher().Notify(context.Background(), srv.URL, EventTaskCompleted, task)

	var p struct {
		Event  string     `json:"event"`
		Task   types.Task `json:"task"`
		Source string     `json:"source"`
	}
	if err := json.Unmarshal(got, &p); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if p.Event != EventTaskCompleted {
		t.Errorf("event = %q", p.Event)
	}
	if p.Task.ID != "1" || !p.Task.Completed {
		t.Errorf("task = %+v", p.Task)
	}
	if p.Source != "taskpilot" {
		t.Errorf("source = %q", p.Source)
	}
}

func TestNotifySurvivesUnreachableURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	// Must return normally, not panic or propagate the error.
	NewDispatcher().Notify(context.Background(), srv.URL, EventTaskCreated, types.Task{ID: "1"})
}

func TestNotifyIgnoresUpstreamErrors(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "teapot", http.StatusTeapot)
	}))
	defer srv.Close()

	NewDispatcher().Notify(context.Background(), srv.URL, EventTaskDeleted, types.Task{ID: "1"})
	if calls.Load() != 1 {
		t.Errorf("calls = %d", calls.Load())
	}
}

func TestNotifySkipsEmptyURL(t *testing.T) {
	NewDispatcher().Notify(context.Background(), "", EventTaskCreated, types.Task{ID: "1"})
}
