package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskpilot/backend/store"
	"taskpilot/backend/types"
	"taskpilot/backend/webhook"
)

// unverifiedToken builds a JWT accepted by the unverified claim
// parse. The signature segment is never checked.
func unverifiedToken(sub string) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	claims := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"` + sub + `","email":"user@example.com"}`))
	return header + "." + claims + ".sig"
}

func TestDeleteTaskDispatchesWebhook(t *testing.T) {
	t.Setenv("SUPABASE_URL", "http://localhost:54321")
	t.Setenv("SUPABASE_KEY", "test-key")
	Stores = store.NewManager()
	Webhooks = webhook.NewDispatcher()

	received := make(chan []byte, 1)
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received <- body
	}))
	defer hook.Close()

	st := Stores.ForUser("user-1")
	task := st.AddTask("expired draft", nil)
	st.SetWebhookURL(hook.URL)

	req := httptest.NewRequest(http.MethodDelete, "/tasks/delete?id="+task.ID, nil)
	req.Header.Set("Authorization", "Bearer "+unverifiedToken("user-1"))
	rec := httptest.NewRecorder()
	DeleteTaskHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if len(st.Tasks()) != 0 {
		t.Errorf("task not removed: %v", st.Tasks())
	}

	select {
	case body := <-received:
		var p struct {
			Event string     `json:"event"`
			Task  types.Task `json:"task"`
		}
		if err := json.Unmarshal(body, &p); err != nil {
			t.Fatalf("payload: %v", err)
		}
		if p.Event != webhook.EventTaskDeleted {
			t.Errorf("event = %q, want %q", p.Event, webhook.EventTaskDeleted)
		}
		if p.Task.ID != task.ID {
			t.Errorf("task id = %q, want %q", p.Task.ID, task.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("delete dispatched no webhook")
	}
}
