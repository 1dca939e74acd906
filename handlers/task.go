package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"taskpilot/backend/ai"
	"taskpilot/backend/config"
	"taskpilot/backend/supabase"
	"taskpilot/backend/types"
	"taskpilot/backend/webhook"
)

type addTaskRequest struct {
	Title   string `json:"title"`
	Enhance bool   `json:"enhance"`
	Model   string `json:"model,omitempty"`
}

func AddTaskHandler(w http.ResponseWriter, r *http.Request) {
	var req addTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Logger.Error("Failed to decode task JSON:", err)
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, "Missing title", http.StatusBadRequest)
		return
	}

	_, userID, _, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Auth failed:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	st := Stores.ForUser(userID)

	var enh *types.TaskEnhancement
	if req.Enhance {
		// Enhancement degrades internally; a model outage still
		// produces a usable task.
		e := AI.EnhanceTask(r.Context(), req.Title, ai.ResolveModel(req.Model))
		enh = &e
	}
	task := st.AddTask(req.Title, enh)

	notifyAsync(st.WebhookURL(), webhook.EventTaskCreated, task)
	writeJSON(w, http.StatusCreated, types.TaskResponse{Success: true, Task: task})
}

type parseTaskRequest struct {
	Input string `json:"input"`
}

// ParseTaskHandler captures a task from natural language.
func ParseTaskHandler(w http.ResponseWriter, r *http.Request) {
	var req parseTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Input) == "" {
		writeError(w, "Missing input", http.StatusBadRequest)
		return
	}

	_, userID, _, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Auth failed:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	st := Stores.ForUser(userID)
	intent := AI.ParseNaturalLanguage(r.Context(), req.Input)
	task := st.AddParsedTask(intent)

	notifyAsync(st.WebhookURL(), webhook.EventTaskCreated, task)
	writeJSON(w, http.StatusCreated, types.TaskResponse{Success: true, Task: task})
}

func ToggleTaskHandler(w http.ResponseWriter, r *http.Request) {
	taskID := r.URL.Query().Get("id")
	if taskID == "" {
		writeError(w, "Missing task ID", http.StatusBadRequest)
		return
	}

	_, userID, _, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Auth failed:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	st := Stores.ForUser(userID)
	task, ok := st.ToggleTask(taskID)
	if !ok {
		writeError(w, "Task not found", http.StatusNotFound)
		return
	}

	if task.Completed {
		notifyAsync(st.WebhookURL(), webhook.EventTaskCompleted, task)
	}
	writeJSON(w, http.StatusOK, types.TaskResponse{Success: true, Task: task})
}

func DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	taskID := r.URL.Query().Get("id")
	if taskID == "" {
		writeError(w, "Missing task ID", http.StatusBadRequest)
		return
	}

	_, userID, _, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Auth failed:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	st := Stores.ForUser(userID)
	task, ok := st.DeleteTask(taskID)
	if !ok {
		writeError(w, "Task not found", http.StatusNotFound)
		return
	}

	notifyAsync(st.WebhookURL(), webhook.EventTaskDeleted, task)
	writeJSON(w, http.StatusOK, types.DeleteTaskResponse{
		Success: true,
		Message: "Task deleted successfully",
	})
}

func GetTasksHandler(w http.ResponseWriter, r *http.Request) {
	_, userID, _, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Auth failed:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	st := Stores.ForUser(userID)
	if f := r.URL.Query().Get("filter"); f != "" {
		st.SetFilter(f)
	}

	writeJSON(w, http.StatusOK, types.GetTasksResponse{
		Success: true,
		Tasks:   st.FilteredTasks(),
		Filter:  st.Filter(),
	})
}

// ForceSyncHandler pushes the full task list to Supabase, walking the
// idle -> syncing -> synced/error transitions.
func ForceSyncHandler(w http.ResponseWriter, r *http.Request) {
	client, userID, _, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Auth failed:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	st := Stores.ForUser(userID)
	if !st.BeginSync() {
		writeError(w, "A sync is already running", http.StatusConflict)
		return
	}

	synced, err := supabase.UpsertTasks(client, userID, st.Tasks())
	st.FinishSync(err)
	status, syncErr := st.SyncState()
	if err != nil {
		config.Logger.Error("Force sync failed:", err)
		writeJSON(w, http.StatusInternalServerError, types.SyncResponse{
			Success:      false,
			SyncStatus:   string(status),
			ErrorMessage: syncErr,
		})
		return
	}

	writeJSON(w, http.StatusOK, types.SyncResponse{
		Success:    true,
		SyncStatus: string(status),
		Synced:     synced,
	})
}

// notifyAsync fires a webhook without holding up the response.
// Request contexts die with the request, so dispatch gets its own.
func notifyAsync(url, event string, task types.Task) {
	if url == "" {
		return
	}
	go Webhooks.Notify(context.Background(), url, event, task)
}
