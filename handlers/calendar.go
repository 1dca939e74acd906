package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"taskpilot/backend/calendar"
	"taskpilot/backend/config"
	"taskpilot/backend/supabase"
	"taskpilot/backend/types"
)

// CalendarLinkHandler is the calendar backend function: it turns a
// task payload into an iCalendar payload and a pre-filled Google
// Calendar link.
func CalendarLinkHandler(w http.ResponseWriter, r *http.Request) {
	var req types.CalendarLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Logger.Error("Failed to decode calendar request:", err)
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, "Missing title", http.StatusBadRequest)
		return
	}

	task := types.Task{
		ID:            req.TaskID,
		Title:         req.Title,
		Description:   req.Description,
		DueDate:       req.DueDate,
		DueTime:       req.DueTime,
		EstimatedTime: req.EstimatedTime,
		Completed:     req.Completed,
		Priority:      types.Priority(req.Priority),
		Category:      req.Category,
	}

	start, end := calendar.EventWindow(task, time.Now())
	msg := "Calendar event created"
	if req.IsUpdate {
		msg = "Calendar event updated"
	}

	writeJSON(w, http.StatusOK, types.CalendarLinkResponse{
		Success:           true,
		ICalContent:       calendar.BuildICal(task, start, end),
		GoogleCalendarURL: calendar.BuildGoogleCalendarURL(task, start, end),
		Message:           msg,
	})
}

type batchSyncRequest struct {
	IncludeCompleted bool `json:"include_completed"`
}

// SyncTasksCalendarHandler batch-syncs the user's tasks to the
// calendar, counting successes in aggregate.
func SyncTasksCalendarHandler(w http.ResponseWriter, r *http.Request) {
	var req batchSyncRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	_, userID, _, err := supabase.ClientFromRequest(r)
	if err != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	tasks := Stores.ForUser(userID).Tasks()
	res := Calendar.SyncAll(r.Context(), tasks, req.IncludeCompleted)

	writeJSON(w, http.StatusOK, types.PlanSyncResponse{
		Success: res.Failed == 0,
		Synced:  res.Synced,
		Failed:  res.Failed,
	})
}
