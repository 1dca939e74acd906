package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"taskpilot/backend/config"
	"taskpilot/backend/planner"
	"taskpilot/backend/supabase"
	"taskpilot/backend/types"
)

func plannerFor(r *http.Request) (*planner.Planner, string, error) {
	_, userID, _, err := supabase.ClientFromRequest(r)
	if err != nil {
		return nil, "", err
	}
	st := Stores.ForUser(userID)
	return Planners.ForUser(userID, st), userID, nil
}

type generatePlanRequest struct {
	Preferences types.PlanPreferences `json:"preferences"`
}

func GeneratePlanHandler(w http.ResponseWriter, r *http.Request) {
	var req generatePlanRequest
	if r.Body != nil {
		// An empty body means default preferences.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	pl, userID, err := plannerFor(r)
	if err != nil {
		config.Logger.Error("Auth failed:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	plan, err := pl.Generate(r.Context(), Stores.ForUser(userID).Tasks(), req.Preferences)
	switch {
	case errors.Is(err, planner.ErrGenerating):
		writeError(w, "A plan is already being generated", http.StatusConflict)
		return
	case errors.Is(err, planner.ErrEditing):
		writeError(w, "Plan edits in progress, save or cancel first", http.StatusConflict)
		return
	}

	writeJSON(w, http.StatusOK, types.PlanResponse{
		Success: true,
		State:   string(pl.State()),
		Plan:    plan,
	})
}

func GetPlanHandler(w http.ResponseWriter, r *http.Request) {
	pl, _, err := plannerFor(r)
	if err != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, types.PlanResponse{
		Success: true,
		State:   string(pl.State()),
		Plan:    pl.Plan(),
	})
}

func EditPlanHandler(w http.ResponseWriter, r *http.Request) {
	pl, _, err := plannerFor(r)
	if err != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if err := pl.BeginEdit(); err != nil {
		writeError(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusOK, types.PlanResponse{Success: true, State: string(pl.State()), Plan: pl.Plan()})
}

type moveBlockRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func MovePlanBlockHandler(w http.ResponseWriter, r *http.Request) {
	var req moveBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	pl, _, err := plannerFor(r)
	if err != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if err := pl.MoveBlock(req.From, req.To); err != nil {
		status := http.StatusConflict
		if errors.Is(err, planner.ErrBadIndex) {
			status = http.StatusBadRequest
		}
		writeError(w, err.Error(), status)
		return
	}
	writeJSON(w, http.StatusOK, types.PlanResponse{Success: true, State: string(pl.State()), Plan: pl.Plan()})
}

func SavePlanHandler(w http.ResponseWriter, r *http.Request) {
	pl, _, err := plannerFor(r)
	if err != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if err := pl.Save(); err != nil {
		writeError(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusOK, types.PlanResponse{Success: true, State: string(pl.State()), Plan: pl.Plan()})
}

func CancelPlanHandler(w http.ResponseWriter, r *http.Request) {
	pl, _, err := plannerFor(r)
	if err != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if err := pl.Cancel(); err != nil {
		writeError(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusOK, types.PlanResponse{Success: true, State: string(pl.State()), Plan: pl.Plan()})
}

// SyncPlanCalendarHandler pushes the plan's matched blocks to the
// calendar and reports aggregate counts only.
func SyncPlanCalendarHandler(w http.ResponseWriter, r *http.Request) {
	pl, userID, err := plannerFor(r)
	if err != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	tasks := Stores.ForUser(userID).Tasks()
	res := pl.SyncToCalendar(r.Context(), tasks, func(ctx context.Context, task types.Task) (string, error) {
		link, err := Calendar.Link(ctx, task)
		if err != nil {
			return "", err
		}
		return link.GoogleCalendarURL, nil
	})

	msg := fmt.Sprintf("%d of %d blocks synced", res.Synced, res.Synced+res.Failed+res.Unmatched)
	writeJSON(w, http.StatusOK, types.PlanSyncResponse{
		Success:      res.Failed == 0,
		Synced:       res.Synced,
		Failed:       res.Failed,
		Message:      msg,
		ErrorMessage: res.FirstError,
	})
}
