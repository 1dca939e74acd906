package routes

import (
	"net/http"

	"taskpilot/backend/handlers"
)

// RegisterPlanRoutes registers the daily-plan routes.
func RegisterPlanRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /plan", handlers.GetPlanHandler)
	mux.HandleFunc("POST /plan/generate", handlers.GeneratePlanHandler)
	mux.HandleFunc("POST /plan/edit", handlers.EditPlanHandler)
	mux.HandleFunc("POST /plan/move", handlers.MovePlanBlockHandler)
	mux.HandleFunc("POST /plan/save", handlers.SavePlanHandler)
	mux.HandleFunc("POST /plan/cancel", handlers.CancelPlanHandler)
	mux.HandleFunc("POST /plan/sync-calendar", handlers.SyncPlanCalendarHandler)
	mux.HandleFunc("GET /insights", handlers.GetInsightsHandler)
}
