package routes

import (
	"net/http"

	"taskpilot/backend/handlers"
)

// RegisterTaskRoutes registers all task-related routes.
func RegisterTaskRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /tasks", handlers.AddTaskHandler)
	mux.HandleFunc("POST /tasks/parse", handlers.ParseTaskHandler)
	mux.HandleFunc("PATCH /tasks/toggle", handlers.ToggleTaskHandler)
	mux.HandleFunc("DELETE /tasks/delete", handlers.DeleteTaskHandler)
	mux.HandleFunc("GET /tasks", handlers.GetTasksHandler)
	mux.HandleFunc("POST /tasks/sync", handlers.ForceSyncHandler)
	mux.HandleFunc("POST /tasks/sync-calendar", handlers.SyncTasksCalendarHandler)
}
