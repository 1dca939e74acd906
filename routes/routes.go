package routes

import "net/http"

// RegisterAllRoutes registers all application routes.
func RegisterAllRoutes(mux *http.ServeMux) {
	RegisterTaskRoutes(mux)
	RegisterPlanRoutes(mux)
	RegisterFunctionRoutes(mux)
}
