package routes

import (
	"net/http"

	"taskpilot/backend/handlers"
)

// RegisterFunctionRoutes registers the backend-function endpoints
// consumed directly by the front end.
func RegisterFunctionRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /calendar-link", handlers.CalendarLinkHandler)
	mux.HandleFunc("GET /check-subscription", handlers.CheckSubscriptionHandler)
	mux.HandleFunc("POST /customer-portal", handlers.CustomerPortalHandler)
	mux.HandleFunc("POST /send-support-email", handlers.SupportEmailHandler)
	mux.HandleFunc("POST /webhook-settings", handlers.WebhookSettingsHandler)
}
