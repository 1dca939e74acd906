package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"taskpilot/backend/config"
	"taskpilot/backend/supabase"
)

type webhookSettingsRequest struct {
	URL string `json:"url"`
}

type webhookSettingsResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
}

// WebhookSettingsHandler stores the user's outgoing webhook URL. An
// empty URL disables dispatch.
func WebhookSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var req webhookSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	req.URL = strings.TrimSpace(req.URL)
	if req.URL != "" {
		u, err := url.Parse(req.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			writeError(w, "Invalid webhook URL", http.StatusBadRequest)
			return
		}
	}

	_, userID, _, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Auth failed:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	Stores.ForUser(userID).SetWebhookURL(req.URL)
	writeJSON(w, http.StatusOK, webhookSettingsResponse{Success: true, URL: req.URL})
}
