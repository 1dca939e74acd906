package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"taskpilot/backend/config"
	"taskpilot/backend/types"
)

// SupportEmailHandler is the support-email backend function.
func SupportEmailHandler(w http.ResponseWriter, r *http.Request) {
	var req types.SupportEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Message) == "" {
		writeError(w, "Missing email or message", http.StatusBadRequest)
		return
	}
	if req.Subject == "" {
		req.Subject = "Support request"
	}
	if req.Name == "" {
		req.Name = "there"
	}

	supportID, confirmID, err := Email.SendSupportRequest(r.Context(), req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		config.Logger.Error("Support email failed:", err)
		writeError(w, "Failed to send support email", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, types.SupportEmailResponse{
		Success:        true,
		SupportID:      supportID,
		ConfirmationID: confirmID,
	})
}
