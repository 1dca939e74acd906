package handlers

import (
	"net/http"
	"os"

	"taskpilot/backend/billing"
	"taskpilot/backend/config"
	"taskpilot/backend/supabase"
	"taskpilot/backend/types"
)

// CustomerPortalHandler is the billing-portal backend function.
func CustomerPortalHandler(w http.ResponseWriter, r *http.Request) {
	client, userID, email, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Auth failed:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sub, err := supabase.GetOrCreateSubscriber(client, userID, email)
	if err != nil {
		config.Logger.Error("Subscriber lookup failed:", err)
		writeError(w, "Failed to resolve customer", http.StatusInternalServerError)
		return
	}

	customerID, err := billing.ResolveCustomerID(sub.StripeCustomerID, sub.Email)
	if err != nil {
		config.Logger.Error("Customer resolution failed:", err)
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	returnURL := os.Getenv("PORTAL_RETURN_URL")
	if returnURL == "" {
		returnURL = "https://app.taskpilot.app/settings"
	}
	url, err := billing.PortalURL(customerID, returnURL)
	if err != nil {
		config.Logger.Error("Portal session failed:", err)
		writeError(w, "Failed to create portal session", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, types.PortalResponse{Success: true, URL: url})
}
