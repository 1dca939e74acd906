package handlers

import (
	"net/http"
	"time"

	"taskpilot/backend/billing"
	"taskpilot/backend/config"
	"taskpilot/backend/supabase"
	"taskpilot/backend/types"
)

// CheckSubscriptionHandler is the subscription-check backend
// function. The first call for a user creates a 5-day trial record;
// later calls read it back, so trial_end never moves. Manual
// overrides on the record beat live Stripe state.
func CheckSubscriptionHandler(w http.ResponseWriter, r *http.Request) {
	client, userID, email, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Auth failed:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sub, err := supabase.GetOrCreateSubscriber(client, userID, email)
	if err != nil {
		config.Logger.Error("Subscriber lookup failed:", err)
		writeError(w, "Failed to check subscription", http.StatusInternalServerError)
		return
	}

	var live types.SubscriptionInfo
	if !sub.Subscribed {
		// Only hit Stripe when no manual override short-circuits it.
		live, err = billing.LookupSubscription(sub.Email)
		if err != nil {
			config.Logger.Warn("Stripe lookup failed, falling back to stored record:", err)
			live = types.SubscriptionInfo{}
		}
	}

	writeJSON(w, http.StatusOK, supabase.AccessFrom(sub, live, time.Now()))
}
