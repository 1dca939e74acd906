package supabase

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/supabase-community/supabase-go"

	"taskpilot/backend/config"
	"taskpilot/backend/types"
)

// GetOrCreateSubscriber returns the user's billing record, creating
// one with a fresh trial window on first call. The trial end is
// computed once at creation and read thereafter, so repeated checks
// are idempotent.
func GetOrCreateSubscriber(client *supabase.Client, userID, email string) (types.Subscriber, error) {
	resp, _, err := client.From("subscribers").
		Select("*", "", false).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return types.Subscriber{}, fmt.Errorf("failed to fetch subscriber: %w", err)
	}

	var subs []types.Subscriber
	if err := json.Unmarshal(resp, &subs); err != nil {
		return types.Subscriber{}, fmt.Errorf("failed to unmarshal subscriber: %w", err)
	}
	if len(subs) > 0 {
		return subs[0], nil
	}

	now := time.Now().UTC()
	created := []types.Subscriber{{
		UserID:     userID,
		Email:      email,
		TrialStart: now,
		TrialEnd:   now.AddDate(0, 0, config.TrialDays),
	}}

	resp, _, err = client.From("subscribers").Insert(created, false, "", "representation", "").Execute()
	if err != nil {
		return types.Subscriber{}, fmt.Errorf("failed to insert subscriber: %w", err)
	}
	if err := json.Unmarshal(resp, &created); err != nil {
		return types.Subscriber{}, err
	}
	config.Logger.Infof("started %d-day trial for user %s", config.TrialDays, userID)
	return created[0], nil
}

// AccessFrom merges the stored record with live billing state into
// the subscription-check payload. Manual/test overrides stored on the
// record take precedence over the live provider state. The returned
// value always satisfies HasAccess == Subscribed || TrialActive.
func AccessFrom(sub types.Subscriber, live types.SubscriptionInfo, now time.Time) types.SubscriptionInfo {
	info := live
	if sub.Subscribed {
		// Manual override in the data store.
		info.Subscribed = true
		info.SubscriptionTier = sub.SubscriptionTier
		if sub.SubscriptionEnd != nil {
			info.SubscriptionEnd = sub.SubscriptionEnd.Format(time.RFC3339)
		}
	}

	info.TrialActive = now.Before(sub.TrialEnd)
	info.TrialEnd = sub.TrialEnd.Format(time.RFC3339)
	info.HasAccess = info.Subscribed || info.TrialActive
	return info
}
