package types

import "time"

// Subscriber is the persisted per-user billing record. A row is
// created on the first subscription check with a 5-day trial window
// and read thereafter. Manual override fields take precedence over
// live billing-provider state.
type Subscriber struct {
	ID               string     `json:"id,omitempty"`
	UserID           string     `json:"user_id"`
	Email            string     `json:"email"`
	StripeCustomerID string     `json:"stripe_customer_id,omitempty"`
	Subscribed       bool       `json:"subscribed"`
	SubscriptionTier string     `json:"subscription_tier,omitempty"`
	SubscriptionEnd  *time.Time `json:"subscription_end,omitempty"`
	TrialStart       time.Time  `json:"trial_start"`
	TrialEnd         time.Time  `json:"trial_end"`
	CreatedAt        time.Time  `json:"created_at,omitempty"`
}

// SubscriptionInfo is the payload returned by the subscription check.
// Invariant: HasAccess == Subscribed || TrialActive.
type SubscriptionInfo struct {
	Subscribed       bool   `json:"subscribed"`
	SubscriptionTier string `json:"subscription_tier,omitempty"`
	SubscriptionEnd  string `json:"subscription_end,omitempty"`
	TrialActive      bool   `json:"trial_active"`
	TrialEnd         string `json:"trial_end,omitempty"`
	HasAccess        bool   `json:"has_access"`
}

type PortalResponse struct {
	URL          string `json:"url,omitempty"`
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error,omitempty"`
}
