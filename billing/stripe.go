// Package billing wraps the Stripe lookups behind the subscription
// check and the customer portal function.
package billing

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v79"
	portalsession "github.com/stripe/stripe-go/v79/billingportal/session"
	"github.com/stripe/stripe-go/v79/customer"
	"github.com/stripe/stripe-go/v79/subscription"

	"taskpilot/backend/config"
	"taskpilot/backend/types"
)

func Init() {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		config.Logger.Warn("STRIPE_SECRET_KEY not set, billing lookups will fail")
	}
}

// findCustomerID resolves a Stripe customer by email. Empty result
// means the user never checked out.
func findCustomerID(email string) (string, error) {
	if email == "" {
		return "", fmt.Errorf("no email to resolve customer by")
	}
	params := &stripe.CustomerListParams{Email: stripe.String(email)}
	params.Limit = stripe.Int64(1)
	iter := customer.List(params)
	if iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", fmt.Errorf("customer lookup failed: %w", err)
	}
	return "", nil
}

// LookupSubscription cross-references the billing provider by
// customer email and reports the live subscription state.
func LookupSubscription(email string) (types.SubscriptionInfo, error) {
	custID, err := findCustomerID(email)
	if err != nil {
		return types.SubscriptionInfo{}, err
	}
	if custID == "" {
		return types.SubscriptionInfo{}, nil
	}

	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(custID),
		Status:   stripe.String(string(stripe.SubscriptionStatusActive)),
	}
	params.Limit = stripe.Int64(1)
	iter := subscription.List(params)
	if !iter.Next() {
		if err := iter.Err(); err != nil {
			return types.SubscriptionInfo{}, fmt.Errorf("subscription lookup failed: %w", err)
		}
		return types.SubscriptionInfo{}, nil
	}

	sub := iter.Subscription()
	info := types.SubscriptionInfo{
		Subscribed:      true,
		SubscriptionEnd: time.Unix(sub.CurrentPeriodEnd, 0).UTC().Format(time.RFC3339),
	}
	if len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		info.SubscriptionTier = tierForPrice(sub.Items.Data[0].Price)
	}
	return info, nil
}

func tierForPrice(price *stripe.Price) string {
	if price.Nickname != "" {
		return price.Nickname
	}
	if price.UnitAmount <= 999 {
		return "starter"
	}
	return "pro"
}

// ResolveCustomerID picks the customer for a portal session: the
// stored id when it is a real Stripe id, otherwise a live lookup by
// email. Synthetic ids written by manual/test overrides are rejected
// with a descriptive error rather than forwarded to Stripe.
func ResolveCustomerID(storedID, email string) (string, error) {
	if storedID != "" {
		if !strings.HasPrefix(storedID, "cus_") || strings.HasPrefix(storedID, "cus_test_") {
			return "", fmt.Errorf("stored customer id %q is a test id, no customer portal available", storedID)
		}
		return storedID, nil
	}
	custID, err := findCustomerID(email)
	if err != nil {
		return "", err
	}
	if custID == "" {
		return "", fmt.Errorf("no customer portal found for %s", email)
	}
	return custID, nil
}

// PortalURL creates a billing-portal session and returns its URL.
func PortalURL(customerID, returnURL string) (string, error) {
	ps, err := portalsession.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create portal session: %w", err)
	}
	return ps.URL, nil
}
