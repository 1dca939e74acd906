package config

import "os"

// Planner and gateway configuration.
const (
	// TrialDays is the full-access window granted to a new account.
	TrialDays = 5

	// MaxCoachingInsights caps the insights returned per request.
	MaxCoachingInsights = 3

	// DefaultEstimatedTime is assumed when a task carries no estimate.
	DefaultEstimatedTime = "30 minutes"

	// DefaultCategory is assigned when enhancement cannot pick one.
	DefaultCategory = "general"

	// DefaultEventMinutes is the event length when the estimated-time
	// string cannot be parsed.
	DefaultEventMinutes = 90
)

// Port returns the HTTP listen port, ":8080" unless PORT is set.
func Port() string {
	if p := os.Getenv("PORT"); p != "" {
		return ":" + p
	}
	return ":8080"
}
