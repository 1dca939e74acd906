package handlers

import (
	"context"

	"taskpilot/backend/ai"
	"taskpilot/backend/calendar"
	"taskpilot/backend/email"
	"taskpilot/backend/planner"
	"taskpilot/backend/store"
	"taskpilot/backend/types"
	"taskpilot/backend/webhook"
)

// Package-level collaborators, wired once from main.
var (
	AI       *ai.Client
	Stores   *store.Manager
	Planners *planner.Manager
	Calendar *calendar.Adapter
	Webhooks *webhook.Dispatcher
	Email    *email.Client
)

func Init(client *ai.Client, cal *calendar.Adapter, mail *email.Client) {
	AI = client
	Stores = store.NewManager()
	Planners = planner.NewManager(planGateway{client: client})
	Calendar = cal
	Webhooks = webhook.NewDispatcher()
	Email = mail
}

// planGateway binds the gateway to the default model so the planner
// stays decoupled from the AI package.
type planGateway struct {
	client *ai.Client
}

func (g planGateway) GenerateDailyPlan(ctx context.Context, tasks []types.Task, prefs types.PlanPreferences) types.DailyPlan {
	return g.client.GenerateDailyPlan(ctx, tasks, prefs, ai.DefaultModel)
}
