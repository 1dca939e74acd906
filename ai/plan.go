package ai

import (
	"context"
	"encoding/json"
	"strings"

	"taskpilot/backend/config"
	"taskpilot/backend/types"
)

// GenerateDailyPlan asks the model for a time-blocked schedule built
// from the incomplete tasks. It never returns an error: on any
// failure the caller gets an empty plan carrying an explanatory
// insight and a zero productivity score.
func (c *Client) GenerateDailyPlan(ctx context.Context, tasks []types.Task, prefs types.PlanPreferences, model Model) types.DailyPlan {
	open := make([]types.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Completed {
			open = append(open, t)
		}
	}
	if len(open) == 0 {
		return fallbackPlan("No open tasks to schedule. Add a task and generate the plan again.")
	}

	input := buildPlanInput(open, prefs)
	key := cacheKey{op: "plan", model: string(model), input: input}
	if raw, ok := c.cached(key); ok {
		if plan, err := decodePlan(raw); err == nil {
			return plan
		}
	}

	text, err := c.complete(ctx, model, planSystemPrompt, input, 0.7, 1200)
	if err != nil {
		config.Logger.Warnf("generateDailyPlan: completion failed: %v", err)
		return fallbackPlan(planUnavailableInsight)
	}

	raw, ok := ExtractJSONObject(text)
	if !ok {
		config.Logger.Warnf("generateDailyPlan: no JSON object in response: %.120s", text)
		return fallbackPlan(planUnavailableInsight)
	}

	plan, err := decodePlan(raw)
	if err != nil {
		config.Logger.Warnf("generateDailyPlan: decode failed: %v", err)
		return fallbackPlan(planUnavailableInsight)
	}

	c.store(key, raw)
	return plan
}

const planUnavailableInsight = "Your plan couldn't be generated right now. Your tasks are unaffected; try again in a moment."

// decodePlan parses and normalizes a plan: blocks keep a valid
// priority, the score is clamped to 0-100, and insights are never
// empty so the UI always has something to show.
func decodePlan(raw string) (types.DailyPlan, error) {
	var plan types.DailyPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return types.DailyPlan{}, err
	}

	if plan.TimeBlocks == nil {
		plan.TimeBlocks = []types.TimeBlock{}
	}
	for i := range plan.TimeBlocks {
		if !types.ValidPriority(plan.TimeBlocks[i].Priority) {
			plan.TimeBlocks[i].Priority = types.PriorityMedium
		}
		if strings.TrimSpace(plan.TimeBlocks[i].Type) == "" {
			plan.TimeBlocks[i].Type = "focus"
		}
	}
	if plan.ProductivityScore < 0 {
		plan.ProductivityScore = 0
	}
	if plan.ProductivityScore > 100 {
		plan.ProductivityScore = 100
	}
	insights := plan.Insights[:0]
	for _, s := range plan.Insights {
		if strings.TrimSpace(s) != "" {
			insights = append(insights, s)
		}
	}
	plan.Insights = insights
	if len(plan.Insights) == 0 {
		plan.Insights = []string{"Plan generated from your open tasks."}
	}
	return plan, nil
}

func fallbackPlan(insight string) types.DailyPlan {
	return types.DailyPlan{
		TimeBlocks:        []types.TimeBlock{},
		Insights:          []string{insight},
		ProductivityScore: 0,
	}
}
