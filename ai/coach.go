package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"taskpilot/backend/config"
	"taskpilot/backend/types"
)

// UserContext summarizes the state the coach reasons about.
type UserContext struct {
	TotalTasks     int      `json:"total_tasks"`
	CompletedTasks int      `json:"completed_tasks"`
	OverdueTasks   int      `json:"overdue_tasks"`
	TopCategories  []string `json:"top_categories,omitempty"`
}

// Coach produces at most config.MaxCoachingInsights insights from the
// user's task statistics. Any failure degrades to a single static
// encouraging insight.
func (c *Client) Coach(ctx context.Context, uc UserContext, model Model) []types.AIInsight {
	input := fmt.Sprintf("Tasks: %d total, %d completed, %d overdue.", uc.TotalTasks, uc.CompletedTasks, uc.OverdueTasks)
	if len(uc.TopCategories) > 0 {
		input += " Most active categories: " + strings.Join(uc.TopCategories, ", ") + "."
	}

	key := cacheKey{op: "coach", model: string(model), input: input}
	if raw, ok := c.cached(key); ok {
		if insights, err := decodeInsights(raw); err == nil {
			return insights
		}
	}

	text, err := c.complete(ctx, model, coachSystemPrompt, input, 0.8, 500)
	if err != nil {
		config.Logger.Warnf("coach: completion failed: %v", err)
		return fallbackInsights()
	}

	raw, ok := ExtractJSONArray(text)
	if !ok {
		config.Logger.Warnf("coach: no JSON array in response: %.120s", text)
		return fallbackInsights()
	}

	insights, err := decodeInsights(raw)
	if err != nil {
		config.Logger.Warnf("coach: decode failed: %v", err)
		return fallbackInsights()
	}

	c.store(key, raw)
	return insights
}

func decodeInsights(raw string) ([]types.AIInsight, error) {
	var insights []types.AIInsight
	if err := json.Unmarshal([]byte(raw), &insights); err != nil {
		return nil, err
	}

	kept := insights[:0]
	for _, in := range insights {
		if strings.TrimSpace(in.Title) == "" {
			continue
		}
		switch in.Type {
		case "productivity", "pattern", "suggestion", "warning":
		default:
			in.Type = "suggestion"
		}
		kept = append(kept, in)
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("no usable insights in response")
	}
	if len(kept) > config.MaxCoachingInsights {
		kept = kept[:config.MaxCoachingInsights]
	}
	return kept, nil
}

func fallbackInsights() []types.AIInsight {
	return []types.AIInsight{{
		Type:        "suggestion",
		Title:       "Keep the momentum going",
		Description: "Pick one task and give it twenty focused minutes. Small starts beat perfect plans.",
		Actionable:  true,
		Priority:    1,
	}}
}
