package ai

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"taskpilot/backend/config"
	"taskpilot/backend/types"
)

// ParseNaturalLanguage extracts a task title, priority and due date
// from conversational input ("finish the report by friday"). Today's
// date is injected into the prompt so relative dates resolve. Failure
// degrades to the raw input with medium priority and no date.
func (c *Client) ParseNaturalLanguage(ctx context.Context, input string) types.ParsedIntent {
	input = strings.TrimSpace(input)
	fallback := types.ParsedIntent{Title: input, Priority: types.PriorityMedium, DueDate: nil}
	if input == "" {
		return fallback
	}

	now := time.Now()
	key := cacheKey{op: "parse", model: string(DefaultModel), input: now.Format("2006-01-02") + "|" + input}
	if raw, ok := c.cached(key); ok {
		if intent, err := decodeIntent(raw, input); err == nil {
			return intent
		}
	}

	text, err := c.complete(ctx, DefaultModel, buildParsePrompt(now), input, 0.3, 300)
	if err != nil {
		config.Logger.Warnf("parseNaturalLanguage: completion failed: %v", err)
		return fallback
	}

	raw, ok := ExtractJSONObject(text)
	if !ok {
		config.Logger.Warnf("parseNaturalLanguage: no JSON object in response: %.120s", text)
		return fallback
	}

	intent, err := decodeIntent(raw, input)
	if err != nil {
		config.Logger.Warnf("parseNaturalLanguage: decode failed: %v", err)
		return fallback
	}

	c.store(key, raw)
	return intent
}

func decodeIntent(raw, input string) (types.ParsedIntent, error) {
	var intent types.ParsedIntent
	if err := json.Unmarshal([]byte(raw), &intent); err != nil {
		return types.ParsedIntent{}, err
	}
	if strings.TrimSpace(intent.Title) == "" {
		intent.Title = input
	}
	if !types.ValidPriority(intent.Priority) {
		intent.Priority = types.PriorityMedium
	}
	if intent.DueDate != nil {
		if _, err := time.Parse("2006-01-02", *intent.DueDate); err != nil {
			intent.DueDate = nil
		}
	}
	return intent, nil
}
