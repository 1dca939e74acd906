package ai

import (
	"context"
	"encoding/json"
	"strings"

	"taskpilot/backend/config"
	"taskpilot/backend/types"
)

// EnhanceTask turns free-form task text into a structured enhancement.
// It never returns an error: any network or parse failure degrades to
// a deterministic fallback built from the raw input.
func (c *Client) EnhanceTask(ctx context.Context, input string, model Model) types.TaskEnhancement {
	input = strings.TrimSpace(input)
	if input == "" {
		return fallbackEnhancement("New task")
	}

	key := cacheKey{op: "enhance", model: string(model), input: input}
	if raw, ok := c.cached(key); ok {
		if enh, err := decodeEnhancement(raw, input); err == nil {
			return enh
		}
	}

	text, err := c.complete(ctx, model, enhanceSystemPrompt, input, 0.4, 700)
	if err != nil {
		config.Logger.Warnf("enhanceTask: completion failed: %v", err)
		return fallbackEnhancement(input)
	}

	raw, ok := ExtractJSONObject(text)
	if !ok {
		config.Logger.Warnf("enhanceTask: no JSON object in response: %.120s", text)
		return fallbackEnhancement(input)
	}

	enh, err := decodeEnhancement(raw, input)
	if err != nil {
		config.Logger.Warnf("enhanceTask: decode failed: %v", err)
		return fallbackEnhancement(input)
	}

	c.store(key, raw)
	return enh
}

// decodeEnhancement parses the extracted JSON and normalizes missing
// or invalid fields so the result always satisfies the enhancement
// contract: non-empty title and subtasks, a valid priority, a time
// estimate and a category.
func decodeEnhancement(raw, input string) (types.TaskEnhancement, error) {
	var enh types.TaskEnhancement
	if err := json.Unmarshal([]byte(raw), &enh); err != nil {
		return types.TaskEnhancement{}, err
	}

	if strings.TrimSpace(enh.Title) == "" {
		enh.Title = input
	}
	if strings.TrimSpace(enh.Description) == "" {
		enh.Description = "Task created from: " + input
	}
	subtasks := enh.Subtasks[:0]
	for _, s := range enh.Subtasks {
		if strings.TrimSpace(s) != "" {
			subtasks = append(subtasks, s)
		}
	}
	enh.Subtasks = subtasks
	if len(enh.Subtasks) == 0 {
		enh.Subtasks = []string{"Complete: " + enh.Title}
	}
	if !types.ValidPriority(enh.Priority) {
		enh.Priority = types.PriorityMedium
	}
	if strings.TrimSpace(enh.EstimatedTime) == "" {
		enh.EstimatedTime = config.DefaultEstimatedTime
	}
	if strings.TrimSpace(enh.Category) == "" {
		enh.Category = config.DefaultCategory
	}
	return enh, nil
}

func fallbackEnhancement(input string) types.TaskEnhancement {
	return types.TaskEnhancement{
		Title:         input,
		Description:   "Task created from: " + input,
		Subtasks:      []string{"Complete: " + input},
		Priority:      types.PriorityMedium,
		EstimatedTime: config.DefaultEstimatedTime,
		Category:      config.DefaultCategory,
	}
}
