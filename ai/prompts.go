package ai

import (
	"fmt"
	"strings"
	"time"

	"taskpilot/backend/types"
)

const enhanceSystemPrompt = `
You are a productivity assistant that turns a rough task note into a well-structured task.

Given the user's raw task text, respond with a single JSON object of exactly this shape:
{
 "title": "A clear, action-oriented title",
 "description": "One or two sentences describing what done looks like",
 "subtasks": ["2-5 concrete steps"],
 "priority": "low" | "medium" | "high" | "urgent",
 "estimated_time": "e.g. 30 minutes, 2 hours",
 "category": "work" | "personal" | "health" | "errands" | "learning" | "general",
 "deadline": "YYYY-MM-DD if the text implies one, otherwise omit",
 "dependencies": ["other things that must happen first, otherwise omit"]
}

ONLY respond with valid JSON. Do not include any explanations or extra text outside the JSON object.
`

const parseSystemPromptFormat = `
You extract structured task fields from natural language. Today's date is %s.

Resolve relative dates ("tomorrow", "next friday") against today's date. Respond with a single JSON object:
{
 "title": "the task, stripped of date and priority phrasing",
 "priority": "low" | "medium" | "high" | "urgent",
 "due_date": "YYYY-MM-DD or null when no date is mentioned",
 "due_time": "HH:MM if a time is mentioned, otherwise omit"
}

ONLY respond with valid JSON. No prose, no code fences.
`

const planSystemPrompt = `
You are a scheduling assistant. Build a realistic time-blocked plan for today from the user's open tasks and preferences.

Scheduling rules:
- Order urgent and high priority tasks before medium and low.
- Put demanding work in the user's peak-energy hours; lighter tasks elsewhere.
- Respect each task's estimated time and insert 10-15 minute buffers between blocks.
- Add short breaks; nobody focuses for four hours straight.
- Never schedule more than fits in the workday; leave the rest for tomorrow.

Respond with a single JSON object:
{
 "time_blocks": [
  {"start_time": "HH:MM", "end_time": "HH:MM", "task_id": "id if the block maps to a task", "task": "label", "type": "focus" | "break" | "buffer", "energy_level": "high" | "medium" | "low", "priority": "low" | "medium" | "high" | "urgent"}
 ],
 "insights": ["1-3 observations about today's workload"],
 "recommendations": ["1-3 short suggestions"],
 "total_focus_time": "e.g. 4.5 hours",
 "productivity_score": 0-100
}

ONLY respond with valid JSON. Do not include any explanations or extra text outside the JSON object.
`

const coachSystemPrompt = `
You are a supportive productivity coach. From the user's current task statistics, produce at most 3 insights.

Respond with a JSON array of objects:
[
 {"type": "productivity" | "pattern" | "suggestion" | "warning", "title": "short headline", "description": "one or two sentences", "actionable": true/false, "priority": 1-3}
]

ONLY respond with a valid JSON array. No prose, no code fences.
`

func buildParsePrompt(now time.Time) string {
	return fmt.Sprintf(parseSystemPromptFormat, now.Format("Monday, January 2, 2006"))
}

// buildPlanInput renders the open tasks and preferences as the user
// message for plan generation.
func buildPlanInput(tasks []types.Task, prefs types.PlanPreferences) string {
	var b strings.Builder
	b.WriteString("OPEN TASKS:\n")
	for _, t := range tasks {
		b.WriteString(fmt.Sprintf("- id=%s %q priority=%s", t.ID, t.Title, t.Priority))
		if t.EstimatedTime != "" {
			b.WriteString(" estimate=" + t.EstimatedTime)
		}
		if t.DueDate != "" {
			b.WriteString(" due=" + t.DueDate)
		}
		if t.Category != "" {
			b.WriteString(" category=" + t.Category)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nPREFERENCES:\n")
	if prefs.WorkdayStart != "" || prefs.WorkdayEnd != "" {
		b.WriteString(fmt.Sprintf("- workday %s to %s\n", orDefault(prefs.WorkdayStart, "09:00"), orDefault(prefs.WorkdayEnd, "17:00")))
	} else {
		b.WriteString("- workday 09:00 to 17:00\n")
	}
	if prefs.PeakHours != "" {
		b.WriteString("- peak energy: " + prefs.PeakHours + "\n")
	}
	if prefs.BreakInterval != "" {
		b.WriteString("- break every " + prefs.BreakInterval + "\n")
	}
	return b.String()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
