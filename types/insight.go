package types

// AIInsight is a single coaching entry. Insights are rotated for
// display and not persisted across sessions.
type AIInsight struct {
	Type        string `json:"type"` // "productivity", "pattern", "suggestion", "warning"
	Title       string `json:"title"`
	Description string `json:"description"`
	Actionable  bool   `json:"actionable"`
	Priority    int    `json:"priority"`
}

type InsightsResponse struct {
	Success      bool        `json:"success"`
	Insights     []AIInsight `json:"insights"`
	ErrorMessage string      `json:"error,omitempty"`
}
