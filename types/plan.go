package types

// TimeBlock is one scheduled interval of a daily plan.
type TimeBlock struct {
	StartTime   string   `json:"start_time"` // HH:MM
	EndTime     string   `json:"end_time"`   // HH:MM
	TaskID      string   `json:"task_id,omitempty"`
	Task        string   `json:"task"` // display label, usually a task title
	Type        string   `json:"type"` // "focus", "break", "buffer", "meeting"
	EnergyLevel string   `json:"energy_level"`
	Priority    Priority `json:"priority"`
}

// DailyPlan is a generated schedule. It is regenerated wholesale on
// request and locally reorderable before being saved back.
type DailyPlan struct {
	TimeBlocks        []TimeBlock `json:"time_blocks"`
	Insights          []string    `json:"insights"`
	Recommendations   []string    `json:"recommendations,omitempty"`
	TotalFocusTime    string      `json:"total_focus_time,omitempty"`
	ProductivityScore int         `json:"productivity_score"` // 0-100
}

// PlanPreferences are the user's scheduling preferences sent alongside
// the task list when a plan is generated.
type PlanPreferences struct {
	WorkdayStart  string `json:"workday_start,omitempty"` // HH:MM
	WorkdayEnd    string `json:"workday_end,omitempty"`   // HH:MM
	PeakHours     string `json:"peak_hours,omitempty"`    // e.g. "morning"
	BreakInterval string `json:"break_interval,omitempty"`
}

type PlanResponse struct {
	Success      bool      `json:"success"`
	State        string    `json:"state,omitempty"`
	Plan         DailyPlan `json:"plan"`
	ErrorMessage string    `json:"error,omitempty"`
}

type PlanSyncResponse struct {
	Success      bool   `json:"success"`
	Synced       int    `json:"synced"`
	Failed       int    `json:"failed"`
	Message      string `json:"message,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
}
