package types

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ValidPriority reports whether p is one of the four allowed values.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Task struct {
	ID            string    `json:"id,omitempty"`
	UserID        string    `json:"user_id,omitempty"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Subtasks      []string  `json:"subtasks,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	Priority      Priority  `json:"priority"`
	Category      string    `json:"category,omitempty"`
	EstimatedTime string    `json:"estimated_time,omitempty"`
	DueDate       string    `json:"due_date,omitempty"` // YYYY-MM-DD
	DueTime       string    `json:"due_time,omitempty"` // HH:MM
	Completed     bool      `json:"completed"`
	CreatedAt     time.Time `json:"created_at"`
}

// TaskEnhancement is the structured elaboration of a raw task string.
// It is consumed once to construct a Task and never persisted.
type TaskEnhancement struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Subtasks      []string `json:"subtasks"`
	Priority      Priority `json:"priority"`
	EstimatedTime string   `json:"estimated_time"`
	Category      string   `json:"category"`
	Deadline      string   `json:"deadline,omitempty"`
	Dependencies  []string `json:"dependencies,omitempty"`
}

// ParsedIntent is the result of natural-language task capture.
type ParsedIntent struct {
	Title    string   `json:"title"`
	Priority Priority `json:"priority"`
	DueDate  *string  `json:"due_date"` // YYYY-MM-DD, nil when the input has no date
	DueTime  string   `json:"due_time,omitempty"`
}

type TaskResponse struct {
	Success      bool   `json:"success"`
	Task         Task   `json:"task,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
}

type GetTasksResponse struct {
	Success      bool   `json:"success"`
	Tasks        []Task `json:"tasks"`
	Filter       string `json:"filter,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
}

type DeleteTaskResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
}

type SyncResponse struct {
	Success      bool   `json:"success"`
	SyncStatus   string `json:"sync_status"`
	Synced       int    `json:"synced,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
}
