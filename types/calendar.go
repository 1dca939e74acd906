package types

// CalendarLinkRequest is the payload of the calendar backend function.
type CalendarLinkRequest struct {
	TaskID        string `json:"taskId"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	DueDate       string `json:"dueDate,omitempty"` // YYYY-MM-DD
	DueTime       string `json:"dueTime,omitempty"` // HH:MM
	EstimatedTime string `json:"estimatedTime,omitempty"`
	Completed     bool   `json:"completed,omitempty"`
	Priority      string `json:"priority,omitempty"`
	Category      string `json:"category,omitempty"`
	IsUpdate      bool   `json:"isUpdate,omitempty"`
}

type CalendarLinkResponse struct {
	Success           bool   `json:"success"`
	ICalContent       string `json:"icalContent,omitempty"`
	GoogleCalendarURL string `json:"googleCalendarUrl,omitempty"`
	Message           string `json:"message,omitempty"`
	ErrorMessage      string `json:"error,omitempty"`
}
