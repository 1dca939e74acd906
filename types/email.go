package types

// SupportEmailRequest is the payload of the support-email function.
type SupportEmailRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type SupportEmailResponse struct {
	Success        bool   `json:"success"`
	SupportID      string `json:"support_id,omitempty"`
	ConfirmationID string `json:"confirmation_id,omitempty"`
	ErrorMessage   string `json:"error,omitempty"`
}
