package alerts

import "time"

// Task type constants
const (
	TaskWelcomeEmail  = "email:welcome"
	TaskPasswordReset = "email:password_reset"
	TaskRequestNew    = "email:request_new"
	TaskRequestStatus = "email:request_status"
)

// Common envelope for email-like notifications
type EmailEnvelope struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Welcome email payload
type WelcomeEmailPayload struct {
	UserID   string        `json:"user_id"`
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Envelope EmailEnvelope `json:"envelope"`
	SentAt   time.Time     `json:"sent_at"`
}

// Password reset payload
type PasswordResetPayload struct {
	UserID    string        `json:"user_id"`
	Email     string        `json:"email"`
	ResetURL  string        `json:"reset_url"`
	Envelope  EmailEnvelope `json:"envelope"`
	Requested time.Time     `json:"requested"`
}

// New request payload (sent to the worker)
type RequestNewPayload struct {
	RequestID   string        `json:"request_id"`
	UserID      string        `json:"user_id"`
	WorkerID    string        `json:"worker_id"`
	ServiceType string        `json:"service_type"`
	Email       string        `json:"email"`
	Envelope    EmailEnvelope `json:"envelope"`
	SentAt      time.Time     `json:"sent_at"`
}

// Status change payload (sent to the customer)
type RequestStatusPayload struct {
	RequestID string        `json:"request_id"`
	UserID    string        `json:"user_id"`
	WorkerID  string        `json:"worker_id"`
	Status    string        `json:"status"`
	Email     string        `json:"email"`
	Envelope  EmailEnvelope `json:"envelope"`
	SentAt    time.Time     `json:"sent_at"`
}
