package request

import (
	"time"

	"github.com/homeserve/api/internal/lifecycle"
)

// PaymentMethod is how the customer intends to pay. The advance deposit is
// recorded regardless; collection happens outside this system.
type PaymentMethod string

const (
	PayCash   PaymentMethod = "cash"
	PayOnline PaymentMethod = "online"
	PayCard   PaymentMethod = "card"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PayCash, PayOnline, PayCard:
		return true
	}
	return false
}

// ServiceRequest is a customer's booking of a worker. Everything except
// status is fixed at creation; advanceAmount is the worker's advance rate
// snapshotted at booking time and never recomputed.
type ServiceRequest struct {
	ID            string           `json:"id"`
	UserID        string           `json:"userId"`
	WorkerID      string           `json:"workerId"`
	ServiceType   string           `json:"serviceType"`
	Description   string           `json:"description"`
	Location      string           `json:"location"`
	ScheduledTime time.Time        `json:"scheduledTime"`
	PaymentMethod PaymentMethod    `json:"paymentMethod"`
	AdvanceAmount int64            `json:"advanceAmount"`
	Status        lifecycle.Status `json:"status"`
	CreatedAt     time.Time        `json:"createdAt"`

	// Joined display fields, populated by the list queries.
	WorkerName string `json:"workerName,omitempty"`
	UserName   string `json:"userName,omitempty"`
	UserPhone  string `json:"userPhone,omitempty"`
	UserEmail  string `json:"userEmail,omitempty"`
}
