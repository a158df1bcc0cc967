package request

import (
	"context"
	"errors"

	"github.com/homeserve/api/internal/lifecycle"
)

var (
	ErrNotFound          = errors.New("request not found")
	ErrWorkerNotFound    = errors.New("worker not found")
	ErrServiceNotOffered = errors.New("worker does not offer this service")
)

// Store is the persistence boundary for service requests. The handler
// depends on this interface so the state machine can be exercised without
// a database.
type Store interface {
	// WorkerAdvance returns the worker's current advance-payment rate,
	// verifying the worker exists and offers serviceType.
	WorkerAdvance(ctx context.Context, workerID, serviceType string) (int64, error)
	// Create persists a new request.
	Create(ctx context.Context, r *ServiceRequest) error
	// Get returns a request by id.
	Get(ctx context.Context, id string) (*ServiceRequest, error)
	// UpdateStatusIf applies a conditional write: the status changes only
	// if the row still belongs to workerID and still holds the from
	// status. Returns false when the predicate did not match.
	UpdateStatusIf(ctx context.Context, id, workerID string, from, to lifecycle.Status) (bool, error)
	// ListByUser returns a customer's requests, newest first.
	ListByUser(ctx context.Context, userID string) ([]ServiceRequest, error)
	// ListByWorker returns requests addressed to a worker, newest first.
	ListByWorker(ctx context.Context, workerID string) ([]ServiceRequest, error)
}

// EventSink receives lifecycle events after a successful write. Delivery is
// best-effort; failures never affect the request itself.
type EventSink interface {
	RequestCreated(ctx context.Context, r *ServiceRequest)
	RequestStatusChanged(ctx context.Context, r *ServiceRequest)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RequestCreated(context.Context, *ServiceRequest)       {}
func (NopSink) RequestStatusChanged(context.Context, *ServiceRequest) {}
