package request

import (
	"context"
	"log"

	"github.com/homeserve/api/internal/alerts"
	"github.com/homeserve/api/internal/db"
	"github.com/homeserve/api/internal/messaging"
)

// NotifySink delivers request events over email and websocket. Delivery is
// best effort: a failed notification never fails the request itself.
type NotifySink struct{}

func (NotifySink) RequestCreated(ctx context.Context, r *ServiceRequest) {
	messaging.BroadcastRequestCreated(r.WorkerID, r)

	var email string
	if err := db.Conn.QueryRow(ctx, `SELECT email FROM users WHERE id = $1`, r.WorkerID).Scan(&email); err != nil {
		log.Printf("[notify][ERROR] worker email lookup failed: %v", err)
		return
	}
	if err := alerts.EnqueueRequestNew(r.ID, r.UserID, r.WorkerID, r.ServiceType, email); err != nil {
		log.Printf("[notify][ERROR] request-new enqueue failed: %v", err)
	}
}

func (NotifySink) RequestStatusChanged(ctx context.Context, r *ServiceRequest) {
	messaging.BroadcastRequestStatus(r.UserID, r)

	var email string
	if err := db.Conn.QueryRow(ctx, `SELECT email FROM users WHERE id = $1`, r.UserID).Scan(&email); err != nil {
		log.Printf("[notify][ERROR] customer email lookup failed: %v", err)
		return
	}
	if err := alerts.EnqueueRequestStatus(r.ID, r.UserID, r.WorkerID, string(r.Status), email); err != nil {
		log.Printf("[notify][ERROR] request-status enqueue failed: %v", err)
	}
}
