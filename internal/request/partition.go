package request

import "github.com/homeserve/api/internal/lifecycle"

// Buckets groups requests by status for the dashboard tabs.
type Buckets struct {
	Pending   []ServiceRequest `json:"pending"`
	Accepted  []ServiceRequest `json:"accepted"`
	Completed []ServiceRequest `json:"completed"`
}

// Partition splits requests into pending, accepted and completed buckets,
// preserving each bucket's relative input order. Rejected requests appear
// in no bucket: the dashboards hide them entirely. Whether that is product
// intent or an oversight is an open question; the behavior is kept as-is.
func Partition(requests []ServiceRequest) Buckets {
	b := Buckets{
		Pending:   []ServiceRequest{},
		Accepted:  []ServiceRequest{},
		Completed: []ServiceRequest{},
	}
	for _, r := range requests {
		switch r.Status {
		case lifecycle.StatusPending:
			b.Pending = append(b.Pending, r)
		case lifecycle.StatusAccepted:
			b.Accepted = append(b.Accepted, r)
		case lifecycle.StatusCompleted:
			b.Completed = append(b.Completed, r)
		case lifecycle.StatusRejected:
			// dropped
		}
	}
	return b
}
