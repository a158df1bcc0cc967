package lifecycle

import "errors"

// Status values a service request moves through. A request starts out
// pending and is moved exactly once by the owning worker: either rejected
// outright, or accepted and later completed.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

var (
	// ErrIllegalTransition means the target status is not reachable from
	// the request's current status.
	ErrIllegalTransition = errors.New("illegal status transition")
	// ErrNotOwner means the actor is not the worker the request belongs to.
	ErrNotOwner = errors.New("actor is not the owning worker")
)

var transitions = map[Status]map[Status]struct{}{
	StatusPending:   {StatusAccepted: {}, StatusRejected: {}},
	StatusAccepted:  {StatusCompleted: {}},
	StatusRejected:  {},
	StatusCompleted: {},
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no further transition may leave s.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// CanTransition returns whether a request may move from one status to the
// target status. Self-transitions are illegal: re-applying a move that
// already happened must fail, not silently succeed.
func CanTransition(from, to Status) bool {
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// Authorize checks a transition attempt end to end: the actor must be the
// owning worker and the move must be legal from the current status.
// Ownership is checked first so a non-owner learns nothing about the
// request's state.
func Authorize(actorID, ownerWorkerID string, from, to Status) error {
	if actorID != ownerWorkerID {
		return ErrNotOwner
	}
	if !CanTransition(from, to) {
		return ErrIllegalTransition
	}
	return nil
}
