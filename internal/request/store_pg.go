package request

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/homeserve/api/internal/lifecycle"
)

// PGStore persists requests in Postgres.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) WorkerAdvance(ctx context.Context, workerID, serviceType string) (int64, error) {
	var advance int64
	var offered bool
	err := s.pool.QueryRow(ctx, `
		SELECT advance_payment, $2 = ANY(service_types)
		FROM worker_profiles WHERE user_id = $1
	`, workerID, serviceType).Scan(&advance, &offered)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrWorkerNotFound
	}
	if err != nil {
		return 0, err
	}
	if !offered {
		return 0, ErrServiceNotOffered
	}
	return advance, nil
}

func (s *PGStore) Create(ctx context.Context, r *ServiceRequest) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO requests (id, user_id, worker_id, service_type, description, location,
		                      scheduled_time, payment_method, advance_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`, r.ID, r.UserID, r.WorkerID, r.ServiceType, r.Description, r.Location,
		r.ScheduledTime, string(r.PaymentMethod), r.AdvanceAmount, string(r.Status)).Scan(&r.CreatedAt)
}

func (s *PGStore) Get(ctx context.Context, id string) (*ServiceRequest, error) {
	var r ServiceRequest
	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, worker_id, service_type, description, location,
		       scheduled_time, payment_method, advance_amount, status, created_at
		FROM requests WHERE id = $1
	`, id).Scan(&r.ID, &r.UserID, &r.WorkerID, &r.ServiceType, &r.Description, &r.Location,
		&r.ScheduledTime, &r.PaymentMethod, &r.AdvanceAmount, &r.Status, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateStatusIf is the conditional write the state machine relies on: the
// row moves only if it still belongs to the worker and still holds the
// expected predecessor status, so a stale read can never double-apply a
// transition.
func (s *PGStore) UpdateStatusIf(ctx context.Context, id, workerID string, from, to lifecycle.Status) (bool, error) {
	res, err := s.pool.Exec(ctx, `
		UPDATE requests SET status = $1, updated_at = NOW()
		WHERE id = $2 AND worker_id = $3 AND status = $4
	`, string(to), id, workerID, string(from))
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (s *PGStore) ListByUser(ctx context.Context, userID string) ([]ServiceRequest, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.id, r.user_id, r.worker_id, r.service_type, r.description, r.location,
		       r.scheduled_time, r.payment_method, r.advance_amount, r.status, r.created_at,
		       w.name
		FROM requests r
		JOIN users w ON w.id = r.worker_id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ServiceRequest
	for rows.Next() {
		var r ServiceRequest
		if err := rows.Scan(&r.ID, &r.UserID, &r.WorkerID, &r.ServiceType, &r.Description, &r.Location,
			&r.ScheduledTime, &r.PaymentMethod, &r.AdvanceAmount, &r.Status, &r.CreatedAt,
			&r.WorkerName); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PGStore) ListByWorker(ctx context.Context, workerID string) ([]ServiceRequest, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.id, r.user_id, r.worker_id, r.service_type, r.description, r.location,
		       r.scheduled_time, r.payment_method, r.advance_amount, r.status, r.created_at,
		       u.name, u.phone, u.email
		FROM requests r
		JOIN users u ON u.id = r.user_id
		WHERE r.worker_id = $1
		ORDER BY r.created_at DESC
	`, workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ServiceRequest
	for rows.Next() {
		var r ServiceRequest
		if err := rows.Scan(&r.ID, &r.UserID, &r.WorkerID, &r.ServiceType, &r.Description, &r.Location,
			&r.ScheduledTime, &r.PaymentMethod, &r.AdvanceAmount, &r.Status, &r.CreatedAt,
			&r.UserName, &r.UserPhone, &r.UserEmail); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
