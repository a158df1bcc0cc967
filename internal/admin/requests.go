package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/homeserve/api/internal/db"
)

type AdminRequest struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	WorkerID      string    `json:"worker_id"`
	ServiceType   string    `json:"service_type"`
	AdvanceAmount int64     `json:"advance_amount"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// GET /admin/requests
func ListRequests(c echo.Context) error {
	query := `SELECT id, user_id, worker_id, service_type, advance_amount, status, created_at, updated_at
	          FROM requests`
	args := []any{}
	if status := c.QueryParam("status"); status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.Conn.Query(context.Background(), query, args...)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch requests"})
	}
	defer rows.Close()

	var requests []AdminRequest
	for rows.Next() {
		var r AdminRequest
		if err := rows.Scan(&r.ID, &r.UserID, &r.WorkerID, &r.ServiceType, &r.AdvanceAmount,
			&r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to read request record"})
		}
		requests = append(requests, r)
	}
	return c.JSON(http.StatusOK, echo.Map{"requests": requests})
}
