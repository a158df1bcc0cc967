package admin

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homeserve/api/internal/db"
)

// GET /admin/stats
func Stats(c echo.Context) error {
	ctx := context.Background()

	var users, workers, requests, pending, completed, reviews int

	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&users)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM worker_profiles`).Scan(&workers)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM requests`).Scan(&requests)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM requests WHERE status = 'pending'`).Scan(&pending)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM requests WHERE status = 'completed'`).Scan(&completed)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&reviews)

	return c.JSON(http.StatusOK, echo.Map{
		"users":             users,
		"workers":           workers,
		"requests":          requests,
		"pendingRequests":   pending,
		"completedRequests": completed,
		"reviews":           reviews,
	})
}
