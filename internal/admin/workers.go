package admin

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homeserve/api/internal/db"
)

// POST /admin/workers/:id/verify
func VerifyWorker(c echo.Context) error {
	workerID := c.Param("id")
	if workerID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "worker id required"})
	}
	res, err := db.Conn.Exec(context.Background(),
		`UPDATE worker_profiles SET verified = TRUE, updated_at = NOW() WHERE user_id = $1`, workerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify worker"})
	}
	if res.RowsAffected() == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "worker not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "worker verified", "worker_id": workerID})
}

// POST /admin/workers/:id/unverify
func UnverifyWorker(c echo.Context) error {
	workerID := c.Param("id")
	if workerID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "worker id required"})
	}
	res, err := db.Conn.Exec(context.Background(),
		`UPDATE worker_profiles SET verified = FALSE, updated_at = NOW() WHERE user_id = $1`, workerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to unverify worker"})
	}
	if res.RowsAffected() == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "worker not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "worker verification removed", "worker_id": workerID})
}
