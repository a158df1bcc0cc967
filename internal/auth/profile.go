package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/homeserve/api/internal/db"
	"github.com/homeserve/api/internal/worker"
)

// Profile is the account record returned to the frontend. The password
// hash never leaves the database layer.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// GetProfile returns the authenticated account, plus the worker profile
// when the account is a service provider. The role field drives which
// dashboard the frontend renders.
func GetProfile(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx := context.Background()

	var p Profile
	err := db.Conn.QueryRow(ctx, `
		SELECT id, name, email, phone, role, created_at FROM users WHERE id = $1
	`, uid).Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Role, &p.CreatedAt)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	resp := echo.Map{"profile": p}
	if p.Role == "worker" {
		if wp, err := worker.LoadProfile(ctx, uid); err == nil {
			resp["workerProfile"] = wp
		}
	}
	return c.JSON(http.StatusOK, resp)
}
