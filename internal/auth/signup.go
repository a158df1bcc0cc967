package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/homeserve/api/internal/alerts"
	"github.com/homeserve/api/internal/catalog"
	"github.com/homeserve/api/internal/db"
)

// WorkerSignupData carries the extra fields a service provider submits.
type WorkerSignupData struct {
	ServiceType    []string `json:"serviceType"`
	HourlyRate     int64    `json:"hourlyRate"`
	AdvancePayment int64    `json:"advancePayment"`
	Experience     string   `json:"experience"`
	Bio            string   `json:"bio"`
	AvailableTimes string   `json:"availableTimes"`
}

type SignupRequest struct {
	Email          string           `json:"email"`
	Password       string           `json:"password"`
	Name           string           `json:"name"`
	Role           string           `json:"role"`
	Phone          string           `json:"phone"`
	AdditionalData WorkerSignupData `json:"additionalData"`
}

// Signup creates a customer or worker account. Workers get a profile row
// with their rates and offered categories in the same transaction.
func Signup(c echo.Context) error {
	req := new(SignupRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email, password and name are required"})
	}
	if req.Role == "" {
		req.Role = "user"
	}
	if req.Role != "user" && req.Role != "worker" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be user or worker"})
	}

	if req.Role == "worker" {
		if len(req.AdditionalData.ServiceType) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "workers must offer at least one service"})
		}
		for _, st := range req.AdditionalData.ServiceType {
			if !catalog.ServiceType(st).Valid() {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown service type: " + st})
			}
		}
		if req.AdditionalData.AdvancePayment < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "advance payment must not be negative"})
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	ctx := context.Background()
	tx, err := db.Conn.Begin(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db transaction error"})
	}
	defer tx.Rollback(ctx)

	userID := uuid.New().String()
	var createdAt time.Time
	err = tx.QueryRow(ctx, `
		INSERT INTO users (id, name, email, phone, password, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, userID, req.Name, req.Email, req.Phone, string(hashed), req.Role).Scan(&createdAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already registered"})
	}

	if req.Role == "worker" {
		data := req.AdditionalData
		if data.HourlyRate <= 0 {
			data.HourlyRate = 500
		}
		if data.AdvancePayment == 0 {
			data.AdvancePayment = 200
		}
		if data.AvailableTimes == "" {
			data.AvailableTimes = "9 AM - 6 PM"
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO worker_profiles (user_id, service_types, hourly_rate, advance_payment, experience, bio, available_times)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, userID, data.ServiceType, data.HourlyRate, data.AdvancePayment, data.Experience, data.Bio, data.AvailableTimes)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "worker profile creation failed"})
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "transaction failed"})
	}

	// Best-effort welcome email
	_ = alerts.EnqueueWelcomeEmail(userID, req.Email, req.Name)

	return c.JSON(http.StatusCreated, echo.Map{
		"user": echo.Map{
			"id":         userID,
			"name":       req.Name,
			"email":      req.Email,
			"phone":      req.Phone,
			"role":       req.Role,
			"created_at": createdAt,
		},
	})
}
