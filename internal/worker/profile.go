package worker

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homeserve/api/internal/catalog"
	"github.com/homeserve/api/internal/db"
)

// LoadProfile fetches a worker's profile, joined with their account name.
func LoadProfile(ctx context.Context, userID string) (*Profile, error) {
	var p Profile
	err := db.Conn.QueryRow(ctx, `
		SELECT wp.user_id, u.name, wp.service_types, wp.hourly_rate, wp.advance_payment,
		       wp.experience, wp.bio, wp.available_times, wp.rating, wp.total_ratings,
		       wp.verified, wp.created_at
		FROM worker_profiles wp
		JOIN users u ON u.id = wp.user_id
		WHERE wp.user_id = $1
	`, userID).Scan(&p.UserID, &p.Name, &p.ServiceType, &p.HourlyRate, &p.AdvancePayment,
		&p.Experience, &p.Bio, &p.AvailableTimes, &p.Rating, &p.TotalRatings,
		&p.Verified, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByService returns workers offering a category. Anonymous endpoint;
// suspended accounts are hidden.
func ListByService(c echo.Context) error {
	serviceType := catalog.ServiceType(c.Param("serviceType"))
	if !serviceType.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown service type"})
	}

	rows, err := db.Conn.Query(context.Background(), `
		SELECT wp.user_id, u.name, wp.service_types, wp.hourly_rate, wp.advance_payment,
		       wp.experience, wp.bio, wp.available_times, wp.rating, wp.total_ratings,
		       wp.verified, wp.created_at
		FROM worker_profiles wp
		JOIN users u ON u.id = wp.user_id
		WHERE $1 = ANY(wp.service_types) AND u.is_active
		ORDER BY wp.rating DESC, wp.total_ratings DESC
	`, string(serviceType))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch workers"})
	}
	defer rows.Close()

	workers := make([]Profile, 0)
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.UserID, &p.Name, &p.ServiceType, &p.HourlyRate, &p.AdvancePayment,
			&p.Experience, &p.Bio, &p.AvailableTimes, &p.Rating, &p.TotalRatings,
			&p.Verified, &p.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse worker record"})
		}
		workers = append(workers, p)
	}

	return c.JSON(http.StatusOK, echo.Map{"workers": workers})
}

type UpdateProfileRequest struct {
	ServiceType    []string `json:"serviceType"`
	HourlyRate     *int64   `json:"hourlyRate"`
	AdvancePayment *int64   `json:"advancePayment"`
	Experience     *string  `json:"experience"`
	Bio            *string  `json:"bio"`
	AvailableTimes *string  `json:"availableTimes"`
}

// UpdateProfile lets a worker change their listing. Changing the advance
// rate only affects future requests; amounts already snapshotted onto
// existing requests are never recomputed.
func UpdateProfile(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	req := new(UpdateProfileRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.ServiceType != nil {
		if len(req.ServiceType) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one service type is required"})
		}
		for _, st := range req.ServiceType {
			if !catalog.ServiceType(st).Valid() {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown service type: " + st})
			}
		}
	}
	if req.HourlyRate != nil && *req.HourlyRate <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hourly rate must be positive"})
	}
	if req.AdvancePayment != nil && *req.AdvancePayment < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "advance payment must not be negative"})
	}

	res, err := db.Conn.Exec(context.Background(), `
		UPDATE worker_profiles
		SET service_types   = COALESCE($1, service_types),
		    hourly_rate     = COALESCE($2, hourly_rate),
		    advance_payment = COALESCE($3, advance_payment),
		    experience      = COALESCE($4, experience),
		    bio             = COALESCE($5, bio),
		    available_times = COALESCE($6, available_times),
		    updated_at      = NOW()
		WHERE user_id = $7
	`, req.ServiceType, req.HourlyRate, req.AdvancePayment, req.Experience, req.Bio, req.AvailableTimes, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update profile"})
	}
	if res.RowsAffected() == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "worker profile not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Profile updated successfully"})
}

// GetPublicProfile returns a worker's listing by id. Anonymous endpoint.
func GetPublicProfile(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing worker id"})
	}

	p, err := LoadProfile(context.Background(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "worker not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"worker": p})
}
