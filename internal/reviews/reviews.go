package reviews

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/homeserve/api/internal/db"
)

type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type Review struct {
	ID        string    `json:"id"`
	RequestID string    `json:"requestId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	WorkerID  string    `json:"workerId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// Create lets the customer rate a completed request. One review per request;
// the worker's aggregate rating is updated in the same transaction.
func Create(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	requestID := c.Param("id")
	if _, err := uuid.Parse(requestID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request id format"})
	}

	var req CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}
	if len(req.Comment) > 1000 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "comment too long (max 1000 characters)"})
	}

	ctx := context.Background()

	var workerID, status string
	err := db.Conn.QueryRow(ctx,
		`SELECT worker_id, status FROM requests WHERE id = $1 AND user_id = $2`,
		requestID, userID,
	).Scan(&workerID, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "request not found or not yours"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch request"})
	}
	if status != "completed" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "can only review completed requests"})
	}

	var existing string
	err = db.Conn.QueryRow(ctx,
		`SELECT id FROM reviews WHERE request_id = $1`, requestID,
	).Scan(&existing)
	if err == nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "review already exists for this request"})
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check existing review"})
	}

	tx, err := db.Conn.Begin(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create review"})
	}
	defer tx.Rollback(ctx)

	reviewID := uuid.New().String()
	if _, err := tx.Exec(ctx,
		`INSERT INTO reviews (id, request_id, user_id, worker_id, rating, comment)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		reviewID, requestID, userID, workerID, req.Rating, req.Comment,
	); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create review"})
	}

	// Running average over total_ratings, recomputed incrementally.
	if _, err := tx.Exec(ctx,
		`UPDATE worker_profiles
		 SET rating = (rating * total_ratings + $1) / (total_ratings + 1),
		     total_ratings = total_ratings + 1,
		     updated_at = NOW()
		 WHERE user_id = $2`,
		req.Rating, workerID,
	); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update worker rating"})
	}

	if err := tx.Commit(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create review"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"reviewId": reviewID,
		"message":  "Review created successfully",
	})
}

// ListForWorker returns a worker's reviews, newest first, with a summary.
func ListForWorker(c echo.Context) error {
	workerID := c.Param("id")
	if workerID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing worker id"})
	}

	page := 1
	limit := 10
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(c.QueryParam("limit")); err == nil && l > 0 && l <= 50 {
		limit = l
	}
	offset := (page - 1) * limit

	ctx := context.Background()

	var workerName string
	err := db.Conn.QueryRow(ctx,
		`SELECT name FROM users WHERE id = $1`, workerID,
	).Scan(&workerName)
	if errors.Is(err, pgx.ErrNoRows) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "worker not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch worker"})
	}

	var total int
	var average float64
	if err := db.Conn.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(AVG(rating), 0) FROM reviews WHERE worker_id = $1`,
		workerID,
	).Scan(&total, &average); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch rating summary"})
	}

	rows, err := db.Conn.Query(ctx,
		`SELECT r.id, r.request_id, r.user_id, u.name, r.worker_id, r.rating, r.comment, r.created_at
		 FROM reviews r
		 JOIN users u ON u.id = r.user_id
		 WHERE r.worker_id = $1
		 ORDER BY r.created_at DESC
		 LIMIT $2 OFFSET $3`,
		workerID, limit, offset,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reviews"})
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.RequestID, &r.UserID, &r.UserName,
			&r.WorkerID, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			continue
		}
		reviews = append(reviews, r)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"workerId":      workerID,
		"workerName":    workerName,
		"averageRating": average,
		"totalReviews":  total,
		"reviews":       reviews,
		"pagination": echo.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}
