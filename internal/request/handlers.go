package request

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/homeserve/api/internal/catalog"
	"github.com/homeserve/api/internal/lifecycle"
)

// Handler serves the request lifecycle endpoints.
type Handler struct {
	store  Store
	events EventSink
}

func NewHandler(store Store, events EventSink) *Handler {
	if events == nil {
		events = NopSink{}
	}
	return &Handler{store: store, events: events}
}

type CreateRequest struct {
	WorkerID      string `json:"workerId"`
	ServiceType   string `json:"serviceType"`
	Description   string `json:"description"`
	Location      string `json:"location"`
	ScheduledTime string `json:"scheduledTime"`
	PaymentMethod string `json:"paymentMethod"`
}

// scheduled times arrive either as RFC 3339 or as the value of an HTML
// datetime-local input.
func parseScheduledTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04", s)
}

// Create books a worker for the authenticated customer. The worker's
// current advance rate is snapshotted onto the request and the status
// starts at pending.
func (h *Handler) Create(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	req := new(CreateRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.WorkerID == "" || req.Description == "" || req.Location == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "workerId, description and location are required"})
	}
	if req.WorkerID == userID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "you cannot book yourself"})
	}
	if !catalog.ServiceType(req.ServiceType).Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown service type"})
	}
	method := PaymentMethod(req.PaymentMethod)
	if method == "" {
		method = PayCash
	}
	if !method.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment method must be cash, online or card"})
	}
	scheduled, err := parseScheduledTime(req.ScheduledTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "scheduledTime is not a valid timestamp"})
	}

	ctx := c.Request().Context()

	advance, err := h.store.WorkerAdvance(ctx, req.WorkerID, req.ServiceType)
	if errors.Is(err, ErrWorkerNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "worker not found"})
	}
	if errors.Is(err, ErrServiceNotOffered) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "worker does not offer this service"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch worker"})
	}

	r := &ServiceRequest{
		ID:            uuid.New().String(),
		UserID:        userID,
		WorkerID:      req.WorkerID,
		ServiceType:   req.ServiceType,
		Description:   req.Description,
		Location:      req.Location,
		ScheduledTime: scheduled,
		PaymentMethod: method,
		AdvanceAmount: advance,
		Status:        lifecycle.StatusPending,
	}
	if err := h.store.Create(ctx, r); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create request"})
	}

	h.events.RequestCreated(ctx, r)

	return c.JSON(http.StatusCreated, echo.Map{"request": r})
}

// ListMine returns the authenticated customer's requests.
func (h *Handler) ListMine(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	requests, err := h.store.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch requests"})
	}
	if requests == nil {
		requests = []ServiceRequest{}
	}
	return c.JSON(http.StatusOK, echo.Map{"requests": requests})
}

// ListForWorker returns requests addressed to the authenticated worker,
// including customer contact details for the dashboard.
func (h *Handler) ListForWorker(c echo.Context) error {
	workerID, ok := c.Get("user_id").(string)
	if !ok || workerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	requests, err := h.store.ListByWorker(c.Request().Context(), workerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch requests"})
	}
	if requests == nil {
		requests = []ServiceRequest{}
	}
	return c.JSON(http.StatusOK, echo.Map{"requests": requests})
}

// WorkerSummary returns the worker's requests grouped into the dashboard
// tabs. Rejected requests are absent from every bucket.
func (h *Handler) WorkerSummary(c echo.Context) error {
	workerID, ok := c.Get("user_id").(string)
	if !ok || workerID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	requests, err := h.store.ListByWorker(c.Request().Context(), workerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch requests"})
	}

	buckets := Partition(requests)
	return c.JSON(http.StatusOK, echo.Map{
		"pending":   buckets.Pending,
		"accepted":  buckets.Accepted,
		"completed": buckets.Completed,
		"counts": echo.Map{
			"pending":   len(buckets.Pending),
			"accepted":  len(buckets.Accepted),
			"completed": len(buckets.Completed),
		},
	})
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus applies a lifecycle transition. Only the owning worker may
// move a request, and only along pending->accepted, pending->rejected or
// accepted->completed. The write is conditional on the current status, so
// two racing updates cannot both apply.
func (h *Handler) UpdateStatus(c echo.Context) error {
	actorID, ok := c.Get("user_id").(string)
	if !ok || actorID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing request id"})
	}

	req := new(UpdateStatusRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	target := lifecycle.Status(req.Status)
	if !target.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx := c.Request().Context()

	r, err := h.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "request not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch request"})
	}

	if err := lifecycle.Authorize(actorID, r.WorkerID, r.Status, target); err != nil {
		switch {
		case errors.Is(err, lifecycle.ErrNotOwner):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "only the assigned worker may update this request"})
		case errors.Is(err, lifecycle.ErrIllegalTransition):
			return c.JSON(http.StatusConflict, echo.Map{"error": "cannot move request from " + string(r.Status) + " to " + string(target)})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update request"})
		}
	}

	applied, err := h.store.UpdateStatusIf(ctx, id, actorID, r.Status, target)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update request"})
	}
	if !applied {
		// Lost a race: the row moved between our read and write.
		return c.JSON(http.StatusConflict, echo.Map{"error": "request status changed concurrently"})
	}

	r.Status = target
	h.events.RequestStatusChanged(ctx, r)

	return c.JSON(http.StatusOK, echo.Map{"request": r})
}
