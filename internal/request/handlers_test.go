package request

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/homeserve/api/internal/lifecycle"
)

type stubStore struct {
	advance        int64
	advanceErr     error
	created        *ServiceRequest
	createErr      error
	byID           map[string]*ServiceRequest
	updateApplied  bool
	updateCalled   bool
	updateFrom     lifecycle.Status
	updateTo       lifecycle.Status
	byUser         []ServiceRequest
	byWorker       []ServiceRequest
	listByUserErr  error
	listByWorkErr  error
}

func (s *stubStore) WorkerAdvance(_ context.Context, workerID, serviceType string) (int64, error) {
	if s.advanceErr != nil {
		return 0, s.advanceErr
	}
	return s.advance, nil
}

func (s *stubStore) Create(_ context.Context, r *ServiceRequest) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = r
	return nil
}

func (s *stubStore) Get(_ context.Context, id string) (*ServiceRequest, error) {
	if r, ok := s.byID[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (s *stubStore) UpdateStatusIf(_ context.Context, id, workerID string, from, to lifecycle.Status) (bool, error) {
	s.updateCalled = true
	s.updateFrom = from
	s.updateTo = to
	return s.updateApplied, nil
}

func (s *stubStore) ListByUser(_ context.Context, userID string) ([]ServiceRequest, error) {
	return s.byUser, s.listByUserErr
}

func (s *stubStore) ListByWorker(_ context.Context, workerID string) ([]ServiceRequest, error) {
	return s.byWorker, s.listByWorkErr
}

func newTestContext(t *testing.T, method, path, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	return c, rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var out map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return out["error"]
}

func TestCreateSnapshotsAdvanceAndStartsPending(t *testing.T) {
	store := &stubStore{advance: 200}
	h := NewHandler(store, nil)

	body := `{"workerId":"w1","serviceType":"plumber","description":"leaking sink",` +
		`"location":"12 Hill Road","scheduledTime":"2026-09-01T10:00","paymentMethod":"cash"}`
	c, rec := newTestContext(t, http.MethodPost, "/requests", body, "u1")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if store.created == nil {
		t.Fatal("expected request to be persisted")
	}
	if store.created.Status != lifecycle.StatusPending {
		t.Fatalf("expected pending status, got %q", store.created.Status)
	}
	if store.created.AdvanceAmount != 200 {
		t.Fatalf("expected advance snapshot 200, got %d", store.created.AdvanceAmount)
	}
	if store.created.ID == "" {
		t.Fatal("expected a generated id")
	}
}

func TestCreateRejectsSelfBooking(t *testing.T) {
	h := NewHandler(&stubStore{advance: 200}, nil)

	body := `{"workerId":"u1","serviceType":"plumber","description":"x",` +
		`"location":"y","scheduledTime":"2026-09-01T10:00"}`
	c, rec := newTestContext(t, http.MethodPost, "/requests", body, "u1")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestCreateRejectsUnknownServiceType(t *testing.T) {
	h := NewHandler(&stubStore{advance: 200}, nil)

	body := `{"workerId":"w1","serviceType":"locksmith","description":"x",` +
		`"location":"y","scheduledTime":"2026-09-01T10:00"}`
	c, rec := newTestContext(t, http.MethodPost, "/requests", body, "u1")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "unknown service type" {
		t.Fatalf("unexpected error message: %q", msg)
	}
}

func TestCreateUnknownWorker(t *testing.T) {
	h := NewHandler(&stubStore{advanceErr: ErrWorkerNotFound}, nil)

	body := `{"workerId":"ghost","serviceType":"plumber","description":"x",` +
		`"location":"y","scheduledTime":"2026-09-01T10:00"}`
	c, rec := newTestContext(t, http.MethodPost, "/requests", body, "u1")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestCreateDefaultsPaymentToCash(t *testing.T) {
	store := &stubStore{advance: 150}
	h := NewHandler(store, nil)

	body := `{"workerId":"w1","serviceType":"electrician","description":"fan wiring",` +
		`"location":"4 Main St","scheduledTime":"2026-09-02T14:30"}`
	c, rec := newTestContext(t, http.MethodPost, "/requests", body, "u1")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if store.created.PaymentMethod != PayCash {
		t.Fatalf("expected cash default, got %q", store.created.PaymentMethod)
	}
}

func pendingRequest(id, workerID string) *ServiceRequest {
	return &ServiceRequest{
		ID:          id,
		UserID:      "u1",
		WorkerID:    workerID,
		ServiceType: "plumber",
		Status:      lifecycle.StatusPending,
	}
}

func TestUpdateStatusAccept(t *testing.T) {
	store := &stubStore{
		byID:          map[string]*ServiceRequest{"r1": pendingRequest("r1", "w1")},
		updateApplied: true,
	}
	h := NewHandler(store, nil)

	c, rec := newTestContext(t, http.MethodPut, "/requests/r1/status", `{"status":"accepted"}`, "w1")
	c.SetParamNames("id")
	c.SetParamValues("r1")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !store.updateCalled {
		t.Fatal("expected conditional update to run")
	}
	if store.updateFrom != lifecycle.StatusPending || store.updateTo != lifecycle.StatusAccepted {
		t.Fatalf("unexpected transition %s -> %s", store.updateFrom, store.updateTo)
	}
}

func TestUpdateStatusNonOwnerForbidden(t *testing.T) {
	store := &stubStore{
		byID: map[string]*ServiceRequest{"r1": pendingRequest("r1", "w1")},
	}
	h := NewHandler(store, nil)

	c, rec := newTestContext(t, http.MethodPut, "/requests/r1/status", `{"status":"accepted"}`, "w2")
	c.SetParamNames("id")
	c.SetParamValues("r1")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
	if store.updateCalled {
		t.Fatal("store must not be written for a non-owner")
	}
}

func TestUpdateStatusIllegalTransition(t *testing.T) {
	r := pendingRequest("r1", "w1")
	store := &stubStore{byID: map[string]*ServiceRequest{"r1": r}}
	h := NewHandler(store, nil)

	// pending -> completed skips acceptance
	c, rec := newTestContext(t, http.MethodPut, "/requests/r1/status", `{"status":"completed"}`, "w1")
	c.SetParamNames("id")
	c.SetParamValues("r1")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
	if store.updateCalled {
		t.Fatal("store must not be written for an illegal transition")
	}
}

func TestUpdateStatusTerminalIsFinal(t *testing.T) {
	r := pendingRequest("r1", "w1")
	r.Status = lifecycle.StatusRejected
	store := &stubStore{byID: map[string]*ServiceRequest{"r1": r}}
	h := NewHandler(store, nil)

	c, rec := newTestContext(t, http.MethodPut, "/requests/r1/status", `{"status":"accepted"}`, "w1")
	c.SetParamNames("id")
	c.SetParamValues("r1")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	h := NewHandler(&stubStore{}, nil)

	c, rec := newTestContext(t, http.MethodPut, "/requests/r1/status", `{"status":"done"}`, "w1")
	c.SetParamNames("id")
	c.SetParamValues("r1")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	h := NewHandler(&stubStore{byID: map[string]*ServiceRequest{}}, nil)

	c, rec := newTestContext(t, http.MethodPut, "/requests/missing/status", `{"status":"accepted"}`, "w1")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestUpdateStatusLostRace(t *testing.T) {
	store := &stubStore{
		byID:          map[string]*ServiceRequest{"r1": pendingRequest("r1", "w1")},
		updateApplied: false,
	}
	h := NewHandler(store, nil)

	c, rec := newTestContext(t, http.MethodPut, "/requests/r1/status", `{"status":"accepted"}`, "w1")
	c.SetParamNames("id")
	c.SetParamValues("r1")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409 on lost race, got %d", rec.Code)
	}
}

func TestListMineEmptySliceNotNull(t *testing.T) {
	h := NewHandler(&stubStore{}, nil)

	c, rec := newTestContext(t, http.MethodGet, "/my-requests", "", "u1")
	if err := h.ListMine(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"requests":[]`) {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestWorkerSummaryBuckets(t *testing.T) {
	store := &stubStore{byWorker: []ServiceRequest{
		{ID: "a", Status: lifecycle.StatusPending},
		{ID: "b", Status: lifecycle.StatusAccepted},
		{ID: "c", Status: lifecycle.StatusRejected},
		{ID: "d", Status: lifecycle.StatusCompleted},
	}}
	h := NewHandler(store, nil)

	c, rec := newTestContext(t, http.MethodGet, "/worker-requests/summary", "", "w1")
	if err := h.WorkerSummary(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var out struct {
		Pending   []ServiceRequest `json:"pending"`
		Accepted  []ServiceRequest `json:"accepted"`
		Completed []ServiceRequest `json:"completed"`
		Counts    map[string]int   `json:"counts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(out.Pending) != 1 || len(out.Accepted) != 1 || len(out.Completed) != 1 {
		t.Fatalf("unexpected bucket sizes: %d/%d/%d", len(out.Pending), len(out.Accepted), len(out.Completed))
	}
	if out.Counts["pending"] != 1 {
		t.Fatalf("unexpected pending count: %d", out.Counts["pending"])
	}
}
