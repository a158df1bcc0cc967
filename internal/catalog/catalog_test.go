package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestEveryCategoryIsComplete(t *testing.T) {
	for _, st := range AllServiceTypes {
		if !st.Valid() {
			t.Errorf("%q listed but not valid", st)
		}
		if st.DisplayName() == "" {
			t.Errorf("%q has no display name", st)
		}
		if st.Description() == "" {
			t.Errorf("%q has no description", st)
		}
		if st.IconKey() == "" {
			t.Errorf("%q has no icon", st)
		}
	}
}

func TestUnknownCategoryInvalid(t *testing.T) {
	for _, s := range []ServiceType{"", "locksmith", "Plumber", "plumber "} {
		if s.Valid() {
			t.Errorf("%q should not be valid", s)
		}
	}
}

func TestListServices(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/services", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := ListServices(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var out struct {
		Services []Service `json:"services"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(out.Services) != len(AllServiceTypes) {
		t.Fatalf("expected %d services, got %d", len(AllServiceTypes), len(out.Services))
	}
	if out.Services[0].ID != "plumber" {
		t.Fatalf("expected plumber first, got %q", out.Services[0].ID)
	}
}
