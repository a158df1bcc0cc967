package catalog

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ServiceType is the closed set of service categories offered on the
// platform. Adding a category means extending the constants, AllServiceTypes,
// and the switches below; the exhaustiveness test keeps them in sync.
type ServiceType string

const (
	Plumber         ServiceType = "plumber"
	Electrician     ServiceType = "electrician"
	ACRepair        ServiceType = "ac-repair"
	Carpenter       ServiceType = "carpenter"
	Gardener        ServiceType = "gardener"
	GasRepair       ServiceType = "gas-repair"
	Painter         ServiceType = "painter"
	Cleaner         ServiceType = "cleaner"
	PestControl     ServiceType = "pest-control"
	ApplianceRepair ServiceType = "appliance-repair"
)

// AllServiceTypes lists every category in display order.
var AllServiceTypes = []ServiceType{
	Plumber, Electrician, ACRepair, Carpenter, Gardener,
	GasRepair, Painter, Cleaner, PestControl, ApplianceRepair,
}

// Valid reports whether s is a known category.
func (s ServiceType) Valid() bool {
	switch s {
	case Plumber, Electrician, ACRepair, Carpenter, Gardener,
		GasRepair, Painter, Cleaner, PestControl, ApplianceRepair:
		return true
	}
	return false
}

// DisplayName returns the human-readable category name.
func (s ServiceType) DisplayName() string {
	switch s {
	case Plumber:
		return "Plumber"
	case Electrician:
		return "Electrician"
	case ACRepair:
		return "AC Repair"
	case Carpenter:
		return "Carpenter"
	case Gardener:
		return "Gardener"
	case GasRepair:
		return "Gas Repair"
	case Painter:
		return "Painter"
	case Cleaner:
		return "Cleaner"
	case PestControl:
		return "Pest Control"
	case ApplianceRepair:
		return "Appliance Repair"
	}
	return ""
}

// Description returns the short blurb shown on the category card.
func (s ServiceType) Description() string {
	switch s {
	case Plumber:
		return "Pipe repairs, leaks, and installations"
	case Electrician:
		return "Wiring, fixtures, and electrical faults"
	case ACRepair:
		return "Air conditioner servicing and repair"
	case Carpenter:
		return "Furniture and woodwork repairs"
	case Gardener:
		return "Garden care and landscaping"
	case GasRepair:
		return "Gas line and stove repairs"
	case Painter:
		return "Interior and exterior painting"
	case Cleaner:
		return "Home and office deep cleaning"
	case PestControl:
		return "Pest inspection and removal"
	case ApplianceRepair:
		return "Household appliance servicing"
	}
	return ""
}

// IconKey returns the icon identifier the frontend maps to a glyph.
func (s ServiceType) IconKey() string {
	switch s {
	case Plumber:
		return "wrench"
	case Electrician:
		return "zap"
	case ACRepair:
		return "wind"
	case Carpenter:
		return "hammer"
	case Gardener:
		return "leaf"
	case GasRepair:
		return "flame"
	case Painter:
		return "paintbrush"
	case Cleaner:
		return "sparkles"
	case PestControl:
		return "bug"
	case ApplianceRepair:
		return "settings"
	}
	return ""
}

// Service is the wire representation of a category.
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// ListServices returns the full catalog. Anonymous endpoint.
func ListServices(c echo.Context) error {
	services := make([]Service, 0, len(AllServiceTypes))
	for _, st := range AllServiceTypes {
		services = append(services, Service{
			ID:          string(st),
			Name:        st.DisplayName(),
			Description: st.Description(),
			Icon:        st.IconKey(),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"services": services})
}
