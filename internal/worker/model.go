package worker

import "time"

// Profile is a service provider's public listing data. Rating fields are
// maintained by the reviews subsystem, verified by admins.
type Profile struct {
	UserID         string    `json:"id"`
	Name           string    `json:"name,omitempty"`
	ServiceType    []string  `json:"serviceType"`
	HourlyRate     int64     `json:"hourlyRate"`
	AdvancePayment int64     `json:"advancePayment"`
	Experience     string    `json:"experience"`
	Bio            string    `json:"bio"`
	AvailableTimes string    `json:"availableTimes"`
	Rating         float64   `json:"rating"`
	TotalRatings   int       `json:"totalRatings"`
	Verified       bool      `json:"verified"`
	CreatedAt      time.Time `json:"created_at"`
}
