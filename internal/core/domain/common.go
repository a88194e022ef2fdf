package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// Actor identifies who triggered an operation and from which point of sale.
// Upstream workflows resolve it from the bearer token before calling the core.
type Actor struct {
	UserID        string `json:"userId"`
	PointOfSaleID int64  `json:"pointOfSaleId"`
}

// DateOnly truncates t to midnight UTC; journal rows are dated by day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
