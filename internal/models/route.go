package models

import "time"

// Route stop statuses. A stop starts pending and ends either completed or
// skipped; there is no way back out of the terminal states.
const (
	StopPending   = "pending"
	StopCompleted = "completed"
	StopSkipped   = "skipped"
)

// WeeklyRoute is the planning container for one salesperson and one week.
// Date is always the Monday the week starts on.
type WeeklyRoute struct {
	ID            string      `json:"id" db:"id"`
	SalespersonID string      `json:"salesperson_id" db:"salesperson_id"`
	Date          time.Time   `json:"date" db:"date"`
	Stops         []RouteStop `json:"stops,omitempty"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
}

// RouteStop is one customer's entry on a route. VisitDate and VisitTime stay
// nil until the stop is actually visited or explicitly skipped; stop order
// within the route carries no meaning.
type RouteStop struct {
	ID             string     `json:"id" db:"id"`
	RouteID        string     `json:"route_id" db:"route_id"`
	CustomerID     string     `json:"customer_id" db:"customer_id"`
	CustomerName   string     `json:"customer_name,omitempty" db:"customer_name"`
	Status         string     `json:"status" db:"status"`
	VisitDate      *time.Time `json:"visit_date" db:"visit_date"`
	VisitTime      *string    `json:"visit_time" db:"visit_time"` // "15:04"
	Visited        bool       `json:"visited" db:"visited"`
	BarcodeScanned bool       `json:"barcode_scanned" db:"barcode_scanned"`
	Notes          string     `json:"notes,omitempty" db:"notes"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// GenerateRouteRequest triggers automated route generation for the week
// containing TargetDate.
type GenerateRouteRequest struct {
	TargetDate string `json:"target_date" validate:"required,datetime=2006-01-02"`
}

// UpdateStopStatusRequest finalizes a stop as completed or skipped.
type UpdateStopStatusRequest struct {
	Status    string `json:"status" validate:"required,oneof=completed skipped"`
	VisitDate string `json:"visit_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	VisitTime string `json:"visit_time,omitempty" validate:"omitempty,datetime=15:04"`
	Notes     string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// CheckInStopRequest records a physical check-in at the customer without
// changing the scheduling status.
type CheckInStopRequest struct {
	Visited        *bool `json:"visited,omitempty"`
	BarcodeScanned *bool `json:"barcode_scanned,omitempty"`
}
