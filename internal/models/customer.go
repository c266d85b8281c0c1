package models

import "time"

// Visit cycle codes. Within a 4-week pattern a customer is visited either
// every week, on odd weeks (1 and 3) or on even weeks (2 and 4).
const (
	CycleEveryWeek = "YYYY"
	CycleOddWeeks  = "YTYT"
	CycleEvenWeeks = "TYTY"
)

// Customer statuses. Only active customers are eligible for route scheduling.
const (
	CustomerActive   = "active"
	CustomerInactive = "inactive"
)

// KnownCycle reports whether code is one of the recognized visit cycle codes.
// The scheduler itself is lenient with unknown codes, but customer writes
// keep the stored set closed.
func KnownCycle(code string) bool {
	switch code {
	case CycleEveryWeek, CycleOddWeeks, CycleEvenWeeks:
		return true
	}
	return false
}

// Customer is a point of sale visited by a salesperson.
type Customer struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Address   string    `json:"address,omitempty" db:"address"`
	District  string    `json:"district,omitempty" db:"district"`
	Phone     string    `json:"phone,omitempty" db:"phone"`
	TaxOffice string    `json:"tax_office,omitempty" db:"tax_office"`
	TaxNumber string    `json:"tax_number,omitempty" db:"tax_number"`
	Cycle     string    `json:"cycle" db:"cycle"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateCustomerRequest defines the body for creating a customer.
type CreateCustomerRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=200"`
	Address   string `json:"address,omitempty"`
	District  string `json:"district,omitempty" validate:"omitempty,max=100"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,max=30"`
	TaxOffice string `json:"tax_office,omitempty" validate:"omitempty,max=100"`
	TaxNumber string `json:"tax_number,omitempty" validate:"omitempty,max=30"`
	Cycle     string `json:"cycle" validate:"required"`
}

// UpdateCustomerRequest defines the body for updating a customer. Pointer
// fields distinguish "not sent" from zero values.
type UpdateCustomerRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Address   *string `json:"address,omitempty"`
	District  *string `json:"district,omitempty" validate:"omitempty,max=100"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	TaxOffice *string `json:"tax_office,omitempty" validate:"omitempty,max=100"`
	TaxNumber *string `json:"tax_number,omitempty" validate:"omitempty,max=30"`
	Cycle     *string `json:"cycle,omitempty"`
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// CustomerFilter narrows customer list queries.
type CustomerFilter struct {
	Status string // empty means all
	Search string // matches name or district, case-insensitive
}

// CustomerImportResult summarizes an Excel bulk import.
type CustomerImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}
