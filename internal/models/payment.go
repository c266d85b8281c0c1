package models

import "time"

// Payment methods.
const (
	PaymentCash     = "cash"
	PaymentTransfer = "transfer"
	PaymentCheque   = "cheque"
)

// Payment records a collection from a customer, optionally tied to a
// specific order.
type Payment struct {
	ID          string    `json:"id" db:"id"`
	CustomerID  string    `json:"customer_id" db:"customer_id"`
	OrderID     *string   `json:"order_id,omitempty" db:"order_id"`
	CollectedBy string    `json:"collected_by" db:"collected_by"`
	Amount      float64   `json:"amount" db:"amount"`
	Method      string    `json:"method" db:"method"`
	Note        string    `json:"note,omitempty" db:"note"`
	CollectedAt time.Time `json:"collected_at" db:"collected_at"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type CreatePaymentRequest struct {
	CustomerID  string     `json:"customer_id" validate:"required"`
	OrderID     *string    `json:"order_id,omitempty"`
	Amount      float64    `json:"amount" validate:"required,gt=0"`
	Method      string     `json:"method" validate:"required,oneof=cash transfer cheque"`
	Note        string     `json:"note,omitempty" validate:"omitempty,max=500"`
	CollectedAt *time.Time `json:"collected_at,omitempty"` // defaults to now
}

// CustomerBalance is the running account of a customer: what was ordered,
// what was collected, and what remains open.
type CustomerBalance struct {
	CustomerID string  `json:"customer_id"`
	Ordered    float64 `json:"ordered"`
	Collected  float64 `json:"collected"`
	Open       float64 `json:"open"`
}
