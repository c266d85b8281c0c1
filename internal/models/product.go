package models

import "time"

// Product is a catalog entry orderable by customers.
type Product struct {
	ID        string    `json:"id" db:"id"`
	Code      string    `json:"code" db:"code"`
	Name      string    `json:"name" db:"name"`
	Unit      string    `json:"unit" db:"unit"` // e.g. "piece", "box", "kg"
	UnitPrice float64   `json:"unit_price" db:"unit_price"`
	VATRate   float64   `json:"vat_rate" db:"vat_rate"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type CreateProductRequest struct {
	Code      string  `json:"code" validate:"required,max=50"`
	Name      string  `json:"name" validate:"required,min=2,max=200"`
	Unit      string  `json:"unit" validate:"required,max=20"`
	UnitPrice float64 `json:"unit_price" validate:"required,gt=0"`
	VATRate   float64 `json:"vat_rate" validate:"gte=0,lte=100"`
}

type UpdateProductRequest struct {
	Code      *string  `json:"code,omitempty" validate:"omitempty,max=50"`
	Name      *string  `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Unit      *string  `json:"unit,omitempty" validate:"omitempty,max=20"`
	UnitPrice *float64 `json:"unit_price,omitempty" validate:"omitempty,gt=0"`
	VATRate   *float64 `json:"vat_rate,omitempty" validate:"omitempty,gte=0,lte=100"`
	IsActive  *bool    `json:"is_active,omitempty"`
}
