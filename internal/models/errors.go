package models

import "errors"

var (
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned when a create collides with an existing record,
	// e.g. signing up with an email that is already registered.
	ErrConflict = errors.New("resource already exists")

	// ErrInvalidCredentials is returned when a login attempt fails.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken is returned when an activation or password reset token
	// is unknown or expired.
	ErrInvalidToken = errors.New("token is invalid or has expired")

	// ErrForbidden is returned when the authenticated user is not allowed to
	// touch the resource (e.g. another salesperson's route).
	ErrForbidden = errors.New("operation not permitted")

	// ErrInvalidCycle is returned when a customer is written with a visit
	// cycle code outside the known set.
	ErrInvalidCycle = errors.New("unknown visit cycle code")

	// ErrRouteExists is returned when a weekly route already exists for the
	// same salesperson and week. Re-generating must not silently duplicate.
	ErrRouteExists = errors.New("a route already exists for this week")

	// ErrNoEligibleCustomers is returned when route generation finds no
	// active customer due for a visit in the target week.
	ErrNoEligibleCustomers = errors.New("no customers are due for a visit this week")

	// ErrStopFinalized is returned when a status change is attempted on a
	// stop that is already completed or skipped.
	ErrStopFinalized = errors.New("stop has already been completed or skipped")

	// ErrOrderCannotBeCancelled is returned when an attempt is made to cancel
	// an order that is no longer in a cancellable state (e.g. 'delivered').
	ErrOrderCannotBeCancelled = errors.New("order cannot be cancelled")
)
