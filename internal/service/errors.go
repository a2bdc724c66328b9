package service

import "errors"

// Common service-level errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrOrderLocked is returned when editing a completed, cancelled or paid order
	ErrOrderLocked = errors.New("order no longer accepts edits")

	// ErrInvalidTransition is returned when a status change is not allowed
	ErrInvalidTransition = errors.New("status transition not allowed")

	// ErrNotWorkOrder is returned when a cost-tracking operation targets
	// an order without a cost budget
	ErrNotWorkOrder = errors.New("order is not a work order")

	// ErrNotQuote is returned when a quote-only operation targets another
	// order type
	ErrNotQuote = errors.New("order is not a quote")

	// ErrQuoteNotApproved is returned when converting a quote that has not
	// been approved
	ErrQuoteNotApproved = errors.New("quote is not approved")

	// ErrCustomerInactive is returned when creating an order for a
	// deactivated customer
	ErrCustomerInactive = errors.New("customer is inactive")

	// ErrCustomerHasOrders is returned when deleting a customer that still
	// has orders
	ErrCustomerHasOrders = errors.New("customer has existing orders")
)
