package dispatch

import "errors"

var (
	ErrInvalidOrderID = errors.New("invalid order id")

	ErrOrderNotFound      = errors.New("order not found")
	ErrDriverNotFound     = errors.New("driver not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrInvalidState       = errors.New("invalid order state")
	ErrNoDriversAvailable = errors.New("no drivers available")
)
