package events

import "errors"

var (
	ErrInvalidOrderID   = errors.New("invalid order id")
	ErrInvalidRetention = errors.New("retention must keep at least one day")
	ErrEmptyReason      = errors.New("empty exception reason")
)
