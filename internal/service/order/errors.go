package order

import "errors"

var (
	ErrInvalidOrderID     = errors.New("invalid order id")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidWeight      = errors.New("invalid weight")
	ErrInvalidWindow      = errors.New("invalid delivery window")

	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderAlreadyExists = errors.New("order already exists")
)
