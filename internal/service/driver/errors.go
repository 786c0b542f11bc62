package driver

import "errors"

var (
	ErrInvalidDriverID    = errors.New("invalid driver id")
	ErrInvalidStatus      = errors.New("invalid driver status")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidCapacity    = errors.New("invalid capacity")

	ErrDriverNotFound = errors.New("driver not found")
)
