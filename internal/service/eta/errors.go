package eta

import "errors"

var (
	ErrNoLocationData = errors.New("driver has no location data")
	ErrInvalidRecord  = errors.New("invalid eta history record")
)
