package redispatch

import "errors"

var ErrInvalidOrderID = errors.New("invalid order id")
