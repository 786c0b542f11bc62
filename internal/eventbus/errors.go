package eventbus

import "errors"

var (
	ErrBusClosed    = errors.New("event bus is closed")
	ErrEmptyOrderID = errors.New("empty order id")
)
