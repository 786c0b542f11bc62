package entities

import (
	"encoding/json"
	"time"
)

// SystemOrderID псевдо-заказ для событий не привязанных к заказу.
const SystemOrderID = "system"

const (
	EventOrderCreated       = "ORDER_CREATED"
	EventOrderUpdated       = "ORDER_UPDATED"
	EventAssignmentCreated  = "ASSIGNMENT_CREATED"
	EventNoDriversAvailable = "NO_DRIVERS_AVAILABLE"
	EventEtaUpdated         = "ETA_UPDATED"
	EventOrderDelivered     = "ORDER_DELIVERED"
	EventOrderCompleted     = "ORDER_COMPLETED"
	EventDriverStatus       = "DRIVER_STATUS"
	EventSlaBreach          = "SLA_BREACH"
)

// Event неизменяемый факт в журнале. Sequence монотонно растет,
// события одного заказа доставляются подписчикам в порядке Sequence.
type Event struct {
	Sequence  int64
	OrderID   string
	Type      string
	Payload   json.RawMessage
	CreatedAt time.Time
}

// EventFilter параметры чтения журнала событий.
type EventFilter struct {
	OrderID  string
	Type     string
	FromDate *time.Time
	ToDate   *time.Time
	Search   string
	Page     int
	Limit    int
}

type EventPage struct {
	Events     []Event
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}
