package event

import (
	"encoding/json"
	"time"
)

type EventDB struct {
	Sequence  int64
	OrderID   string
	Type      string
	Payload   json.RawMessage
	CreatedAt time.Time
}
