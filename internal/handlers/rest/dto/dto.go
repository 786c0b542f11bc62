// Package dto транспортные структуры REST API.
package dto

import (
	"encoding/json"
	"time"

	"shipflow/internal/entities"
	"shipflow/pkg/geo"
)

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type OrderCreate struct {
	ID          string    `json:"id"`
	Pickup      Point     `json:"pickup"`
	Dropoff     Point     `json:"dropoff"`
	Weight      int64     `json:"weight"`
	WindowStart time.Time `json:"windowStart"`
	WindowEnd   time.Time `json:"windowEnd"`
}

type OrderUpdate struct {
	Pickup      *Point     `json:"pickup,omitempty"`
	Dropoff     *Point     `json:"dropoff,omitempty"`
	Weight      *int64     `json:"weight,omitempty"`
	WindowStart *time.Time `json:"windowStart,omitempty"`
	WindowEnd   *time.Time `json:"windowEnd,omitempty"`
}

type Order struct {
	ID          string    `json:"id"`
	Pickup      Point     `json:"pickup"`
	Dropoff     Point     `json:"dropoff"`
	Weight      int64     `json:"weight"`
	WindowStart time.Time `json:"windowStart"`
	WindowEnd   time.Time `json:"windowEnd"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Assignment struct {
	ID         int64     `json:"id"`
	OrderID    string    `json:"orderId"`
	DriverID   string    `json:"driverId"`
	DistanceKm float64   `json:"distanceKm"`
	ETA        time.Time `json:"eta"`
	CreatedAt  time.Time `json:"createdAt"`
}

type DriverReport struct {
	ID       string `json:"driverId"`
	Name     string `json:"name,omitempty"`
	Capacity int64  `json:"capacity,omitempty"`
	Status   string `json:"status"`
	Location *Point `json:"location,omitempty"`
}

type Driver struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Capacity  int64     `json:"capacity"`
	Status    string    `json:"status"`
	Location  *Point    `json:"location,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Tracking struct {
	OrderID      string     `json:"orderId"`
	Status       string     `json:"status"`
	DriverID     *string    `json:"driverId,omitempty"`
	DriverName   *string    `json:"driverName,omitempty"`
	DriverStatus *string    `json:"driverStatus,omitempty"`
	ETA          *time.Time `json:"eta,omitempty"`
}

type Event struct {
	Sequence  int64           `json:"sequence"`
	OrderID   string          `json:"orderId"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"createdAt"`
}

type EventPage struct {
	Events     []Event `json:"events"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int64   `json:"totalPages"`
}

type Cleanup struct {
	DaysToKeep int `json:"daysToKeep"`
}

type CleanupResponse struct {
	Deleted int64 `json:"deleted"`
}

type Exception struct {
	Reason string `json:"reason"`
}

func FromOrder(order *entities.Order) Order {
	return Order{
		ID:          order.ID,
		Pickup:      Point{Lat: order.Pickup.Lat, Lng: order.Pickup.Lng},
		Dropoff:     Point{Lat: order.Dropoff.Lat, Lng: order.Dropoff.Lng},
		Weight:      order.Weight,
		WindowStart: order.WindowStart,
		WindowEnd:   order.WindowEnd,
		Status:      order.Status.String(),
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

func FromOrders(orders []entities.Order) []Order {
	result := make([]Order, 0, len(orders))
	for i := range orders {
		result = append(result, FromOrder(&orders[i]))
	}
	return result
}

func FromAssignment(assignment *entities.Assignment) Assignment {
	return Assignment{
		ID:         assignment.ID,
		OrderID:    assignment.OrderID,
		DriverID:   assignment.DriverID,
		DistanceKm: assignment.DistanceKm,
		ETA:        assignment.ETA,
		CreatedAt:  assignment.CreatedAt,
	}
}

func FromDriver(driver *entities.Driver) Driver {
	result := Driver{
		ID:        driver.ID,
		Name:      driver.Name,
		Capacity:  driver.Capacity,
		Status:    driver.Status.String(),
		CreatedAt: driver.CreatedAt,
		UpdatedAt: driver.UpdatedAt,
	}
	if driver.LastLocation != nil {
		result.Location = &Point{Lat: driver.LastLocation.Lat, Lng: driver.LastLocation.Lng}
	}
	return result
}

func FromDrivers(drivers []entities.Driver) []Driver {
	result := make([]Driver, 0, len(drivers))
	for i := range drivers {
		result = append(result, FromDriver(&drivers[i]))
	}
	return result
}

func FromTracking(info *entities.TrackingInfo) Tracking {
	result := Tracking{
		OrderID:    info.OrderID,
		Status:     info.Status.String(),
		DriverID:   info.DriverID,
		DriverName: info.DriverName,
		ETA:        info.ETA,
	}
	if info.DriverStatus != nil {
		status := info.DriverStatus.String()
		result.DriverStatus = &status
	}
	return result
}

func FromEvent(event *entities.Event) Event {
	return Event{
		Sequence:  event.Sequence,
		OrderID:   event.OrderID,
		Type:      event.Type,
		Payload:   event.Payload,
		CreatedAt: event.CreatedAt,
	}
}

func FromEvents(events []entities.Event) []Event {
	result := make([]Event, 0, len(events))
	for i := range events {
		result = append(result, FromEvent(&events[i]))
	}
	return result
}

func (p *Point) ToGeo() geo.Point {
	return geo.Point{Lat: p.Lat, Lng: p.Lng}
}
