//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=dispatch_test
package dispatch

import (
	"context"
	"time"

	"shipflow/internal/entities"
)

type Repository interface {
	GetOrderByID(ctx context.Context, orderID string) (*entities.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, from []entities.OrderStatusType, to entities.OrderStatusType) (*entities.Order, error)

	GetEligibleDrivers(ctx context.Context, minCapacity int64) ([]entities.Driver, error)
	GetDriverByID(ctx context.Context, driverID string) (*entities.Driver, error)
	UpdateDriverStatus(ctx context.Context, driverID string, status entities.DriverStatusType) error

	CreateAssignment(ctx context.Context, assignmentModify entities.AssignmentModify) (*entities.Assignment, error)
	GetAssignmentByOrderID(ctx context.Context, orderID string) (*entities.Assignment, error)
	GetActiveAssignments(ctx context.Context) ([]entities.Assignment, error)
	UpdateAssignmentETA(ctx context.Context, assignmentID int64, eta time.Time, distanceKm float64) error
}

type EtaService interface {
	Predict(ctx context.Context, driver entities.Driver, order entities.Order) (*entities.EtaPrediction, error)
	RecordOutcome(ctx context.Context, record entities.EtaHistory) error
}

type EventPublisher interface {
	Publish(ctx context.Context, orderID, eventType string, payload any) (*entities.Event, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
