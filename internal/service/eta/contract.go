//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=eta_test
package eta

import (
	"context"

	"shipflow/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, record entities.EtaHistory) (*entities.EtaHistory, error)
	LastByDriver(ctx context.Context, driverID string, limit int) ([]entities.EtaHistory, error)
}
