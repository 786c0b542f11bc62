package eta

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"
	"shipflow/internal/entities"
	"shipflow/pkg/geo"
)

// historyWindow сколько последних доставок водителя участвует в калибровке.
const historyWindow = 50

// coldStartAdjustment пока фактов нет, прогноз не корректируется.
const coldStartAdjustment = 1.0

type Eta struct {
	repository Repository
}

func New(repository Repository) *Eta {
	return &Eta{
		repository: repository,
	}
}

// Predict прогноз прибытия: базовое время пути по дистанции от текущей
// позиции водителя до точки выдачи, умноженное на калибровочный
// коэффициент водителя.
func (e *Eta) Predict(ctx context.Context, driver entities.Driver, order entities.Order) (*entities.EtaPrediction, error) {
	if driver.LastLocation == nil {
		return nil, ErrNoLocationData
	}

	distance := geo.Distance(*driver.LastLocation, order.Dropoff)
	base := geo.BaseETA(distance, geo.DefaultSpeedKmh)

	adjustment, err := e.AdjustmentFactor(ctx, driver.ID)
	if err != nil {
		return nil, err
	}

	minutes := int(math.Round(float64(base) * adjustment))
	if minutes < 1 {
		minutes = 1
	}

	return &entities.EtaPrediction{
		DistanceKm:     distance,
		BaseEtaMinutes: base,
		Adjustment:     adjustment,
		EtaMinutes:     minutes,
		PredictedETA:   time.Now().UTC().Add(time.Duration(minutes) * time.Minute),
	}, nil
}

// AdjustmentFactor среднее отношение факт/прогноз по последним доставкам
// водителя. Коэффициент больше единицы значит водитель системно опаздывает
// относительно прогноза. Без истории возвращается 1.0.
func (e *Eta) AdjustmentFactor(ctx context.Context, driverID string) (float64, error) {
	records, err := e.repository.LastByDriver(ctx, driverID, historyWindow)
	if err != nil {
		return 0, fmt.Errorf("load eta history: %w", err)
	}

	ratios := make([]float64, 0, len(records))
	for _, record := range records {
		if record.PredictedMinutes <= 0 {
			continue
		}
		ratios = append(ratios, float64(record.ActualMinutes)/float64(record.PredictedMinutes))
	}

	if len(ratios) == 0 {
		return coldStartAdjustment, nil
	}

	return stat.Mean(ratios, nil), nil
}

// RecordOutcome фиксирует фактическое время доставки для будущей калибровки.
func (e *Eta) RecordOutcome(ctx context.Context, record entities.EtaHistory) error {
	if strings.TrimSpace(record.OrderID) == "" ||
		strings.TrimSpace(record.DriverID) == "" ||
		record.ActualMinutes <= 0 {
		return ErrInvalidRecord
	}

	_, err := e.repository.Create(ctx, record)
	if err != nil {
		return fmt.Errorf("create eta history: %w", err)
	}

	return nil
}
