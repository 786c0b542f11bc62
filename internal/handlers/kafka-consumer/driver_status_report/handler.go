package driver_status_report

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"shipflow/internal/entities"
	driverservice "shipflow/internal/service/driver"
	"shipflow/pkg/geo"
	"shipflow/pkg/logger"
)

// statusReport сообщение телеметрии водителя из Kafka.
type statusReport struct {
	DriverID string   `json:"driverId"`
	Name     string   `json:"name"`
	Capacity int64    `json:"vehicleCapacity"`
	Status   string   `json:"status"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
}

type Handler struct {
	driverService            Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, driverService Service, timeout time.Duration) *Handler {
	handlerLog := log.With()

	return &Handler{
		driverService:            driverService,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				// Messages() закрыт — выходим
				h.log.Info("driver.status.report: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// Сессия закрыта (rebalance или остановка consumer group) — выходим
			h.log.Info("driver.status.report: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing обрабатывает одно сообщение из Kafka.
// Возвращает true, если нужно прервать ConsumeClaim (при отмене контекста).
// Возвращает false для продолжения обработки следующих сообщений.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var report statusReport
	err := json.Unmarshal(message.Value, &report)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("driver.status.report handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("driver", report.DriverID),
		logger.NewField("status", report.Status),
		logger.NewField("offset", message.Offset),
	)

	msgLog.Info("driver.status.report processing")

	driverReport := entities.Driver{
		ID:       report.DriverID,
		Name:     report.Name,
		Capacity: report.Capacity,
		Status:   entities.DriverStatusType(report.Status),
	}
	if report.Lat != nil && report.Lng != nil {
		driverReport.LastLocation = &geo.Point{
			Lat: *report.Lat,
			Lng: *report.Lng,
		}
	}

	driver, err := h.driverService.ReportStatus(ctx, driverReport)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("driver.status.report handler context cancelled, message will be reprocessed")
			return true

		case errors.Is(err, driverservice.ErrInvalidDriverID),
			errors.Is(err, driverservice.ErrInvalidStatus),
			errors.Is(err, driverservice.ErrInvalidCoordinates),
			errors.Is(err, driverservice.ErrInvalidCapacity):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("driver.status.report handler invalid report")

		default:
			msgLog.With(
				logger.NewField("error", err),
			).Warn("driver.status.report handler failed to process report")
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog = h.log.With(
		logger.NewField("driver", driver.ID),
		logger.NewField("current_status", driver.Status.String()),
		logger.NewField("offset", message.Offset),
	)
	msgLog.Info("driver.status.report: processed")

	sess.MarkMessage(message, "")
	return false
}
