package driver_status_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"shipflow/internal/entities"
	"shipflow/internal/handlers/rest/dto"
	"shipflow/internal/service/driver"
	"shipflow/pkg/geo"
	"shipflow/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var reportDTO dto.DriverReport
	err := json.NewDecoder(r.Body).Decode(&reportDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	report := entities.Driver{
		ID:       reportDTO.ID,
		Name:     reportDTO.Name,
		Capacity: reportDTO.Capacity,
		Status:   entities.DriverStatusType(reportDTO.Status),
	}
	if reportDTO.Location != nil {
		location := geo.Point{Lat: reportDTO.Location.Lat, Lng: reportDTO.Location.Lng}
		report.LastLocation = &location
	}

	updated, err := h.service.ReportStatus(r.Context(), report)
	if err != nil {
		switch {
		case errors.Is(err, driver.ErrInvalidDriverID),
			errors.Is(err, driver.ErrInvalidStatus),
			errors.Is(err, driver.ErrInvalidCoordinates),
			errors.Is(err, driver.ErrInvalidCapacity):
			w.WriteHeader(http.StatusBadRequest)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.FromDriver(updated))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
