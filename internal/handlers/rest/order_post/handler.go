package order_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"shipflow/internal/entities"
	"shipflow/internal/handlers/rest/dto"
	"shipflow/internal/service/order"
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
	var orderCreateDTO dto.OrderCreate
	err := json.NewDecoder(r.Body).Decode(&orderCreateDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	orderEntity := entities.Order{
		ID:          orderCreateDTO.ID,
		Pickup:      orderCreateDTO.Pickup.ToGeo(),
		Dropoff:     orderCreateDTO.Dropoff.ToGeo(),
		Weight:      orderCreateDTO.Weight,
		WindowStart: orderCreateDTO.WindowStart,
		WindowEnd:   orderCreateDTO.WindowEnd,
	}

	created, err := h.service.CreateOrder(r.Context(), orderEntity)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidOrderID),
			errors.Is(err, order.ErrInvalidCoordinates),
			errors.Is(err, order.ErrInvalidWeight),
			errors.Is(err, order.ErrInvalidWindow):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, order.ErrOrderAlreadyExists):
			w.WriteHeader(http.StatusConflict)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(dto.FromOrder(created))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
