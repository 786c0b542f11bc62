package order_put

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"shipflow/internal/entities"
	"shipflow/internal/handlers/rest/dto"
	"shipflow/internal/service/order"
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
	orderID := mux.Vars(r)["id"]

	var orderUpdateDTO dto.OrderUpdate
	err := json.NewDecoder(r.Body).Decode(&orderUpdateDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	modify := entities.OrderModify{
		Weight:      orderUpdateDTO.Weight,
		WindowStart: orderUpdateDTO.WindowStart,
		WindowEnd:   orderUpdateDTO.WindowEnd,
	}
	if orderUpdateDTO.Pickup != nil {
		pickup := geo.Point{Lat: orderUpdateDTO.Pickup.Lat, Lng: orderUpdateDTO.Pickup.Lng}
		modify.Pickup = &pickup
	}
	if orderUpdateDTO.Dropoff != nil {
		dropoff := geo.Point{Lat: orderUpdateDTO.Dropoff.Lat, Lng: orderUpdateDTO.Dropoff.Lng}
		modify.Dropoff = &dropoff
	}

	updated, err := h.service.UpdateOrder(r.Context(), orderID, modify)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidOrderID),
			errors.Is(err, order.ErrInvalidCoordinates),
			errors.Is(err, order.ErrInvalidWeight),
			errors.Is(err, order.ErrInvalidWindow):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, order.ErrOrderNotFound):
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.FromOrder(updated))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
