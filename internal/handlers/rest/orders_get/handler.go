package orders_get

import (
	"encoding/json"
	"net/http"

	"shipflow/internal/entities"
	"shipflow/internal/handlers/rest/dto"
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
	var status *entities.OrderStatusType
	if raw := r.URL.Query().Get("status"); raw != "" {
		statusType := entities.OrderStatusType(raw)
		switch statusType {
		case entities.OrderPending, entities.OrderAssigned,
			entities.OrderDeliveredPending, entities.OrderCompleted:
			status = &statusType
		default:
			w.WriteHeader(http.StatusBadRequest)
			return
		}
	}

	orders, err := h.service.ListOrders(r.Context(), status)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.FromOrders(orders))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
