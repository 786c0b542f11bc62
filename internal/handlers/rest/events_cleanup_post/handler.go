package events_cleanup_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"shipflow/internal/handlers/rest/dto"
	"shipflow/internal/service/events"
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
	var cleanupDTO dto.Cleanup
	err := json.NewDecoder(r.Body).Decode(&cleanupDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	deleted, err := h.service.Retention(r.Context(), cleanupDTO.DaysToKeep)
	if err != nil {
		switch {
		case errors.Is(err, events.ErrInvalidRetention):
			w.WriteHeader(http.StatusBadRequest)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.CleanupResponse{Deleted: deleted})
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
