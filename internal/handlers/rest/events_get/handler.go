package events_get

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

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
	filter, ok := parseFilter(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	page, err := h.service.Query(r.Context(), filter)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	response := dto.EventPage{
		Events:     dto.FromEvents(page.Events),
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: int64(page.TotalPages),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

func parseFilter(r *http.Request) (entities.EventFilter, bool) {
	query := r.URL.Query()

	filter := entities.EventFilter{
		OrderID: query.Get("orderId"),
		Type:    query.Get("type"),
		Search:  query.Get("search"),
	}

	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return entities.EventFilter{}, false
		}
		filter.FromDate = &from
	}
	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return entities.EventFilter{}, false
		}
		filter.ToDate = &to
	}
	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return entities.EventFilter{}, false
		}
		filter.Page = page
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return entities.EventFilter{}, false
		}
		filter.Limit = limit
	}

	return filter, true
}
