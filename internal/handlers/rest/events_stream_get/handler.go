package events_stream_get

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"shipflow/internal/entities"
	"shipflow/internal/eventbus"
	"shipflow/internal/handlers/rest/dto"
	"shipflow/pkg/logger"
)

// streamBuffer запас на случай медленной записи в сокет,
// сверх него шина сама выбрасывает старые события.
const streamBuffer = 16

type Handler struct {
	log     handlerLogger
	bus     Bus
	limiter Limiter
}

func New(log handlerLogger, bus Bus, limiter Limiter) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		bus:     bus,
		limiter: limiter,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(clientIP(r)) {
		w.WriteHeader(http.StatusTooManyRequests)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	includeHistory := r.URL.Query().Get("history") != "false"

	ctx := r.Context()
	stream := make(chan entities.Event, streamBuffer)

	unsubscribe, err := h.bus.SubscribeLive(func(event entities.Event) error {
		select {
		case stream <- event:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}, includeHistory)
	if err != nil {
		if errors.Is(err, eventbus.ErrBusClosed) {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-stream:
			data, err := json.Marshal(dto.FromEvent(&event))
			if err != nil {
				h.log.With(
					logger.NewField("error", err),
				).Error("marshal stream event")
				continue
			}

			_, err = fmt.Fprintf(w, "data: %s\n\n", data)
			if err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
