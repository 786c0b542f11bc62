package order_events

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"shipflow/internal/entities"
	"shipflow/internal/eventbus"
	"shipflow/internal/handlers/rest/dto"
	"shipflow/pkg/logger"
)

const (
	streamBuffer = 16
	writeTimeout = 10 * time.Second
)

type Handler struct {
	log      handlerLogger
	bus      Bus
	limiter  Limiter
	upgrader websocket.Upgrader
}

func New(log handlerLogger, bus Bus, limiter Limiter) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		bus:     bus,
		limiter: limiter,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP подписывает клиента на события одного заказа.
// Сначала приходит хвост журнала заказа, затем живые события.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]
	if strings.TrimSpace(orderID) == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if !h.limiter.Allow(clientIP(r)) {
		w.WriteHeader(http.StatusTooManyRequests)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам пишет ответ клиенту
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	stream := make(chan entities.Event, streamBuffer)

	unsubscribe, err := h.bus.SubscribeOrder(ctx, orderID, func(event entities.Event) error {
		select {
		case stream <- event:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	if err != nil {
		if !errors.Is(err, eventbus.ErrBusClosed) {
			h.log.With(
				logger.NewField("error", err),
			).Error("subscribe order events")
		}
		return
	}
	defer unsubscribe()

	// читаем только чтобы заметить закрытие со стороны клиента
	go func() {
		defer cancel()
		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-stream:
			err := conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err != nil {
				return
			}
			err = conn.WriteJSON(dto.FromEvent(&event))
			if err != nil {
				return
			}
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
