package streamlimit

import (
	"sync"
	"time"

	"shipflow/pkg/token_bucket"
)

// pruneAfter неактивные клиенты выбрасываются из реестра, чтобы
// карта не росла бесконечно на одноразовых подключениях.
const pruneAfter = 10 * time.Minute

type clientEntry struct {
	bucket   *token_bucket.TokenBucket
	lastSeen time.Time
}

// Registry пер-клиентский лимитер открытия стримов.
// Каждому ключу (обычно IP) выдается свой token bucket.
type Registry struct {
	mu       sync.Mutex
	clients  map[string]*clientEntry
	capacity int
	rate     float64
}

func New(capacity int, rate float64) *Registry {
	return &Registry{
		clients:  make(map[string]*clientEntry),
		capacity: capacity,
		rate:     rate,
	}
}

func (r *Registry) Allow(key string) bool {
	r.mu.Lock()

	entry, ok := r.clients[key]
	if !ok {
		entry = &clientEntry{
			bucket: token_bucket.NewTokenBucket(r.capacity, r.rate),
		}
		r.clients[key] = entry
	}
	entry.lastSeen = time.Now()

	r.pruneLocked()
	r.mu.Unlock()

	return entry.bucket.Allow()
}

func (r *Registry) pruneLocked() {
	if len(r.clients) < 1024 {
		return
	}

	deadline := time.Now().Add(-pruneAfter)
	for key, entry := range r.clients {
		if entry.lastSeen.Before(deadline) {
			delete(r.clients, key)
		}
	}
}
