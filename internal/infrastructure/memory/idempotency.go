package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/buen-sabor-api/internal/application/ordering"
)

var _ ordering.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore claves de envío en memoria con vencimiento. Se usa cuando Redis no está configurado.
type IdempotencyStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	keys map[string]time.Time // clave → vencimiento
}

// NewIdempotencyStore construye el store con el TTL dado.
func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{ttl: ttl, now: time.Now, keys: make(map[string]time.Time)}
}

// Acquire toma la clave si no existe o ya venció.
func (s *IdempotencyStore) Acquire(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if exp, ok := s.keys[key]; ok && now.Before(exp) {
		return false, nil
	}
	s.keys[key] = now.Add(s.ttl)
	return true, nil
}

// Release libera la clave.
func (s *IdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, key)
	return nil
}
