package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/buen-sabor-api/internal/application/ordering"
	"github.com/jhoicas/buen-sabor-api/pkg/config"
)

var _ ordering.IdempotencyStore = (*IdempotencyStore)(nil)

const (
	idempotencyKeyPrefix = "idem:order:"
	idempotencyKeyTTL    = 24 * time.Hour
)

// NewClient abre el cliente y verifica la conexión con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// IdempotencyStore claves de envío de pedidos con SETNX y TTL de 24h.
type IdempotencyStore struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewIdempotencyStore construye el adaptador.
func NewIdempotencyStore(client *goredis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: idempotencyKeyTTL}
}

// Acquire toma la clave. false si ya estaba tomada.
func (s *IdempotencyStore) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := s.client.SetNX(ctx, idempotencyKeyPrefix+key, 1, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire idempotency key: %w", err)
	}
	return ok, nil
}

// Release libera la clave para permitir reintentos tras un fallo.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, idempotencyKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}
