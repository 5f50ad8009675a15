package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "reservabot:dedup:"

// RedisWindow es la implementación de Window respaldada en Redis, para
// despliegues con más de una instancia del bot. La ventana se acota por
// TTL en lugar de por cantidad.
type RedisWindow struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisWindow crea una ventana respaldada en Redis
func NewRedisWindow(addr, password string, ttl time.Duration) *RedisWindow {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisWindow{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		ttl: ttl,
	}
}

// Seen registra el identificador con SET NX y reporta si ya existía
func (w *RedisWindow) Seen(ctx context.Context, id string) (bool, error) {
	created, err := w.client.SetNX(ctx, keyPrefix+id, 1, w.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("error al registrar mensaje en redis: %w", err)
	}
	return !created, nil
}

// Close cierra la conexión con Redis
func (w *RedisWindow) Close() error {
	return w.client.Close()
}
