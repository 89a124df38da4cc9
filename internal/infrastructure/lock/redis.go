package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Asistencia-api/internal/application/ports"
)

var _ ports.KeyedLocker = (*Redis)(nil)

const (
	lockKeyPrefix = "asistencia:lock:"
	retryInterval = 25 * time.Millisecond
)

// Solo borra si el token sigue siendo el nuestro (el TTL pudo expirar y otro tomar el candado).
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// Redis candado por clave compartido entre instancias (SET NX PX + token).
type Redis struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

// NewRedis construye el locker. ttl acota cuánto vive un candado huérfano.
func NewRedis(client goredis.UniversalClient, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &Redis{client: client, ttl: ttl}
}

// Lock reintenta SET NX hasta obtener el candado o hasta que ctx termine.
func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := lockKeyPrefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()
	for {
		ok, err := r.client.SetNX(ctx, redisKey, token, r.ttl).Result()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("redis lock %s: %w", key, err)
		}
		if ok {
			break
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return func() {
		// El ctx del caller puede estar cancelado: liberar con uno propio.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, r.client, []string{redisKey}, token).Err(); err != nil && !errors.Is(err, goredis.Nil) {
			log.Warn().Err(err).Str("key", key).Msg("liberar candado redis")
		}
	}, nil
}
