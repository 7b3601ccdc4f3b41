package cache

import (
	"context"
	"io"

	"github.com/jhoicas/Distribucion-api/internal/application/inventory"
	"github.com/jhoicas/Distribucion-api/pkg/config"
	"github.com/jhoicas/Distribucion-api/pkg/logger"
)

// IdempotencyStore es el almacén más su Close.
type IdempotencyStore interface {
	inventory.IdempotencyStore
	io.Closer
}

// NewIdempotencyStore devuelve Redis si REDIS_ADDR está configurado y responde;
// si no, el almacén en memoria.
func NewIdempotencyStore(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) IdempotencyStore {
	if !cfg.Enabled() {
		log.Info().Msg("idempotencia: almacén en memoria (REDIS_ADDR vacío)")
		return NewInMemoryIdempotencyStore()
	}
	store, err := NewRedisIdempotencyStore(ctx, cfg.Addr, cfg.Password, cfg.DB)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("idempotencia: Redis no disponible, se usa memoria")
		return NewInMemoryIdempotencyStore()
	}
	log.Info().Str("addr", cfg.Addr).Msg("idempotencia: Redis")
	return store
}
