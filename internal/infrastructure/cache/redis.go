// Package cache memoriza la vista de almacén en Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/magazzino-api/internal/application/dto"
	appinv "github.com/jhoicas/magazzino-api/internal/application/inventory"
	"github.com/jhoicas/magazzino-api/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// warehouseKey clave de la vista de almacén ya calculada.
const warehouseKey = "magazzino:stock-v2:rows"

var _ appinv.ViewCache = (*RedisViewCache)(nil)

// NewRedis crea el cliente a partir de REDIS_URL y valida la conexión.
func NewRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// RedisViewCache implementa ViewCache. Cualquier error de Redis se registra y se trata como miss:
// el stock siempre se puede recalcular desde el registro.
type RedisViewCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

// NewRedisViewCache construye la caché. ttl <= 0 deja las claves sin expiración.
func NewRedisViewCache(rdb *redis.Client, ttl time.Duration, log *logger.Logger) *RedisViewCache {
	return &RedisViewCache{rdb: rdb, ttl: ttl, log: log}
}

func (c *RedisViewCache) GetRows(ctx context.Context) ([]dto.WarehouseRow, bool) {
	raw, err := c.rdb.Get(ctx, warehouseKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.warn(err, "leer vista de almacén")
		return nil, false
	}
	var rows []dto.WarehouseRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		c.warn(err, "decodificar vista de almacén")
		return nil, false
	}
	return rows, true
}

func (c *RedisViewCache) SetRows(ctx context.Context, rows []dto.WarehouseRow) {
	raw, err := json.Marshal(rows)
	if err != nil {
		c.warn(err, "codificar vista de almacén")
		return
	}
	if err := c.rdb.Set(ctx, warehouseKey, raw, c.ttl).Err(); err != nil {
		c.warn(err, "guardar vista de almacén")
	}
}

func (c *RedisViewCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, warehouseKey).Err(); err != nil {
		c.warn(err, "invalidar vista de almacén")
	}
}

func (c *RedisViewCache) warn(err error, op string) {
	if c.log != nil {
		c.log.Warn().Err(err).Str("op", op).Msg("redis")
	}
}
