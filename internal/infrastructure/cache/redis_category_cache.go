package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/catalogo-admin-api/internal/application/dto"
	"github.com/jhoicas/catalogo-admin-api/internal/application/ports"
	"github.com/jhoicas/catalogo-admin-api/pkg/config"
)

// ActiveCategoriesKey clave del listado de categorías activas.
const ActiveCategoriesKey = "categories:active"

var _ ports.CategoryCache = (*RedisCategoryCache)(nil)

// RedisCategoryCache implementación de ports.CategoryCache sobre Redis (JSON con TTL).
type RedisCategoryCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewRedisClient abre el cliente y verifica la conexión con un ping.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrap(err, "redis ping")
	}
	return rdb, nil
}

// NewRedisCategoryCache construye el cache. ttl <= 0 guarda sin expiración.
func NewRedisCategoryCache(rdb redis.Cmdable, ttl time.Duration) *RedisCategoryCache {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisCategoryCache{rdb: rdb, ttl: ttl}
}

// GetActive redis.Nil se trata como miss.
func (c *RedisCategoryCache) GetActive(ctx context.Context) ([]dto.CategoryResponse, bool, error) {
	raw, err := c.rdb.Get(ctx, ActiveCategoriesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "redis get categories")
	}
	var out []dto.CategoryResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		// entrada corrupta: se comporta como miss y se sobrescribe
		return nil, false, nil
	}
	return out, true, nil
}

func (c *RedisCategoryCache) SetActive(ctx context.Context, categories []dto.CategoryResponse) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return errors.Wrap(err, "encode categories")
	}
	return errors.Wrap(c.rdb.Set(ctx, ActiveCategoriesKey, data, c.ttl).Err(), "redis set categories")
}

func (c *RedisCategoryCache) Invalidate(ctx context.Context) error {
	return errors.Wrap(c.rdb.Del(ctx, ActiveCategoriesKey).Err(), "redis del categories")
}
