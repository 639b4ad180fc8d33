package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kvolkov/ambulance_dispatch/internal/models"
	"github.com/redis/go-redis/v9"
)

// RouteCache кеширует маршруты по ключу из округленных координат,
// чтобы не дергать внешний сервис на одинаковые плечи
type RouteCache interface {
	Get(ctx context.Context, key string) ([]models.Location, bool)
	Set(ctx context.Context, key string, path []models.Location)
}

// cacheKey округляет координаты до 5 знаков (~1 м), совпадающие плечи
// получают один ключ
func cacheKey(start, end models.Location) string {
	return fmt.Sprintf("route:%.5f,%.5f-%.5f,%.5f", start.Lat, start.Lng, end.Lat, end.Lng)
}

// RedisCache - кеш маршрутов в Redis с TTL
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]models.Location, bool) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// Недоступный Redis не должен ломать симуляцию - считаем промахом
			return nil, false
		}
		return nil, false
	}

	var path []models.Location
	if err := json.Unmarshal(val, &path); err != nil {
		return nil, false
	}
	return path, true
}

func (c *RedisCache) Set(ctx context.Context, key string, path []models.Location) {
	val, err := json.Marshal(path)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, val, c.ttl)
}

// MemoryCache - кеш маршрутов в памяти процесса, используется когда Redis
// не настроен
type MemoryCache struct {
	mu     sync.RWMutex
	routes map[string][]models.Location
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		routes: make(map[string][]models.Location),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]models.Location, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	path, ok := c.routes[key]
	return path, ok
}

func (c *MemoryCache) Set(_ context.Context, key string, path []models.Location) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.routes[key] = path
}
