package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fruit-order-service/internal/order"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	allOrdersCacheKey = "orders:all"
	DefaultCacheTTL   = 10 * time.Minute
)

func orderCacheKey(id string) string {
	return fmt.Sprintf("orders:%s", id)
}

// cachedOrderRepository is a read-through redis cache in front of another store.
// Writes go to the store first and then drop the affected keys. Redis errors
// are logged and fall through to the store.
type cachedOrderRepository struct {
	next   OrderRepository
	rdb    *redis.Client
	ttl    time.Duration
	logger *log.Entry
}

func NewCachedOrderRepository(next OrderRepository, rdb *redis.Client, ttl time.Duration, logger *log.Entry) OrderRepository {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &cachedOrderRepository{
		next:   next,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger.WithField("component", "order-cache"),
	}
}

func (r *cachedOrderRepository) Save(ctx context.Context, o *order.Order) (*order.Order, error) {
	saved, err := r.next.Save(ctx, o)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, orderCacheKey(saved.ID), allOrdersCacheKey)
	return saved, nil
}

func (r *cachedOrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	key := orderCacheKey(id)
	var cached order.Order
	if r.get(ctx, key, &cached) {
		return &cached, nil
	}

	o, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.set(ctx, key, o)
	return o, nil
}

func (r *cachedOrderRepository) FindAll(ctx context.Context) ([]order.Order, error) {
	var cached []order.Order
	if r.get(ctx, allOrdersCacheKey, &cached) {
		return cached, nil
	}

	orders, err := r.next.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	r.set(ctx, allOrdersCacheKey, orders)
	return orders, nil
}

func (r *cachedOrderRepository) DeleteByID(ctx context.Context, id string) error {
	if err := r.next.DeleteByID(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, orderCacheKey(id), allOrdersCacheKey)
	return nil
}

func (r *cachedOrderRepository) DeleteAll(ctx context.Context) error {
	if err := r.next.DeleteAll(ctx); err != nil {
		return err
	}
	r.invalidatePattern(ctx, "orders:*")
	return nil
}

func (r *cachedOrderRepository) get(ctx context.Context, key string, dst any) bool {
	val, err := r.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		r.logger.WithField("key", key).Debug("cache miss")
		return false
	}
	if err != nil {
		r.logger.WithError(err).WithField("key", key).Warn("cache read failed")
		return false
	}
	if err := json.Unmarshal([]byte(val), dst); err != nil {
		r.logger.WithError(err).WithField("key", key).Warn("cache entry is corrupt")
		return false
	}
	r.logger.WithField("key", key).Debug("cache hit")
	return true
}

func (r *cachedOrderRepository) set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.WithError(err).WithField("key", key).Warn("cache encode failed")
		return
	}
	if err := r.rdb.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.WithError(err).WithField("key", key).Warn("cache write failed")
	}
}

func (r *cachedOrderRepository) invalidate(ctx context.Context, keys ...string) {
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		r.logger.WithError(err).WithField("keys", keys).Warn("cache invalidation failed")
	}
}

func (r *cachedOrderRepository) invalidatePattern(ctx context.Context, pattern string) {
	iter := r.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		r.logger.WithError(err).Warn("cache scan failed")
		return
	}
	if len(keys) > 0 {
		r.invalidate(ctx, keys...)
	}
}

var _ OrderRepository = (*cachedOrderRepository)(nil)
