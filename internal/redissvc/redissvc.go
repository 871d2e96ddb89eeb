package redissvc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	categoriesKey = "catalog:categories"
	categoriesTTL = 5 * time.Minute
)

// RedisService wraps the shared redis client. It caches the distinct
// category list that feeds the catalog filter dropdown; writers invalidate
// the key whenever the product set changes.
type RedisService struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisService(rdb *redis.Client, ctx context.Context) *RedisService {
	return &RedisService{
		rdb: rdb,
		ctx: ctx,
	}
}

func (s *RedisService) Rdb() *redis.Client {
	return s.rdb
}

func (s *RedisService) Ctx() context.Context {
	return s.ctx
}

// CachedCategories returns the cached category list, or ok=false on a miss
// or any redis error (callers fall back to the repository).
func (s *RedisService) CachedCategories() ([]string, bool) {
	data, err := s.rdb.Get(s.ctx, categoriesKey).Bytes()
	if err != nil {
		return nil, false
	}

	var categories []string
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, false
	}
	return categories, true
}

func (s *RedisService) StoreCategories(categories []string) {
	data, err := json.Marshal(categories)
	if err != nil {
		return
	}
	_ = s.rdb.Set(s.ctx, categoriesKey, data, categoriesTTL).Err()
}

func (s *RedisService) InvalidateCategories() {
	_ = s.rdb.Del(s.ctx, categoriesKey).Err()
}
