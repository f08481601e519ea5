package port

import (
	"context"
	"time"
)

// QueryCachePort - кэш ответов платформы, ключ строится из параметров запроса.
type QueryCachePort interface {
	// Get возвращает (nil, false, nil) при промахе.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
