package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/beyondeth/shop/internal/contextkeys"
	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/port"

	"golang.org/x/sync/singleflight"
)

// HitRecorder - счетчики попаданий (метрики).
type HitRecorder interface {
	CacheHit()
	CacheMiss()
}

// CachedPlatform кэширует публичные чтения каталога. Заказы, участник,
// отзывы и оформление идут в платформу напрямую.
// Одновременные промахи по одному ключу схлопываются в один запрос.
type CachedPlatform struct {
	port.PlatformPort

	cache       port.QueryCachePort
	ttl         time.Duration
	loadTimeout time.Duration
	group       singleflight.Group
	recorder    HitRecorder
}

var _ port.PlatformPort = (*CachedPlatform)(nil)

// loadTimeout ограничивает общий запрос к платформе: он не привязан к
// отмене контекста первого клиента. Ноль - без ограничения.
func NewCachedPlatform(platform port.PlatformPort, cache port.QueryCachePort, ttl, loadTimeout time.Duration, recorder HitRecorder) *CachedPlatform {
	return &CachedPlatform{
		PlatformPort: platform,
		cache:        cache,
		ttl:          ttl,
		loadTimeout:  loadTimeout,
		recorder:     recorder,
	}
}

// cached - общий путь чтения через кэш. Ошибки кэша не ломают чтение,
// отсутствующие сущности (nil) не кэшируются.
func cached[T any](ctx context.Context, p *CachedPlatform, key string, load func(ctx context.Context) (T, bool, error)) (T, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "CachedPlatform",
		"cache_key": key,
	})

	var zero T
	raw, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("Query cache read failed", port.Fields{"error": err.Error()})
	}
	if ok {
		var value T
		if err := json.Unmarshal(raw, &value); err == nil {
			p.hit()
			return value, nil
		}
		logger.Warn("Query cache entry is corrupted, reloading", nil)
	}
	p.miss()

	// результат делят все ожидающие, поэтому отключение первого клиента
	// не должно отменять загрузку для остальных
	v, err, _ := p.group.Do(key, func() (any, error) {
		loadCtx := context.WithoutCancel(ctx)
		if p.loadTimeout > 0 {
			var cancel context.CancelFunc
			loadCtx, cancel = context.WithTimeout(loadCtx, p.loadTimeout)
			defer cancel()
		}

		value, present, err := load(loadCtx)
		if err != nil {
			return zero, err
		}
		if present {
			if encoded, err := json.Marshal(value); err == nil {
				if err := p.cache.Set(loadCtx, key, encoded, p.ttl); err != nil {
					logger.Warn("Query cache write failed", port.Fields{"error": err.Error()})
				}
			}
		}
		return value, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

func (p *CachedPlatform) hit() {
	if p.recorder != nil {
		p.recorder.CacheHit()
	}
}

func (p *CachedPlatform) miss() {
	if p.recorder != nil {
		p.recorder.CacheMiss()
	}
}

func (p *CachedPlatform) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return cached(ctx, p, "product:slug:"+slug, func(ctx context.Context) (*domain.Product, bool, error) {
		product, err := p.PlatformPort.GetProductBySlug(ctx, slug)
		return product, product != nil, err
	})
}

func (p *CachedPlatform) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	return cached(ctx, p, "product:id:"+id, func(ctx context.Context) (*domain.Product, bool, error) {
		product, err := p.PlatformPort.GetProductByID(ctx, id)
		return product, product != nil, err
	})
}

func (p *CachedPlatform) GetRelatedProducts(ctx context.Context, productID string, limit int) ([]domain.Product, error) {
	key := fmt.Sprintf("product:related:%s:%d", productID, limit)
	return cached(ctx, p, key, func(ctx context.Context) ([]domain.Product, bool, error) {
		products, err := p.PlatformPort.GetRelatedProducts(ctx, productID, limit)
		return products, true, err
	})
}

func (p *CachedPlatform) QueryProducts(ctx context.Context, filter domain.ProductFilter, limit, skip int) (*domain.ProductList, error) {
	key := "products:query:" + productQueryKey(filter, limit, skip)
	return cached(ctx, p, key, func(ctx context.Context) (*domain.ProductList, bool, error) {
		list, err := p.PlatformPort.QueryProducts(ctx, filter, limit, skip)
		return list, list != nil, err
	})
}

func (p *CachedPlatform) GetCollections(ctx context.Context) ([]domain.Collection, error) {
	return cached(ctx, p, "collections", func(ctx context.Context) ([]domain.Collection, bool, error) {
		collections, err := p.PlatformPort.GetCollections(ctx)
		return collections, true, err
	})
}

func (p *CachedPlatform) GetCollectionBySlug(ctx context.Context, slug string) (*domain.Collection, error) {
	return cached(ctx, p, "collection:slug:"+slug, func(ctx context.Context) (*domain.Collection, bool, error) {
		collection, err := p.PlatformPort.GetCollectionBySlug(ctx, slug)
		return collection, collection != nil, err
	})
}

// productQueryKey кодирует параметры запроса однозначно: q и sort приходят
// из адресной строки и могут содержать любые разделители.
func productQueryKey(filter domain.ProductFilter, limit, skip int) string {
	values := url.Values{
		"collection": filter.CollectionIDs,
		"q":          {filter.Query},
		"sort":       {filter.Sort},
		"limit":      {strconv.Itoa(limit)},
		"skip":       {strconv.Itoa(skip)},
	}
	return values.Encode()
}
