package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryQueryCache_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryQueryCache()
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	value, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), value)

	now = now.Add(time.Minute)
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Second))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Hour))
	now = now.Add(2 * time.Second)
	assert.Equal(t, 1, c.Purge())
}

// countingPlatform считает обращения к каталогу. Остальные методы не нужны.
type countingPlatform struct {
	port.PlatformPort

	mu       sync.Mutex
	calls    map[string]int
	products map[string]domain.Product
	err      error
	gate     chan struct{}
}

func newCountingPlatform() *countingPlatform {
	return &countingPlatform{
		calls:    make(map[string]int),
		products: map[string]domain.Product{"blue-shirt": {ID: "p1", Slug: "blue-shirt", Name: "Blue shirt"}},
	}
}

func (p *countingPlatform) count(method string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[method]
}

func (p *countingPlatform) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	p.mu.Lock()
	p.calls["GetProductBySlug"]++
	p.mu.Unlock()
	if p.gate != nil {
		select {
		case <-p.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.err != nil {
		return nil, p.err
	}
	product, ok := p.products[slug]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

func (p *countingPlatform) GetCollections(ctx context.Context) ([]domain.Collection, error) {
	p.mu.Lock()
	p.calls["GetCollections"]++
	p.mu.Unlock()
	return []domain.Collection{{ID: "c1", Slug: "summer-sale"}}, nil
}

// QueryProducts возвращает товар, в имени которого записаны q и sort запроса.
func (p *countingPlatform) QueryProducts(ctx context.Context, filter domain.ProductFilter, limit, skip int) (*domain.ProductList, error) {
	p.mu.Lock()
	p.calls["QueryProducts"]++
	p.mu.Unlock()
	return &domain.ProductList{
		Items: []domain.Product{{ID: "q", Name: filter.Query + "|" + filter.Sort}},
	}, nil
}

type hitCounter struct{ hits, misses atomic.Int32 }

func (h *hitCounter) CacheHit()  { h.hits.Add(1) }
func (h *hitCounter) CacheMiss() { h.misses.Add(1) }

func TestCachedPlatform_CachesCatalogReads(t *testing.T) {
	platform := newCountingPlatform()
	counter := &hitCounter{}
	cached := NewCachedPlatform(platform, NewMemoryQueryCache(), time.Minute, 0, counter)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		product, err := cached.GetProductBySlug(ctx, "blue-shirt")
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, "p1", product.ID)
	}
	assert.Equal(t, 1, platform.count("GetProductBySlug"))
	assert.Equal(t, int32(2), counter.hits.Load())
	assert.Equal(t, int32(1), counter.misses.Load())

	_, err := cached.GetCollections(ctx)
	require.NoError(t, err)
	collections, err := cached.GetCollections(ctx)
	require.NoError(t, err)
	assert.Len(t, collections, 1)
	assert.Equal(t, 1, platform.count("GetCollections"))
}

func TestCachedPlatform_QueryKeyIsUnambiguous(t *testing.T) {
	platform := newCountingPlatform()
	cached := NewCachedPlatform(platform, NewMemoryQueryCache(), time.Minute, 0, nil)
	ctx := context.Background()

	first, err := cached.QueryProducts(ctx, domain.ProductFilter{Query: "x:y"}, 8, 0)
	require.NoError(t, err)
	second, err := cached.QueryProducts(ctx, domain.ProductFilter{Query: "x", Sort: "y:"}, 8, 0)
	require.NoError(t, err)

	assert.Equal(t, "x:y|", first.Items[0].Name)
	assert.Equal(t, "x|y:", second.Items[0].Name)
	assert.Equal(t, 2, platform.count("QueryProducts"))

	_, err = cached.QueryProducts(ctx, domain.ProductFilter{CollectionIDs: []string{"a,b"}}, 8, 0)
	require.NoError(t, err)
	_, err = cached.QueryProducts(ctx, domain.ProductFilter{CollectionIDs: []string{"a", "b"}}, 8, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, platform.count("QueryProducts"))

	again, err := cached.QueryProducts(ctx, domain.ProductFilter{Query: "x:y"}, 8, 0)
	require.NoError(t, err)
	assert.Equal(t, "x:y|", again.Items[0].Name)
	assert.Equal(t, 4, platform.count("QueryProducts"))
}

func TestProductQueryKey(t *testing.T) {
	a := productQueryKey(domain.ProductFilter{Query: "x:y"}, 8, 0)
	b := productQueryKey(domain.ProductFilter{Query: "x", Sort: "y:"}, 8, 0)
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, productQueryKey(domain.ProductFilter{}, 8, 0), productQueryKey(domain.ProductFilter{}, 8, 8))
}

func TestCachedPlatform_DoesNotCacheAbsenceOrErrors(t *testing.T) {
	platform := newCountingPlatform()
	cached := NewCachedPlatform(platform, NewMemoryQueryCache(), time.Minute, 0, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		product, err := cached.GetProductBySlug(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, product)
	}
	assert.Equal(t, 2, platform.count("GetProductBySlug"))

	platform.err = errors.New("platform down")
	_, err := cached.GetProductBySlug(ctx, "other")
	assert.Error(t, err)
	platform.err = nil
	_, err = cached.GetProductBySlug(ctx, "other")
	assert.NoError(t, err)
	assert.Equal(t, 4, platform.count("GetProductBySlug"))
}

func TestCachedPlatform_CollapsesConcurrentMisses(t *testing.T) {
	platform := newCountingPlatform()
	platform.gate = make(chan struct{})
	cached := NewCachedPlatform(platform, NewMemoryQueryCache(), time.Minute, 0, nil)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			product, err := cached.GetProductBySlug(context.Background(), "blue-shirt")
			assert.NoError(t, err)
			assert.NotNil(t, product)
		}()
	}

	require.Eventually(t, func() bool { return platform.count("GetProductBySlug") == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(platform.gate)
	wg.Wait()

	assert.Equal(t, 1, platform.count("GetProductBySlug"))
}

func TestCachedPlatform_SharedLoadSurvivesCallerCancel(t *testing.T) {
	platform := newCountingPlatform()
	platform.gate = make(chan struct{})
	cached := NewCachedPlatform(platform, NewMemoryQueryCache(), time.Minute, time.Second, nil)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstDone := make(chan error, 1)
	go func() {
		_, err := cached.GetProductBySlug(firstCtx, "blue-shirt")
		firstDone <- err
	}()
	require.Eventually(t, func() bool { return platform.count("GetProductBySlug") == 1 }, time.Second, time.Millisecond)

	secondDone := make(chan error, 1)
	go func() {
		product, err := cached.GetProductBySlug(context.Background(), "blue-shirt")
		if err == nil && product == nil {
			err = errors.New("product missing")
		}
		secondDone <- err
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	time.Sleep(20 * time.Millisecond)
	close(platform.gate)

	assert.NoError(t, <-secondDone)
	assert.NoError(t, <-firstDone)
	assert.Equal(t, 1, platform.count("GetProductBySlug"))
}

func TestCachedPlatform_LoadTimeout(t *testing.T) {
	platform := newCountingPlatform()
	platform.gate = make(chan struct{})
	cached := NewCachedPlatform(platform, NewMemoryQueryCache(), time.Minute, 20*time.Millisecond, nil)

	_, err := cached.GetProductBySlug(context.Background(), "blue-shirt")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// Требует запущенный Redis, иначе пропускается.
func TestRedisQueryCache_Integration(t *testing.T) {
	c := NewRedisQueryCache("localhost:6379", "", 0)
	defer c.Close()
	ctx := context.Background()
	if err := c.Ping(ctx); err != nil {
		t.Skip("Skipping Redis integration test: redis not available")
	}

	require.NoError(t, c.Set(ctx, "test:key", []byte("value"), time.Second))
	value, ok, err := c.Get(ctx, "test:key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("value"), value)

	_, ok, err = c.Get(ctx, "test:missing")
	require.NoError(t, err)
	assert.False(t, ok)
}
