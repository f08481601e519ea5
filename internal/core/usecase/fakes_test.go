package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/mutation"
	"github.com/beyondeth/shop/internal/core/pagination"
	"github.com/beyondeth/shop/internal/core/session"
)

var errPlatform = errors.New("platform unavailable")

// fakePlatform - платформа в памяти. Поля *Err заставляют соответствующий вызов упасть.
type fakePlatform struct {
	mu sync.Mutex

	products    []domain.Product
	collections []domain.Collection
	related     []domain.Product
	orders      []domain.Order
	reviews     []domain.Review
	member      *domain.Member

	productErr     error
	relatedErr     error
	collectionsErr error
	queryErr       error
	orderErr       error
	memberErr      error
	reviewsErr     error
	updateErr      error
	createErr      error
	checkoutErr    error
	clearErr       error

	queryCalls   []domain.ProductFilter
	reviewCalls  []domain.ReviewFilter
	orderCursors []*string
	cartCleared  int
	updates      []domain.MemberUpdate
}

func (f *fakePlatform) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	if f.productErr != nil {
		return nil, f.productErr
	}
	for i := range f.products {
		if f.products[i].Slug == slug {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakePlatform) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	if f.productErr != nil {
		return nil, f.productErr
	}
	for i := range f.products {
		if f.products[i].ID == id {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakePlatform) GetRelatedProducts(ctx context.Context, productID string, limit int) ([]domain.Product, error) {
	if f.relatedErr != nil {
		return nil, f.relatedErr
	}
	if len(f.related) > limit {
		return f.related[:limit], nil
	}
	return f.related, nil
}

func (f *fakePlatform) QueryProducts(ctx context.Context, filter domain.ProductFilter, limit, skip int) (*domain.ProductList, error) {
	f.mu.Lock()
	f.queryCalls = append(f.queryCalls, filter)
	f.mu.Unlock()
	if f.queryErr != nil {
		return nil, f.queryErr
	}

	var matched []domain.Product
	for _, p := range f.products {
		if len(filter.CollectionIDs) > 0 && !containsAny(p.CollectionIDs, filter.CollectionIDs) {
			continue
		}
		matched = append(matched, p)
	}
	total := len(matched)
	if skip >= len(matched) {
		return &domain.ProductList{TotalCount: &total}, nil
	}
	end := min(skip+limit, len(matched))
	return &domain.ProductList{Items: matched[skip:end], TotalCount: &total}, nil
}

func containsAny(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}

func (f *fakePlatform) GetCollections(ctx context.Context) ([]domain.Collection, error) {
	if f.collectionsErr != nil {
		return nil, f.collectionsErr
	}
	return f.collections, nil
}

func (f *fakePlatform) GetCollectionBySlug(ctx context.Context, slug string) (*domain.Collection, error) {
	if f.collectionsErr != nil {
		return nil, f.collectionsErr
	}
	for i := range f.collections {
		if f.collections[i].Slug == slug {
			c := f.collections[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakePlatform) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	for i := range f.orders {
		if f.orders[i].ID == orderID {
			o := f.orders[i]
			return &o, nil
		}
	}
	return nil, nil
}

// ListMemberOrders отдает заказы страницами с курсорами "o<смещение>".
func (f *fakePlatform) ListMemberOrders(ctx context.Context, limit int, cursor *string) (*pagination.CursorPage[domain.Order], error) {
	f.mu.Lock()
	f.orderCursors = append(f.orderCursors, cursor)
	f.mu.Unlock()
	if f.orderErr != nil {
		return nil, f.orderErr
	}

	start := 0
	if cursor != nil {
		for i := range f.orders {
			if "o"+f.orders[i].ID == *cursor {
				start = i
			}
		}
	}
	end := min(start+limit, len(f.orders))
	page := &pagination.CursorPage[domain.Order]{Items: f.orders[start:end]}
	if end < len(f.orders) {
		next := "o" + f.orders[end].ID
		page.Next = &next
	}
	return page, nil
}

func (f *fakePlatform) GetLoggedInMember(ctx context.Context) (*domain.Member, error) {
	if f.memberErr != nil {
		return nil, f.memberErr
	}
	return f.member, nil
}

func (f *fakePlatform) UpdateMember(ctx context.Context, memberID string, update domain.MemberUpdate) (*domain.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updates = append(f.updates, update)
	updated := *f.member
	updated.FirstName = update.FirstName
	updated.LastName = update.LastName
	return &updated, nil
}

func (f *fakePlatform) QueryReviews(ctx context.Context, filter domain.ReviewFilter, limit int, cursor *string) (*pagination.CursorPage[domain.Review], error) {
	f.mu.Lock()
	f.reviewCalls = append(f.reviewCalls, filter)
	f.mu.Unlock()
	if f.reviewsErr != nil {
		return nil, f.reviewsErr
	}

	var items []domain.Review
	for _, r := range f.reviews {
		if r.ProductID != filter.ProductID {
			continue
		}
		if filter.ContactID != "" && r.ContactID != filter.ContactID {
			continue
		}
		items = append(items, r)
	}
	if len(items) > limit {
		next := items[limit].ID
		return &pagination.CursorPage[domain.Review]{Items: items[:limit], Next: &next}, nil
	}
	return &pagination.CursorPage[domain.Review]{Items: items}, nil
}

func (f *fakePlatform) CreateReview(ctx context.Context, review domain.NewReview) (*domain.Review, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &domain.Review{ID: "r-new", ProductID: review.ProductID, Title: review.Title, Body: review.Body, Rating: review.Rating}, nil
}

func (f *fakePlatform) GetCheckoutURLForCurrentCart(ctx context.Context) (string, error) {
	if f.checkoutErr != nil {
		return "", f.checkoutErr
	}
	return "https://checkout.example/cart", nil
}

func (f *fakePlatform) GetCheckoutURLForProduct(ctx context.Context, purchase domain.QuickBuy) (string, error) {
	if f.checkoutErr != nil {
		return "", f.checkoutErr
	}
	return "https://checkout.example/product/" + purchase.ProductID, nil
}

func (f *fakePlatform) ClearCurrentCart(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cartCleared++
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.StorefrontEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event domain.StorefrontEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []domain.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []domain.EventType
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.ClientEvent
}

func (n *recordingNotifier) Send(ctx context.Context, sessionID string, event domain.ClientEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

type fakeTimer struct {
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.stopped = true
	return true
}

type timerQueue struct {
	timers []*fakeTimer
	delays []time.Duration
}

func (q *timerQueue) afterFunc(d time.Duration, f func()) mutation.Timer {
	t := &fakeTimer{fn: f}
	q.timers = append(q.timers, t)
	q.delays = append(q.delays, d)
	return t
}

func newDeps(notifier *recordingNotifier, events *recordingPublisher, timers *timerQueue) MutationDeps {
	return MutationDeps{
		Sessions:  session.NewStore(),
		Notifier:  notifier,
		Events:    events,
		AfterFunc: timers.afterFunc,
	}
}

func ptr[T any](v T) *T { return &v }
