package rest

import (
	"context"
	"sync"

	"github.com/beyondeth/shop/internal/adapters/notifier"
	"github.com/beyondeth/shop/internal/contextkeys"
	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/mutation"
	"github.com/beyondeth/shop/internal/core/pagination"
	"github.com/beyondeth/shop/internal/core/port/usecases_port"
)

type productPageStub struct {
	page    *usecases_port.ProductPage
	err     error
	gotSlug string
	token   string
}

func (s *productPageStub) Execute(ctx context.Context, rawSlug string) (*usecases_port.ProductPage, error) {
	s.gotSlug = rawSlug
	s.token = contextkeys.MemberTokenFromContext(ctx)
	return s.page, s.err
}

type resolveStub struct {
	slug string
	err  error
}

func (s *resolveStub) Execute(ctx context.Context, id string) (string, error) { return s.slug, s.err }

type collectionPageStub struct {
	page    *usecases_port.CollectionPage
	err     error
	gotPage int
}

func (s *collectionPageStub) Execute(ctx context.Context, slug string, page int) (*usecases_port.CollectionPage, error) {
	s.gotPage = page
	return s.page, s.err
}

type shopPageStub struct {
	got usecases_port.ShopQuery
	err error
}

func (s *shopPageStub) Execute(ctx context.Context, query usecases_port.ShopQuery) (*usecases_port.ShopPage, error) {
	s.got = query
	if s.err != nil {
		return nil, s.err
	}
	return &usecases_port.ShopPage{
		Query:       query,
		Collections: []domain.Collection{{ID: "c1", Slug: "summer", Name: "Summer"}},
		Products: &pagination.OffsetPage[domain.Product]{
			Items: []domain.Product{{ID: "p1", Slug: "hat", Name: "Hat"}},
			Page:  query.Page,
			Limit: 8,
		},
	}, nil
}

type checkoutSuccessStub struct {
	page *usecases_port.CheckoutSuccessPage
	err  error
}

func (s *checkoutSuccessStub) Execute(ctx context.Context, orderID string) (*usecases_port.CheckoutSuccessPage, error) {
	return s.page, s.err
}

type profilePageStub struct {
	page *usecases_port.ProfilePage
	err  error
}

func (s *profilePageStub) Execute(ctx context.Context) (*usecases_port.ProfilePage, error) {
	return s.page, s.err
}

type orderHistoryStub struct {
	history *usecases_port.OrderHistory
	err     error
}

func (s *orderHistoryStub) Current(ctx context.Context, sessionID string) (*usecases_port.OrderHistory, error) {
	return s.history, s.err
}

func (s *orderHistoryStub) Next(ctx context.Context, sessionID string) (*usecases_port.OrderHistory, error) {
	return s.history, s.err
}

type reviewsStub struct {
	page      *pagination.CursorPage[domain.Review]
	err       error
	gotCursor *string
}

func (s *reviewsStub) Execute(ctx context.Context, productID string, cursor *string) (*pagination.CursorPage[domain.Review], error) {
	s.gotCursor = cursor
	return s.page, s.err
}

type checkoutStub struct {
	outcome mutation.Outcome[string]
	err     error
	calls   int
	got     domain.QuickBuy
}

func (s *checkoutStub) StartCartCheckout(ctx context.Context, sessionID string) (mutation.Outcome[string], error) {
	s.calls++
	return s.outcome, s.err
}

func (s *checkoutStub) QuickBuy(ctx context.Context, sessionID string, purchase domain.QuickBuy) (mutation.Outcome[string], error) {
	s.calls++
	s.got = purchase
	return s.outcome, s.err
}

type updateMemberStub struct {
	outcome mutation.Outcome[*domain.Member]
	err     error
}

func (s *updateMemberStub) Execute(ctx context.Context, sessionID string, update domain.MemberUpdate) (mutation.Outcome[*domain.Member], error) {
	return s.outcome, s.err
}

type createReviewStub struct {
	outcome mutation.Outcome[*domain.Review]
	err     error
	got     domain.NewReview
}

func (s *createReviewStub) Execute(ctx context.Context, sessionID string, review domain.NewReview) (mutation.Outcome[*domain.Review], error) {
	s.got = review
	return s.outcome, s.err
}

type teardownRecorder struct {
	mu  sync.Mutex
	ids []string
}

func (t *teardownRecorder) Teardown(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ids = append(t.ids, sessionID)
}

func (t *teardownRecorder) count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.ids)
}

type pageRecorder struct {
	mu    sync.Mutex
	views []string
}

func (p *pageRecorder) PageRendered(page, view string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.views = append(p.views, page+":"+view)
}

type streamStub struct {
	ch      notifier.ClientChannel
	removed chan struct{}
	done    chan struct{}
}

func (s *streamStub) AddClient(sessionID string) notifier.ClientChannel { return s.ch }

func (s *streamStub) Done() <-chan struct{} { return s.done }

func (s *streamStub) RemoveClient(sessionID string, ch notifier.ClientChannel) {
	close(s.removed)
}
