package usecases_port

import (
	"context"

	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/pagination"
)

// ReviewsSection - вторичная секция страницы товара.
// Unavailable == true, если секцию не удалось загрузить.
type ReviewsSection struct {
	Member            *domain.Member
	HasExistingReview bool
	Reviews           *pagination.CursorPage[domain.Review]
	Unavailable       bool
}

type ProductPage struct {
	Product domain.Product
	// Related == nil, если секция похожих товаров не загрузилась или пуста.
	Related []domain.Product
	Reviews ReviewsSection
}

type GetProductPageUseCasePort interface {
	Execute(ctx context.Context, rawSlug string) (*ProductPage, error)
}

// ResolveProductByIDUseCasePort переводит устаревший числовой/внутренний id
// в канонический slug товара.
type ResolveProductByIDUseCasePort interface {
	Execute(ctx context.Context, id string) (string, error)
}

type CollectionPage struct {
	Collection domain.Collection
	Products   *pagination.OffsetPage[domain.Product]
}

type GetCollectionPageUseCasePort interface {
	Execute(ctx context.Context, slug string, page int) (*CollectionPage, error)
}

type ShopQuery struct {
	Query         string
	CollectionIDs []string
	Sort          string
	Page          int
}

type ShopPage struct {
	Collections []domain.Collection
	Products    *pagination.OffsetPage[domain.Product]
	Query       ShopQuery
}

type GetShopPageUseCasePort interface {
	Execute(ctx context.Context, query ShopQuery) (*ShopPage, error)
}

type CheckoutSuccessPage struct {
	Order  domain.Order
	Member *domain.Member
	// ClearCart - заказ свежий, корзину нужно очистить.
	ClearCart   bool
	CartCleared bool
}

type GetCheckoutSuccessPageUseCasePort interface {
	Execute(ctx context.Context, orderID string) (*CheckoutSuccessPage, error)
}

type ProfilePage struct {
	Member domain.Member
}

type GetProfilePageUseCasePort interface {
	Execute(ctx context.Context) (*ProfilePage, error)
}
