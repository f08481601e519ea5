package port

import (
	"context"

	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/pagination"
)

// Контракты удаленной коммерческой платформы. Все методы чтения единичной
// сущности возвращают (nil, nil), если сущность отсутствует: решение
// "не найдено" принимает загрузчик страницы, а не клиент.

// CatalogPort - товары и коллекции.
type CatalogPort interface {
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	GetRelatedProducts(ctx context.Context, productID string, limit int) ([]domain.Product, error)
	QueryProducts(ctx context.Context, filter domain.ProductFilter, limit, skip int) (*domain.ProductList, error)

	GetCollections(ctx context.Context) ([]domain.Collection, error)
	GetCollectionBySlug(ctx context.Context, slug string) (*domain.Collection, error)
}

// OrdersPort - заказы текущего покупателя.
type OrdersPort interface {
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListMemberOrders(ctx context.Context, limit int, cursor *string) (*pagination.CursorPage[domain.Order], error)
}

// MembersPort - текущий участник. GetLoggedInMember возвращает nil для гостя.
type MembersPort interface {
	GetLoggedInMember(ctx context.Context) (*domain.Member, error)
	UpdateMember(ctx context.Context, memberID string, update domain.MemberUpdate) (*domain.Member, error)
}

type ReviewsPort interface {
	QueryReviews(ctx context.Context, filter domain.ReviewFilter, limit int, cursor *string) (*pagination.CursorPage[domain.Review], error)
	CreateReview(ctx context.Context, review domain.NewReview) (*domain.Review, error)
}

// CheckoutPort - создание сессий оформления. Возвращает URL, на который нужно уйти.
type CheckoutPort interface {
	GetCheckoutURLForCurrentCart(ctx context.Context) (string, error)
	GetCheckoutURLForProduct(ctx context.Context, purchase domain.QuickBuy) (string, error)
	ClearCurrentCart(ctx context.Context) error
}

// PlatformPort - все возможности платформы, которыми пользуется витрина.
type PlatformPort interface {
	CatalogPort
	OrdersPort
	MembersPort
	ReviewsPort
	CheckoutPort
}
