package usecases_port

import (
	"context"

	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/pagination"
)

// OrderHistory - накопленная лента заказов сессии.
type OrderHistory struct {
	Orders  []domain.Order
	HasNext bool
}

type OrderHistoryUseCasePort interface {
	// Current возвращает уже загруженные заказы (при первом вызове - первую страницу).
	Current(ctx context.Context, sessionID string) (*OrderHistory, error)
	// Next дозагружает следующую страницу.
	Next(ctx context.Context, sessionID string) (*OrderHistory, error)
}

type ListProductReviewsUseCasePort interface {
	Execute(ctx context.Context, productID string, cursor *string) (*pagination.CursorPage[domain.Review], error)
}
