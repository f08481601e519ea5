package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/beyondeth/shop/internal/constants"
	"github.com/beyondeth/shop/internal/contextkeys"
	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/pagination"
	"github.com/beyondeth/shop/internal/core/port"
	"github.com/beyondeth/shop/internal/core/port/usecases_port"
	"github.com/beyondeth/shop/internal/core/session"
)

// OrderHistoryUseCase - бесконечная лента заказов участника.
// Лента живет в сессии до следующего рендера страницы.
type OrderHistoryUseCase struct {
	orders   port.OrdersPort
	sessions *session.Store
}

func NewOrderHistoryUseCase(orders port.OrdersPort, sessions *session.Store) *OrderHistoryUseCase {
	return &OrderHistoryUseCase{orders: orders, sessions: sessions}
}

func (uc *OrderHistoryUseCase) feed(sessionID string) *pagination.CursorFeed[domain.Order] {
	st := uc.sessions.Get(sessionID)
	return session.FeedFor(st, constants.FeedOrderHistory, func() *pagination.CursorFeed[domain.Order] {
		return pagination.NewCursorFeed(constants.OrderHistoryPageSize, uc.orders.ListMemberOrders)
	})
}

// Current возвращает накопленные заказы. Если лента еще пуста, загружает первую страницу.
func (uc *OrderHistoryUseCase) Current(ctx context.Context, sessionID string) (*usecases_port.OrderHistory, error) {
	feed := uc.feed(sessionID)
	if !feed.Started() {
		if _, err := uc.fetch(ctx, feed); err != nil {
			return nil, err
		}
	}
	return snapshot(feed), nil
}

// Next дозагружает следующую страницу. Исчерпанная лента и уже запрошенный
// курсор - не ошибка: возвращается текущий агрегат без нового запроса.
func (uc *OrderHistoryUseCase) Next(ctx context.Context, sessionID string) (*usecases_port.OrderHistory, error) {
	feed := uc.feed(sessionID)
	if _, err := uc.fetch(ctx, feed); err != nil {
		if errors.Is(err, pagination.ErrFeedExhausted) || errors.Is(err, pagination.ErrCursorAlreadyFetched) {
			return snapshot(feed), nil
		}
		return nil, err
	}
	return snapshot(feed), nil
}

func (uc *OrderHistoryUseCase) fetch(ctx context.Context, feed *pagination.CursorFeed[domain.Order]) (*pagination.CursorPage[domain.Order], error) {
	page, err := feed.FetchNext(ctx)
	if err != nil {
		if errors.Is(err, pagination.ErrFeedExhausted) || errors.Is(err, pagination.ErrCursorAlreadyFetched) {
			return nil, err
		}
		contextkeys.LoggerFromContext(ctx).Error("Failed to fetch orders page", err, port.Fields{
			"use_case": "OrderHistory",
			"pages":    feed.PageCount(),
		})
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return page, nil
}

func snapshot(feed *pagination.CursorFeed[domain.Order]) *usecases_port.OrderHistory {
	orders := feed.Items()
	if orders == nil {
		orders = []domain.Order{}
	}
	return &usecases_port.OrderHistory{Orders: orders, HasNext: feed.HasNext()}
}
