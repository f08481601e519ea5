package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/beyondeth/shop/internal/contextkeys"
	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/loader"
	"github.com/beyondeth/shop/internal/core/port"
	"github.com/beyondeth/shop/internal/core/port/usecases_port"
)

type GetCheckoutSuccessPageUseCase struct {
	platform        port.PlatformPort
	events          port.EventPublisherPort
	cartClearWindow time.Duration
	now             func() time.Time
}

func NewGetCheckoutSuccessPageUseCase(platform port.PlatformPort, events port.EventPublisherPort, cartClearWindow time.Duration) *GetCheckoutSuccessPageUseCase {
	return &GetCheckoutSuccessPageUseCase{
		platform:        platform,
		events:          events,
		cartClearWindow: cartClearWindow,
		now:             time.Now,
	}
}

// Execute загружает заказ и участника параллельно. Любая ошибка одного из
// чтений пробрасывается (страница покажет общий экран ошибки), отсутствующий
// заказ - ErrNotFound. Корзина очищается только для свежего заказа.
func (uc *GetCheckoutSuccessPageUseCase) Execute(ctx context.Context, orderID string) (*usecases_port.CheckoutSuccessPage, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetCheckoutSuccessPage",
		"order_id": orderID,
	})

	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, fmt.Errorf("empty order id: %w", domain.ErrNotFound)
	}

	var (
		order  *domain.Order
		member *domain.Member
	)
	err := loader.Join(ctx,
		func(ctx context.Context) error {
			var err error
			order, err = loader.Section(ctx, loader.Propagate, "order", func(ctx context.Context) (*domain.Order, error) {
				return uc.platform.GetOrder(ctx, orderID)
			})
			return err
		},
		func(ctx context.Context) error {
			var err error
			member, err = loader.Section(ctx, loader.Propagate, "member", uc.platform.GetLoggedInMember)
			return err
		},
	)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
	}

	page := &usecases_port.CheckoutSuccessPage{
		Order:     *order,
		Member:    member,
		ClearCart: order.CreatedWithin(uc.now(), uc.cartClearWindow),
	}

	if page.ClearCart {
		page.CartCleared = uc.clearCart(ctx, ucLogger, orderID)
	}

	ucLogger.Info("Checkout success page loaded", port.Fields{
		"logged_in":    member != nil,
		"clear_cart":   page.ClearCart,
		"cart_cleared": page.CartCleared,
	})
	return page, nil
}

// clearCart - побочный эффект страницы, при ошибке страница все равно рендерится.
func (uc *GetCheckoutSuccessPageUseCase) clearCart(ctx context.Context, logger port.LoggerPort, orderID string) bool {
	if err := uc.platform.ClearCurrentCart(ctx); err != nil {
		logger.Warn("Failed to clear cart after checkout", port.Fields{"error": err.Error()})
		return false
	}

	publishEvent(ctx, uc.events, logger, domain.StorefrontEvent{
		Type:       domain.EventCartCleared,
		SessionID:  contextkeys.SessionIDFromContext(ctx),
		OccurredAt: uc.now(),
		Attributes: map[string]string{"order_id": orderID},
	})
	return true
}
