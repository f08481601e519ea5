package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/beyondeth/shop/internal/constants"
	"github.com/beyondeth/shop/internal/contextkeys"
	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/mutation"
	"github.com/beyondeth/shop/internal/core/port"
)

// CheckoutUseCase запускает оформление заказа на стороне платформы.
// После успеха хук остается pending: клиент уходит по URL оформления.
type CheckoutUseCase struct {
	checkout port.CheckoutPort
	deps     MutationDeps
}

func NewCheckoutUseCase(checkout port.CheckoutPort, deps MutationDeps) *CheckoutUseCase {
	return &CheckoutUseCase{checkout: checkout, deps: deps}
}

func (uc *CheckoutUseCase) StartCartCheckout(ctx context.Context, sessionID string) (mutation.Outcome[string], error) {
	hook := hookFor(uc.deps, sessionID, mutation.Config{
		Name:                 constants.MutationCartCheckout,
		FailureMessage:       constants.MessageCheckoutFailed,
		KeepPendingOnSuccess: true,
	}, func(ctx context.Context, _ struct{}) (string, error) {
		url, err := uc.checkout.GetCheckoutURLForCurrentCart(ctx)
		if err != nil {
			return "", err
		}
		return uc.started(ctx, url, map[string]string{"flow": "cart"})
	})
	return hook.Run(ctx, struct{}{})
}

func (uc *CheckoutUseCase) QuickBuy(ctx context.Context, sessionID string, purchase domain.QuickBuy) (mutation.Outcome[string], error) {
	purchase.ProductID = strings.TrimSpace(purchase.ProductID)
	if purchase.ProductID == "" {
		return mutation.Outcome[string]{}, fmt.Errorf("quick buy without product: %w", domain.ErrInvalidInput)
	}
	if purchase.Quantity < 1 {
		return mutation.Outcome[string]{}, fmt.Errorf("quick buy quantity %d: %w", purchase.Quantity, domain.ErrInvalidInput)
	}

	hook := hookFor(uc.deps, sessionID, mutation.Config{
		Name:                 constants.MutationQuickBuy,
		FailureMessage:       constants.MessageCheckoutFailed,
		KeepPendingOnSuccess: true,
	}, func(ctx context.Context, in domain.QuickBuy) (string, error) {
		url, err := uc.checkout.GetCheckoutURLForProduct(ctx, in)
		if err != nil {
			return "", err
		}
		return uc.started(ctx, url, map[string]string{
			"flow":       "quick_buy",
			"product_id": in.ProductID,
			"quantity":   strconv.Itoa(in.Quantity),
		})
	})
	return hook.Run(ctx, purchase)
}

func (uc *CheckoutUseCase) started(ctx context.Context, url string, attrs map[string]string) (string, error) {
	if url == "" {
		return "", errors.New("platform returned empty checkout url")
	}
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "Checkout"})
	publishEvent(ctx, uc.deps.Events, logger, domain.StorefrontEvent{
		Type:       domain.EventCheckoutStarted,
		SessionID:  contextkeys.SessionIDFromContext(ctx),
		OccurredAt: uc.deps.now(),
		Attributes: attrs,
	})
	return url, nil
}
