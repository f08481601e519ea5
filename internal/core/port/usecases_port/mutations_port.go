package usecases_port

import (
	"context"

	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/mutation"
)

type CheckoutUseCasePort interface {
	// StartCartCheckout возвращает URL оформления текущей корзины.
	StartCartCheckout(ctx context.Context, sessionID string) (mutation.Outcome[string], error)
	QuickBuy(ctx context.Context, sessionID string, purchase domain.QuickBuy) (mutation.Outcome[string], error)
}

type UpdateMemberUseCasePort interface {
	Execute(ctx context.Context, sessionID string, update domain.MemberUpdate) (mutation.Outcome[*domain.Member], error)
}

type CreateReviewUseCasePort interface {
	Execute(ctx context.Context, sessionID string, review domain.NewReview) (mutation.Outcome[*domain.Review], error)
}
