package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/beyondeth/shop/internal/constants"
	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/pagination"
	"github.com/beyondeth/shop/internal/core/port"
)

type ListProductReviewsUseCase struct {
	reviews port.ReviewsPort
}

func NewListProductReviewsUseCase(reviews port.ReviewsPort) *ListProductReviewsUseCase {
	return &ListProductReviewsUseCase{reviews: reviews}
}

// Execute возвращает одну страницу отзывов по курсору (nil - первая страница).
func (uc *ListProductReviewsUseCase) Execute(ctx context.Context, productID string, cursor *string) (*pagination.CursorPage[domain.Review], error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, fmt.Errorf("empty product id: %w", domain.ErrInvalidInput)
	}
	if cursor != nil && *cursor == "" {
		cursor = nil
	}

	page, err := uc.reviews.QueryReviews(ctx, domain.ReviewFilter{ProductID: productID}, constants.ReviewsPageSize, cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews for product %s: %w", productID, err)
	}
	if page == nil {
		page = &pagination.CursorPage[domain.Review]{}
	}
	return page, nil
}
