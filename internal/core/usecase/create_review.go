package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/beyondeth/shop/internal/constants"
	"github.com/beyondeth/shop/internal/contextkeys"
	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/mutation"
	"github.com/beyondeth/shop/internal/core/port"
)

type CreateReviewUseCase struct {
	reviews port.ReviewsPort
	deps    MutationDeps
}

func NewCreateReviewUseCase(reviews port.ReviewsPort, deps MutationDeps) *CreateReviewUseCase {
	return &CreateReviewUseCase{reviews: reviews, deps: deps}
}

func (uc *CreateReviewUseCase) Execute(ctx context.Context, sessionID string, review domain.NewReview) (mutation.Outcome[*domain.Review], error) {
	review.ProductID = strings.TrimSpace(review.ProductID)
	review.Title = strings.TrimSpace(review.Title)
	review.Body = strings.TrimSpace(review.Body)
	if review.ProductID == "" {
		return mutation.Outcome[*domain.Review]{}, fmt.Errorf("review without product: %w", domain.ErrInvalidInput)
	}
	if review.Rating < 1 || review.Rating > 5 {
		return mutation.Outcome[*domain.Review]{}, fmt.Errorf("rating %d out of range: %w", review.Rating, domain.ErrInvalidInput)
	}

	hook := hookFor(uc.deps, sessionID, mutation.Config{
		Name:           constants.MutationCreateReview,
		FailureMessage: constants.MessageReviewCreateFailed,
	}, uc.create)
	return hook.Run(ctx, review)
}

func (uc *CreateReviewUseCase) create(ctx context.Context, review domain.NewReview) (*domain.Review, error) {
	created, err := uc.reviews.CreateReview(ctx, review)
	if err != nil {
		return nil, err
	}

	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "CreateReview",
		"product_id": review.ProductID,
	})
	publishEvent(ctx, uc.deps.Events, logger, domain.StorefrontEvent{
		Type:       domain.EventReviewCreated,
		SessionID:  contextkeys.SessionIDFromContext(ctx),
		OccurredAt: uc.deps.now(),
		Attributes: map[string]string{
			"product_id": review.ProductID,
			"rating":     strconv.Itoa(review.Rating),
		},
	})
	return created, nil
}
