package usecase

import (
	"context"
	"fmt"

	"github.com/beyondeth/shop/internal/constants"
	"github.com/beyondeth/shop/internal/contextkeys"
	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/loader"
	"github.com/beyondeth/shop/internal/core/pagination"
	"github.com/beyondeth/shop/internal/core/port"
	"github.com/beyondeth/shop/internal/core/port/usecases_port"
)

type GetProductPageUseCase struct {
	platform port.PlatformPort
}

func NewGetProductPageUseCase(platform port.PlatformPort) *GetProductPageUseCase {
	return &GetProductPageUseCase{platform: platform}
}

// Execute загружает товар по slug. Товар обязателен (ошибка пробрасывается),
// похожие товары и отзывы - вторичные секции и при ошибке деградируют.
func (uc *GetProductPageUseCase) Execute(ctx context.Context, rawSlug string) (*usecases_port.ProductPage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetProductPage",
		"raw_slug": rawSlug,
	})

	slug, err := NormalizeSlug(rawSlug)
	if err != nil {
		return nil, err
	}

	product, err := loader.Section(ctx, loader.Propagate, "product", func(ctx context.Context) (*domain.Product, error) {
		return loader.Required(uc.platform.GetProductBySlug(ctx, slug))
	})
	if err != nil {
		return nil, err
	}
	if product.ID == "" {
		return nil, fmt.Errorf("product %q has no id: %w", slug, domain.ErrNotFound)
	}

	page := &usecases_port.ProductPage{Product: *product}

	// обе секции деградируют сами, поэтому Join здесь ошибок не вернет
	err = loader.Join(ctx,
		func(ctx context.Context) error {
			page.Related, _ = loader.Section(ctx, loader.Degrade, "related_products", func(ctx context.Context) ([]domain.Product, error) {
				return uc.platform.GetRelatedProducts(ctx, product.ID, constants.RelatedProductsLimit)
			})
			return nil
		},
		func(ctx context.Context) error {
			section, _ := loader.Section(ctx, loader.Degrade, "reviews", func(ctx context.Context) (*usecases_port.ReviewsSection, error) {
				return uc.loadReviewsSection(ctx, product.ID)
			})
			if section == nil {
				section = &usecases_port.ReviewsSection{Unavailable: true}
			}
			page.Reviews = *section
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	ucLogger.Info("Product page loaded", port.Fields{
		"product_id":          product.ID,
		"related_count":       len(page.Related),
		"reviews_unavailable": page.Reviews.Unavailable,
	})
	return page, nil
}

// loadReviewsSection: текущий участник, его собственный отзыв (если есть контакт)
// и первая страница отзывов.
func (uc *GetProductPageUseCase) loadReviewsSection(ctx context.Context, productID string) (*usecases_port.ReviewsSection, error) {
	member, err := uc.platform.GetLoggedInMember(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get logged in member: %w", err)
	}

	section := &usecases_port.ReviewsSection{Member: member}

	if member != nil && member.ContactID != "" {
		own, err := uc.platform.QueryReviews(ctx, domain.ReviewFilter{
			ProductID: productID,
			ContactID: member.ContactID,
		}, 1, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to query member review: %w", err)
		}
		section.HasExistingReview = own != nil && len(own.Items) > 0
	}

	reviews, err := uc.platform.QueryReviews(ctx, domain.ReviewFilter{ProductID: productID}, constants.ReviewsPageSize, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	if reviews == nil {
		reviews = &pagination.CursorPage[domain.Review]{}
	}
	section.Reviews = reviews
	return section, nil
}
