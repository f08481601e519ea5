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

type GetCollectionPageUseCase struct {
	catalog port.CatalogPort
}

func NewGetCollectionPageUseCase(catalog port.CatalogPort) *GetCollectionPageUseCase {
	return &GetCollectionPageUseCase{catalog: catalog}
}

// Execute: коллекция обязательна, сетка товаров по 8 штук.
// Пустая страница или страница за пределами общего числа - ErrNotFound.
func (uc *GetCollectionPageUseCase) Execute(ctx context.Context, rawSlug string, page int) (*usecases_port.CollectionPage, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetCollectionPage",
		"raw_slug": rawSlug,
		"page":     page,
	})

	slug, err := NormalizeSlug(rawSlug)
	if err != nil {
		return nil, err
	}

	collection, err := loader.Required(uc.catalog.GetCollectionBySlug(ctx, slug))
	if err != nil {
		return nil, fmt.Errorf("collection %q: %w", slug, err)
	}
	if collection.ID == "" {
		return nil, fmt.Errorf("collection %q has no id: %w", slug, domain.ErrNotFound)
	}

	filter := domain.ProductFilter{CollectionIDs: []string{collection.ID}}
	products, err := pagination.FetchOffset(ctx,
		pagination.PageRequest{Limit: constants.CatalogPageSize, Page: page},
		productsFetcher(uc.catalog, filter),
	)
	if err != nil {
		return nil, err
	}

	ucLogger.Info("Collection page loaded", port.Fields{
		"collection_id": collection.ID,
		"items":         len(products.Items),
		"total_pages":   products.EffectiveTotalPages(),
	})
	return &usecases_port.CollectionPage{Collection: *collection, Products: products}, nil
}

// productsFetcher адаптирует запрос каталога к OffsetFetchFunc.
func productsFetcher(catalog port.CatalogPort, filter domain.ProductFilter) pagination.OffsetFetchFunc[domain.Product] {
	return func(ctx context.Context, limit, skip int) ([]domain.Product, *int, error) {
		list, err := catalog.QueryProducts(ctx, filter, limit, skip)
		if err != nil {
			return nil, nil, err
		}
		if list == nil {
			return nil, nil, nil
		}
		return list.Items, list.TotalCount, nil
	}
}
