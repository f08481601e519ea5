package usecase

import (
	"context"
	"strings"

	"github.com/beyondeth/shop/internal/constants"
	"github.com/beyondeth/shop/internal/contextkeys"
	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/loader"
	"github.com/beyondeth/shop/internal/core/pagination"
	"github.com/beyondeth/shop/internal/core/port"
	"github.com/beyondeth/shop/internal/core/port/usecases_port"
)

type GetShopPageUseCase struct {
	catalog port.CatalogPort
}

func NewGetShopPageUseCase(catalog port.CatalogPort) *GetShopPageUseCase {
	return &GetShopPageUseCase{catalog: catalog}
}

// Execute загружает фильтр коллекций (при ошибке - пустой список, страница
// рендерится дальше) и страницу результатов поиска. Пустой результат на первой
// странице допустим: это "ничего не найдено", а не 404.
func (uc *GetShopPageUseCase) Execute(ctx context.Context, query usecases_port.ShopQuery) (*usecases_port.ShopPage, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetShopPage",
		"query":    query.Query,
		"page":     query.Page,
	})

	query.Query = strings.TrimSpace(query.Query)
	page := &usecases_port.ShopPage{Query: query, Collections: []domain.Collection{}}

	filter := domain.ProductFilter{
		CollectionIDs: query.CollectionIDs,
		Query:         query.Query,
		Sort:          query.Sort,
	}

	err := loader.Join(ctx,
		func(ctx context.Context) error {
			collections, _ := loader.Section(ctx, loader.Degrade, "collections", uc.catalog.GetCollections)
			if collections != nil {
				page.Collections = collections
			}
			return nil
		},
		func(ctx context.Context) error {
			products, err := pagination.FetchOffset(ctx,
				pagination.PageRequest{Limit: constants.CatalogPageSize, Page: query.Page, AllowEmpty: true},
				productsFetcher(uc.catalog, filter),
			)
			if err != nil {
				return err
			}
			page.Products = products
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	ucLogger.Info("Shop page loaded", port.Fields{
		"collections": len(page.Collections),
		"items":       len(page.Products.Items),
	})
	return page, nil
}
