package platform_client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/beyondeth/shop/internal/core/domain"
)

func (c *Client) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var resp ProductResponse
	found, err := c.call(ctx, "GetProductBySlug", http.MethodGet, "/stores/v1/products/by-slug/"+escape(slug), nil, &resp)
	if err != nil || !found || resp.Product == nil {
		return nil, err
	}
	p := toProduct(*resp.Product)
	return &p, nil
}

func (c *Client) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	var resp ProductResponse
	found, err := c.call(ctx, "GetProductByID", http.MethodGet, "/stores/v1/products/"+escape(id), nil, &resp)
	if err != nil || !found || resp.Product == nil {
		return nil, err
	}
	p := toProduct(*resp.Product)
	return &p, nil
}

func (c *Client) GetRelatedProducts(ctx context.Context, productID string, limit int) ([]domain.Product, error) {
	var resp ProductsResponse
	path := fmt.Sprintf("/stores/v1/products/%s/related?limit=%d", escape(productID), limit)
	if _, err := c.call(ctx, "GetRelatedProducts", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	products := toProducts(resp.Items)
	if len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

func (c *Client) QueryProducts(ctx context.Context, filter domain.ProductFilter, limit, skip int) (*domain.ProductList, error) {
	req := ProductQueryRequest{
		Filter: ProductQueryFilter{CollectionIDs: filter.CollectionIDs, Search: filter.Query},
		Sort:   filter.Sort,
		Paging: OffsetPaging{Limit: limit, Offset: skip},
	}
	var resp ProductsResponse
	if _, err := c.call(ctx, "QueryProducts", http.MethodPost, "/stores/v1/products/query", req, &resp); err != nil {
		return nil, err
	}
	return &domain.ProductList{Items: toProducts(resp.Items), TotalCount: resp.TotalCount}, nil
}

func (c *Client) GetCollections(ctx context.Context) ([]domain.Collection, error) {
	var resp CollectionsResponse
	if _, err := c.call(ctx, "GetCollections", http.MethodGet, "/stores/v1/collections", nil, &resp); err != nil {
		return nil, err
	}
	collections := make([]domain.Collection, 0, len(resp.Collections))
	for _, dto := range resp.Collections {
		collections = append(collections, toCollection(dto))
	}
	return collections, nil
}

func (c *Client) GetCollectionBySlug(ctx context.Context, slug string) (*domain.Collection, error) {
	var resp CollectionResponse
	found, err := c.call(ctx, "GetCollectionBySlug", http.MethodGet, "/stores/v1/collections/by-slug/"+escape(slug), nil, &resp)
	if err != nil || !found || resp.Collection == nil {
		return nil, err
	}
	col := toCollection(*resp.Collection)
	return &col, nil
}
