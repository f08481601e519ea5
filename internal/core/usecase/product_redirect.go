package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/beyondeth/shop/internal/contextkeys"
	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/loader"
	"github.com/beyondeth/shop/internal/core/port"
)

type ResolveProductByIDUseCase struct {
	catalog port.CatalogPort
}

func NewResolveProductByIDUseCase(catalog port.CatalogPort) *ResolveProductByIDUseCase {
	return &ResolveProductByIDUseCase{catalog: catalog}
}

// Execute возвращает канонический slug товара: два разных идентификатора
// одного товара сходятся к одному адресу /products/{slug}.
func (uc *ResolveProductByIDUseCase) Execute(ctx context.Context, id string) (string, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "ResolveProductByID",
		"product_id": id,
	})

	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("empty product id: %w", domain.ErrNotFound)
	}

	product, err := loader.Required(uc.catalog.GetProductByID(ctx, id))
	if err != nil {
		return "", err
	}
	if product.Slug == "" {
		return "", fmt.Errorf("product %s has no slug: %w", id, domain.ErrNotFound)
	}

	ucLogger.Debug("Resolved product id to slug", port.Fields{"slug": product.Slug})
	return product.Slug, nil
}
