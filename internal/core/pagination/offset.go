// Package pagination реализует два стиля постраничной выборки, которые
// отдает платформа: смещение с общим числом страниц (каталог) и курсор
// продолжения (история заказов, бесконечная прокрутка).
package pagination

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/beyondeth/shop/internal/core/domain"
)

// PageRequest - запрос страницы в стиле смещения. Page начинается с 1.
// Limit фиксирован в месте вызова и пользователем не настраивается.
type PageRequest struct {
	Limit int
	Page  int
	// AllowEmpty разрешает пустую первую страницу (поиск в магазине).
	// Для коллекций пустой список - это "не найдено".
	AllowEmpty bool
}

// Skip переводит номер страницы в смещение платформы.
func (r PageRequest) Skip() int {
	return (r.Page - 1) * r.Limit
}

// OffsetPage - одна страница результата со смещением.
type OffsetPage[T any] struct {
	Items      []T
	Page       int
	Limit      int
	TotalPages *int
}

// EffectiveTotalPages трактует отсутствующее (или нулевое) общее число страниц как 1.
func (p *OffsetPage[T]) EffectiveTotalPages() int {
	if p.TotalPages == nil || *p.TotalPages < 1 {
		return 1
	}
	return *p.TotalPages
}

// Check - политика "не найдено": пустая страница или номер больше общего числа страниц.
func (p *OffsetPage[T]) Check() error {
	if len(p.Items) == 0 {
		return fmt.Errorf("page %d is empty: %w", p.Page, domain.ErrNotFound)
	}
	if p.Page > p.EffectiveTotalPages() {
		return fmt.Errorf("page %d of %d: %w", p.Page, p.EffectiveTotalPages(), domain.ErrNotFound)
	}
	return nil
}

// OffsetFetchFunc - вызов платформы: вернуть limit элементов, пропустив skip.
// totalCount - общее число элементов, nil если платформа его не знает.
type OffsetFetchFunc[T any] func(ctx context.Context, limit, skip int) (items []T, totalCount *int, err error)

// TotalPages считает ceil(totalCount/limit).
func TotalPages(totalCount *int, limit int) *int {
	if totalCount == nil || limit <= 0 {
		return nil
	}
	pages := (*totalCount + limit - 1) / limit
	return &pages
}

// FetchOffset выполняет запрос страницы и применяет политику:
// номер страницы больше общего числа страниц - это ErrNotFound, а не пустая сетка.
func FetchOffset[T any](ctx context.Context, req PageRequest, fetch OffsetFetchFunc[T]) (*OffsetPage[T], error) {
	if req.Limit < 1 {
		return nil, fmt.Errorf("page size must be positive, got %d: %w", req.Limit, domain.ErrInvalidInput)
	}
	if req.Page < 1 {
		return nil, fmt.Errorf("page %d: %w", req.Page, domain.ErrNotFound)
	}

	items, totalCount, err := fetch(ctx, req.Limit, req.Skip())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page %d: %w", req.Page, err)
	}

	page := &OffsetPage[T]{
		Items:      items,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: TotalPages(totalCount, req.Limit),
	}

	if len(items) == 0 && req.AllowEmpty && req.Page == 1 {
		return page, nil
	}
	if err := page.Check(); err != nil {
		return nil, err
	}
	return page, nil
}

// ParsePage разбирает query-параметр page. Пустое значение - первая страница,
// мусор и значения меньше 1 - ErrNotFound.
func ParsePage(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, fmt.Errorf("invalid page %q: %w", raw, domain.ErrNotFound)
	}
	return page, nil
}
