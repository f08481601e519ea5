// Package loader описывает контракт серверной загрузки данных страницы:
// явная политика ошибок для каждого вызова и параллельное чтение независимых сущностей.
package loader

import (
	"context"
	"fmt"

	"github.com/beyondeth/shop/internal/contextkeys"
	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/port"

	"golang.org/x/sync/errgroup"
)

// Policy - что делать с ошибкой чтения.
type Policy int

const (
	// Degrade - залогировать и вернуть нулевое значение. Вторичные секции
	// страницы (похожие товары, отзывы) не должны ронять основную.
	Degrade Policy = iota
	// Propagate - вернуть ошибку вызывающему (основной загрузчик страницы).
	Propagate
)

func (p Policy) String() string {
	switch p {
	case Propagate:
		return "propagate"
	default:
		return "degrade"
	}
}

// Section выполняет одно чтение с заданной политикой ошибок.
// При Degrade ошибка проглатывается, но ErrNotFound тоже превращается в нулевое значение:
// отсутствующая вторичная секция просто не рендерится.
func Section[T any](ctx context.Context, policy Policy, name string, fn func(ctx context.Context) (T, error)) (T, error) {
	value, err := fn(ctx)
	if err == nil {
		return value, nil
	}

	var zero T
	if policy == Propagate {
		return zero, fmt.Errorf("section %s: %w", name, err)
	}

	contextkeys.LoggerFromContext(ctx).Warn("Section failed, rendering without it", port.Fields{
		"section": name,
		"error":   err.Error(),
	})
	return zero, nil
}

// Required превращает отсутствующую сущность (nil) в ErrNotFound.
func Required[T any](entity *T, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, domain.ErrNotFound
	}
	return entity, nil
}

// Require - вариант для чтений вида (value, ok).
func Require[T any](value T, ok bool) (T, error) {
	if !ok {
		var zero T
		return zero, domain.ErrNotFound
	}
	return value, nil
}

// Join запускает независимые чтения параллельно и дожидается всех.
// Первая ошибка отменяет контекст остальных и возвращается вызывающему.
func Join(ctx context.Context, fns ...func(ctx context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, fn := range fns {
		fn := fn
		g.Go(func() error {
			return fn(gctx)
		})
	}
	return g.Wait()
}
