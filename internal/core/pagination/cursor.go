package pagination

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	ErrCursorAlreadyFetched = errors.New("page for this cursor was already fetched")
	ErrFeedExhausted        = errors.New("no more pages")
)

// CursorPage - страница в стиле курсора. Next == nil, когда данные закончились.
type CursorPage[T any] struct {
	Items []T
	Next  *string
}

func (p *CursorPage[T]) HasNext() bool {
	return p != nil && p.Next != nil && *p.Next != ""
}

// CursorFetchFunc запрашивает страницу по курсору. Для первой страницы cursor == nil.
type CursorFetchFunc[T any] func(ctx context.Context, limit int, cursor *string) (*CursorPage[T], error)

const initialCursorKey = "\x00initial"

// CursorFeed накапливает страницы курсорной выборки.
// Агрегат - это конкатенация страниц в порядке получения. Элементы не
// переупорядочиваются и не дедуплицируются, но одна и та же страница
// (один курсор) дважды не запрашивается.
type CursorFeed[T any] struct {
	mu      sync.Mutex
	limit   int
	fetch   CursorFetchFunc[T]
	pages   []CursorPage[T]
	fetched map[string]struct{}
	next    *string
	started bool
}

func NewCursorFeed[T any](limit int, fetch CursorFetchFunc[T]) *CursorFeed[T] {
	return &CursorFeed[T]{
		limit:   limit,
		fetch:   fetch,
		fetched: make(map[string]struct{}),
	}
}

// FetchNext запрашивает следующую страницу и дописывает ее в конец агрегата.
// Мьютекс удерживается на время запроса: страницы идут строго по порядку курсоров.
// При ошибке состояние ленты не меняется, повторный вызов повторит тот же курсор.
func (f *CursorFeed[T]) FetchNext(ctx context.Context) (*CursorPage[T], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.started && f.next == nil {
		return nil, ErrFeedExhausted
	}

	key := initialCursorKey
	if f.next != nil {
		key = *f.next
	}
	if _, seen := f.fetched[key]; seen {
		return nil, fmt.Errorf("cursor %q: %w", key, ErrCursorAlreadyFetched)
	}

	page, err := f.fetch(ctx, f.limit, f.next)
	if err != nil {
		return nil, err
	}
	if page == nil {
		page = &CursorPage[T]{}
	}

	f.fetched[key] = struct{}{}
	f.pages = append(f.pages, *page)
	f.started = true
	if page.HasNext() {
		next := *page.Next
		f.next = &next
	} else {
		f.next = nil
	}
	return page, nil
}

// Items возвращает копию агрегата всех полученных страниц.
func (f *CursorFeed[T]) Items() []T {
	f.mu.Lock()
	defer f.mu.Unlock()

	var items []T
	for _, p := range f.pages {
		items = append(items, p.Items...)
	}
	return items
}

// HasNext - есть ли что загружать. До первого запроса всегда true.
func (f *CursorFeed[T]) HasNext() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.started || f.next != nil
}

// Started - была ли получена хотя бы одна страница.
func (f *CursorFeed[T]) Started() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.started
}

func (f *CursorFeed[T]) PageCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pages)
}
