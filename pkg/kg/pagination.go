package kg

import (
	"context"
	"errors"
)

// PageIterator walks a paginated result item by item, fetching following
// pages lazily and sequentially as the current window is consumed.
//
// An errored page is reported by Next as its KGError and ends the iteration.
type PageIterator[T any] struct {
	ctx     context.Context
	page    *ResultPage[T]
	index   int
	counter int
	done    bool
}

// NewPageIterator creates an iterator starting at the first item of page.
func NewPageIterator[T any](ctx context.Context, page *ResultPage[T]) *PageIterator[T] {
	it := &PageIterator[T]{
		ctx:  ctx,
		page: page,
		done: page == nil,
	}

	if page != nil && page.StartFrom != nil {
		it.counter = *page.StartFrom
	}

	return it
}

// HasNext reports whether Next may return another item or an error. When the
// server does not report totals, a page holding as many items as requested is
// assumed to have a successor and Next returns ErrNoMoreItems if it turns out
// to be empty.
func (it *PageIterator[T]) HasNext() bool {
	if it.done {
		return false
	}

	if it.page.Error != nil {
		return true
	}

	if it.reachedTotal() {
		return false
	}

	if it.index < len(it.page.Data) {
		return true
	}

	hasNext, known := it.page.HasNextPage()
	if known {
		return hasNext
	}

	size := it.page.requestedSize()

	return size > 0 && len(it.page.Data) >= size
}

// Next returns the next item, fetching the following page when the current
// window is exhausted.
func (it *PageIterator[T]) Next() (T, error) {
	var zero T

	if it.done {
		return zero, ErrNoMoreItems
	}

	if it.page.Error != nil {
		it.done = true

		return zero, it.page.Error
	}

	if it.reachedTotal() {
		it.done = true

		return zero, ErrNoMoreItems
	}

	if it.index >= len(it.page.Data) {
		next, err := it.page.NextPage(it.ctx)
		if err != nil {
			it.done = true

			return zero, err
		}

		if next == nil || len(next.Data) == 0 {
			it.done = true

			return zero, ErrNoMoreItems
		}

		it.page = next
		it.index = 0
	}

	item := it.page.Data[it.index]
	it.index++
	it.counter++

	return item, nil
}

// All collects the remaining items.
func (it *PageIterator[T]) All() ([]T, error) {
	var items []T

	err := it.ForEach(func(item T) error {
		items = append(items, item)

		return nil
	})

	return items, err
}

// ForEach calls fn for every remaining item and stops at the first error.
func (it *PageIterator[T]) ForEach(fn func(T) error) error {
	for it.HasNext() {
		item, err := it.Next()
		if errors.Is(err, ErrNoMoreItems) {
			return nil
		}

		if err != nil {
			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}

	return nil
}

// Page returns the page currently being consumed.
func (it *PageIterator[T]) Page() *ResultPage[T] {
	return it.page
}

func (it *PageIterator[T]) reachedTotal() bool {
	total := it.page.Total

	return total != nil && *total > 0 && it.counter >= *total
}

// FetchAll collects every item of page and its following pages.
func FetchAll[T any](ctx context.Context, page *ResultPage[T]) ([]T, error) {
	if page == nil {
		return nil, ErrNilPage
	}

	return NewPageIterator(ctx, page).All()
}
