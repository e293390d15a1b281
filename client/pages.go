package client

import "iter"

// Page is one page of a cursor-paginated listing. A nil NextCursor marks the
// final page.
type Page[T any] struct {
	Items      []T
	NextCursor *string
}

// Paginate turns a cursor-based page-fetch function into a single flat lazy
// sequence. Pages are fetched serially: each fetch happens only after the
// previous page's items have been consumed, and nothing is buffered beyond
// the current page. The sequence is forward-only and non-restartable; a fetch
// error is yielded once and ends the sequence.
func Paginate[T any](fetch func(cursor *string) (Page[T], error)) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var cursor *string
		for {
			page, err := fetch(cursor)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, item := range page.Items {
				if !yield(item, nil) {
					return
				}
			}
			if page.NextCursor == nil {
				return
			}
			cursor = page.NextCursor
		}
	}
}

// CollectPages drains a paginated sequence into a slice, stopping at the
// first error.
func CollectPages[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var items []T
	for item, err := range seq {
		if err != nil {
			return items, err
		}
		items = append(items, item)
	}
	return items, nil
}
