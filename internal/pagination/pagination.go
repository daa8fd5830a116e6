// Package pagination slices ordered result sets into fixed-size pages.
//
// All functions are pure and stateless. Page numbers are 1-based; a page
// number that cannot be parsed falls back to the first page and a page
// number past the end clamps to the last page, so a pager never errors on
// user input.
package pagination

import "strconv"

// PageSize is the fixed number of items per page.
const PageSize = 10

// Page is a bounded slice of an ordered result set plus navigation metadata.
type Page[T any] struct {
	Items       []T  `json:"items"`
	Number      int  `json:"page"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// Window describes the slice of a result set that backs one page. It is
// used with SQL LIMIT/OFFSET queries where the items are not in memory.
type Window struct {
	Number      int
	TotalPages  int
	TotalItems  int
	Limit       int
	Offset      int
	HasNext     bool
	HasPrevious bool
}

// ParsePage parses a page query parameter. Absent or malformed values mean
// the first page.
func ParsePage(raw string) int {
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Plan computes the window for the requested page over totalItems items,
// clamping out-of-range requests to the nearest valid page. An empty result
// set still has one (empty) page.
func Plan(totalItems, requested int) Window {
	pages := totalItems / PageSize
	if totalItems%PageSize != 0 || totalItems == 0 {
		pages++
	}

	number := requested
	if number < 1 {
		number = 1
	}
	if number > pages {
		number = pages
	}

	return Window{
		Number:      number,
		TotalPages:  pages,
		TotalItems:  totalItems,
		Limit:       PageSize,
		Offset:      (number - 1) * PageSize,
		HasNext:     number < pages,
		HasPrevious: number > 1,
	}
}

// Paginate slices an in-memory ordered list into the requested page.
func Paginate[T any](items []T, requested int) Page[T] {
	w := Plan(len(items), requested)

	end := w.Offset + w.Limit
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{
		Items:       items[w.Offset:end],
		Number:      w.Number,
		TotalPages:  w.TotalPages,
		TotalItems:  w.TotalItems,
		HasNext:     w.HasNext,
		HasPrevious: w.HasPrevious,
	}
}

// NewPage assembles a Page from a window and the items fetched for it.
func NewPage[T any](w Window, items []T) Page[T] {
	return Page[T]{
		Items:       items,
		Number:      w.Number,
		TotalPages:  w.TotalPages,
		TotalItems:  w.TotalItems,
		HasNext:     w.HasNext,
		HasPrevious: w.HasPrevious,
	}
}
