package paging

// DefaultLimit page size used when none is configured
const DefaultLimit = 10

// MaxLimit upper bound accepted for a page size
const MaxLimit = 1024

// Params holds offset pagination parameters sent to the remote list
type Params struct {
	Offset int `json:"offset" url:"offset"`
	Limit  int `json:"limit" url:"limit"`
}

// Result holds one page of a remote collection
type Result[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// Empty returns the empty page.
func Empty[T any]() *Result[T] {
	return &Result[T]{Items: make([]T, 0)}
}

// NormalizeParams ensures that Limit is within an acceptable range and Offset is not negative
func NormalizeParams(params Params) Params {
	if params.Limit <= 0 || params.Limit > MaxLimit {
		params.Limit = DefaultLimit
	}
	if params.Offset < 0 {
		params.Offset = 0
	}
	return params
}

// Window is the current position of a paged list: a 1-based page, a page
// size fixed at construction and the last known total of matching items.
type Window struct {
	page  int
	limit int
	total int
}

// NewWindow returns a window on page 1.
func NewWindow(limit int) *Window {
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	return &Window{page: 1, limit: limit}
}

// Page returns the current 1-based page.
func (w *Window) Page() int { return w.page }

// Limit returns the page size.
func (w *Window) Limit() int { return w.limit }

// Total returns the last known number of matching items.
func (w *Window) Total() int { return w.total }

// Offset returns (page-1) * limit.
func (w *Window) Offset() int { return (w.page - 1) * w.limit }

// RowNumber returns the 1-based position of the i-th item fetched with p.
func (p Params) RowNumber(i int) int { return p.Offset + i + 1 }

// Params returns the offset/limit pair for the current page.
func (w *Window) Params() Params {
	return Params{Offset: w.Offset(), Limit: w.limit}
}

// SetTotal records the total reported by the last fetch. Negative totals are
// stored as 0.
func (w *Window) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	w.total = total
}

// TotalPages returns ceil(total / limit); 0 when there is nothing to show.
func (w *Window) TotalPages() int {
	return (w.total + w.limit - 1) / w.limit
}

// DisplayPages returns TotalPages but never less than 1, so an empty list
// still reads "page 1 of 1".
func (w *Window) DisplayPages() int {
	return max(1, w.TotalPages())
}

// Pages lists the selectable page numbers 1..DisplayPages.
func (w *Window) Pages() []int {
	n := w.DisplayPages()
	pages := make([]int, n)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// GoToPage moves to page p. Callers keep p within 1..TotalPages; only p < 1
// is corrected, to page 1.
func (w *Window) GoToPage(p int) {
	if p < 1 {
		p = 1
	}
	w.page = p
}

// HasNext reports whether Next would move.
func (w *Window) HasNext() bool {
	return w.page < w.TotalPages()
}

// HasPrevious reports whether Previous would move.
func (w *Window) HasPrevious() bool {
	return w.page > 1
}

// Next moves one page forward. It is a no-op on the last page and when there
// are no pages at all; the result reports whether the page changed.
func (w *Window) Next() bool {
	if !w.HasNext() {
		return false
	}
	w.GoToPage(w.page + 1)
	return true
}

// Previous moves one page back; a no-op on page 1.
func (w *Window) Previous() bool {
	if !w.HasPrevious() {
		return false
	}
	w.GoToPage(w.page - 1)
	return true
}

// Reset re-anchors the window on page 1. The total is kept until the next
// fetch replaces it.
func (w *Window) Reset() {
	w.page = 1
}

// RowNumber returns the 1-based position across the whole collection of the
// i-th item of the current page.
func (w *Window) RowNumber(i int) int {
	return w.Params().RowNumber(i)
}
