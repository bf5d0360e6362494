// Package pager slices an in-memory result set into fixed-size pages and
// computes the bounded page-number window shown in pagination controls.
package pager

// Ellipsis marks a gap in a page-number window where pages were elided.
const Ellipsis = -1

// DefaultWindow is the default number of page numbers shown around the
// current page.
const DefaultWindow = 5

// Pager tracks the current page over a result set of known size.
// Pages are 1-based. The zero value is not usable; use New.
type Pager struct {
	page  int
	size  int
	total int
}

// New creates a Pager with the given page size over an empty result set.
// Sizes below 1 fall back to 1.
func New(size int) *Pager {
	if size < 1 {
		size = 1
	}
	return &Pager{page: 1, size: size}
}

// Reset replaces the result-set size and returns to page 1. Any change to
// the underlying results must go through here so the current page cannot
// drift out of range.
func (p *Pager) Reset(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
	p.page = 1
}

// Page returns the current page, always within [1, TotalPages()].
func (p *Pager) Page() int { return p.page }

// Size returns the page size.
func (p *Pager) Size() int { return p.size }

// Total returns the result-set size.
func (p *Pager) Total() int { return p.total }

// TotalPages returns the page count, at least 1 even for an empty set so
// that the current page stays well-defined. Callers hide the pagination
// controls when this is <= 1.
func (p *Pager) TotalPages() int {
	if p.total == 0 {
		return 1
	}
	return (p.total + p.size - 1) / p.size
}

// SetPage moves to page n. Out-of-range requests are rejected, not
// clamped: the pager stays where it was and SetPage returns false.
func (p *Pager) SetPage(n int) bool {
	if n < 1 || n > p.TotalPages() {
		return false
	}
	p.page = n
	return true
}

// Next advances one page, reporting whether it moved.
func (p *Pager) Next() bool { return p.SetPage(p.page + 1) }

// Prev goes back one page, reporting whether it moved.
func (p *Pager) Prev() bool { return p.SetPage(p.page - 1) }

// Slice returns the current page's portion of items. The pager's total
// must match len(items); a shorter slice is cut safely at its end.
func Slice[T any](items []T, page, size int) []T {
	if size < 1 || page < 1 {
		return nil
	}
	lo := (page - 1) * size
	if lo >= len(items) {
		return nil
	}
	hi := min(len(items), lo+size)
	return items[lo:hi]
}

// Window returns the page numbers to render around current, always
// including the first and last page, with Ellipsis markers where the
// window does not reach an edge. width is the maximum count of numbered
// pages in the middle run; values below 1 use DefaultWindow.
func Window(current, totalPages, width int) []int {
	if totalPages < 1 {
		totalPages = 1
	}
	if width < 1 {
		width = DefaultWindow
	}

	start := max(1, current-width/2)
	end := min(totalPages, start+width-1)
	if end-start+1 < width {
		start = max(1, end-width+1)
	}

	var pages []int
	if start > 1 {
		pages = append(pages, 1)
		if start > 2 {
			pages = append(pages, Ellipsis)
		}
	}
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	if end < totalPages {
		if end < totalPages-1 {
			pages = append(pages, Ellipsis)
		}
		pages = append(pages, totalPages)
	}
	return pages
}

// Window returns the window for the pager's current position.
func (p *Pager) Window(width int) []int {
	return Window(p.page, p.TotalPages(), width)
}
