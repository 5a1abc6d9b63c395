package pagination

import (
	"errors"
)

// DefaultWindowSize is the width of the page-number window rendered by the
// "previous / 1 2 3 4 / next" controls.
const DefaultWindowSize = 4

var ErrInvalidPageSize = errors.New("page size must be a positive integer")

type (
	// Paginator composes listing pages: it clamps the requested page number
	// to the valid range and produces the window of page links around it.
	// The page size is fixed at construction from configuration.
	Paginator struct {
		pageSize   int
		windowSize int
	}

	// Page describes one listing page of a collection of TotalItems records.
	Page struct {
		Number     int
		PageSize   int
		Offset     int
		TotalItems int64
		TotalPages int
		Window     []int
		HasPrev    bool
		HasNext    bool
	}
)

func New(pageSize int) (*Paginator, error) {
	return NewWithWindow(pageSize, DefaultWindowSize)
}

func NewWithWindow(pageSize, windowSize int) (*Paginator, error) {
	if pageSize < 1 {
		return nil, ErrInvalidPageSize
	}
	if windowSize < 1 {
		windowSize = DefaultWindowSize
	}
	return &Paginator{pageSize: pageSize, windowSize: windowSize}, nil
}

func (p *Paginator) PageSize() int {
	return p.pageSize
}

// Compose resolves the requested 1-based page number against a collection of
// total items. Out-of-range requests resolve to the nearest valid page; an
// empty collection still yields one (empty) page with window [1].
func (p *Paginator) Compose(total int64, requested int) Page {
	totalPages := int((total + int64(p.pageSize) - 1) / int64(p.pageSize))
	if totalPages < 1 {
		totalPages = 1
	}

	number := requested
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	return Page{
		Number:     number,
		PageSize:   p.pageSize,
		Offset:     (number - 1) * p.pageSize,
		TotalItems: total,
		TotalPages: totalPages,
		Window:     p.window(number, totalPages),
		HasPrev:    number > 1,
		HasNext:    number < totalPages,
	}
}

// window returns a contiguous run of windowSize page numbers centered as
// evenly as possible on current, clamped to [1, totalPages].
func (p *Paginator) window(current, totalPages int) []int {
	start := current - p.windowSize/2
	stop := start + p.windowSize // exclusive

	if start < 1 {
		stop += 1 - start
		start = 1
	}
	if stop > totalPages+1 {
		start -= stop - (totalPages + 1)
		stop = totalPages + 1
		if start < 1 {
			start = 1
		}
	}

	window := make([]int, 0, stop-start)
	for n := start; n < stop; n++ {
		window = append(window, n)
	}
	return window
}

// Slice cuts one page out of an in-memory sequence. Repositories normally
// push Offset/PageSize into the query instead; this exists for callers that
// already hold the full candidate slice.
func Slice[T any](items []T, page Page) []T {
	if page.Offset >= len(items) {
		return nil
	}
	end := page.Offset + page.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[page.Offset:end]
}
