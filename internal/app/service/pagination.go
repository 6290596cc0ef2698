package service

import "lendboard/internal/domain/entity"

const (
	DefaultRowsPerPage       = 5
	DefaultMaxVisibleButtons = 5
)

// Paginator slices datasets into pages and computes the button block.
type Paginator struct {
	RowsPerPage       int
	MaxVisibleButtons int
}

// NewPaginator returns a Paginator, replacing non-positive sizes with the defaults.
func NewPaginator(rowsPerPage, maxVisibleButtons int) Paginator {
	if rowsPerPage <= 0 {
		rowsPerPage = DefaultRowsPerPage
	}
	if maxVisibleButtons <= 0 {
		maxVisibleButtons = DefaultMaxVisibleButtons
	}
	return Paginator{RowsPerPage: rowsPerPage, MaxVisibleButtons: maxVisibleButtons}
}

// TotalPages is ceil(n / RowsPerPage), 0 for an empty dataset.
func (p Paginator) TotalPages(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + p.RowsPerPage - 1) / p.RowsPerPage
}

// Window computes the page-button block containing currentPage.
// Blocks are aligned to MaxVisibleButtons: pages 1-5, 6-10, and so on.
func (p Paginator) Window(currentPage, totalPages int) entity.PageWindow {
	if currentPage < 1 {
		currentPage = 1
	}
	start := ((currentPage-1)/p.MaxVisibleButtons)*p.MaxVisibleButtons + 1
	end := start + p.MaxVisibleButtons - 1
	if end > totalPages {
		end = totalPages
	}
	return entity.PageWindow{
		CurrentPage: currentPage,
		RowsPerPage: p.RowsPerPage,
		TotalPages:  totalPages,
		StartPage:   start,
		EndPage:     end,
		HasPrevious: currentPage > 1,
		HasNext:     currentPage < totalPages,
	}
}

// CanChangeTo reports whether target is a valid page for a dataset of n rows.
func (p Paginator) CanChangeTo(target, n int) bool {
	return target >= 1 && target <= p.TotalPages(n)
}

// Paginate returns the rows of currentPage and the total page count.
// Out-of-range pages yield an empty slice rather than panicking.
func Paginate[T any](p Paginator, rows []T, currentPage int) ([]T, int) {
	total := p.TotalPages(len(rows))
	if currentPage < 1 {
		return nil, total
	}
	start := (currentPage - 1) * p.RowsPerPage
	if start >= len(rows) {
		return nil, total
	}
	end := start + p.RowsPerPage
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], total
}
