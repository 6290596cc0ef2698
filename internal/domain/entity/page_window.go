package entity

// PageWindow describes the visible page and the block of page buttons around it.
type PageWindow struct {
	CurrentPage int  `json:"currentPage"`
	RowsPerPage int  `json:"rowsPerPage"`
	TotalPages  int  `json:"totalPages"`
	StartPage   int  `json:"startPage"`
	EndPage     int  `json:"endPage"`
	HasPrevious bool `json:"hasPrevious"`
	HasNext     bool `json:"hasNext"`
}

// Pages returns the page numbers of the visible button block.
func (w PageWindow) Pages() []int {
	if w.EndPage < w.StartPage {
		return nil
	}
	out := make([]int, 0, w.EndPage-w.StartPage+1)
	for p := w.StartPage; p <= w.EndPage; p++ {
		out = append(out, p)
	}
	return out
}
