// Package pagination slices projected lists into fixed-size pages.
package pagination

// DefaultPageSize is the listing page size used when none is configured.
const DefaultPageSize = 10

// Page describes one page of a list. Start and End are 1-based display bounds
// and are both 0 when the list is empty.
type Page struct {
	Number     int `json:"number"`
	Size       int `json:"size"`
	TotalPages int `json:"total_pages"`
	Start      int `json:"start"`
	End        int `json:"end"`
	Total      int `json:"total"`
}

// Paginate computes the page for a list of n items. page is clamped into
// [1, TotalPages] and an empty list is a single page with no items.
func Paginate(n, pageSize, page int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if n < 0 {
		n = 0
	}
	total := (n + pageSize - 1) / pageSize
	if total < 1 {
		total = 1
	}
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	p := Page{Number: page, Size: pageSize, TotalPages: total, Total: n}
	if n == 0 {
		return p
	}
	p.Start = (page-1)*pageSize + 1
	p.End = p.Start + pageSize - 1
	if p.End > n {
		p.End = n
	}
	return p
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// Slice returns the items of items that fall on p. It never copies.
func Slice[T any](items []T, p Page) []T {
	if p.Start == 0 || p.Start > len(items) {
		return items[:0:0]
	}
	end := p.End
	if end > len(items) {
		end = len(items)
	}
	return items[p.Start-1 : end : end]
}
