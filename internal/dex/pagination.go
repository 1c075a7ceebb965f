package dex

import (
	"strconv"
	"strings"
)

// Catalog defaults
const (
	DefaultPageSize   = 20
	DefaultTotalItems = 1025
	WindowWidth       = 5
)

// Page is a resolved page of the catalog
type Page struct {
	Current    int `json:"current"`
	TotalPages int `json:"total_pages"`
	Offset     int `json:"offset"`
	Limit      int `json:"limit"`
}

// HasPrev reports whether a previous page exists
func (p Page) HasPrev() bool { return p.Current > 1 }

// HasNext reports whether a next page exists
func (p Page) HasNext() bool { return p.Current < p.TotalPages }

// PageLink is one entry of the pagination bar. Ellipsis entries carry no number.
type PageLink struct {
	Number   int  `json:"number,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Current  bool `json:"current,omitempty"`
}

// Paginator maps page numbers to offsets over a fixed-size catalog
type Paginator struct {
	PageSize   int
	TotalItems int
}

// NewPaginator creates a paginator, substituting defaults for non-positive values
func NewPaginator(pageSize, totalItems int) Paginator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if totalItems < 0 {
		totalItems = 0
	}
	return Paginator{PageSize: pageSize, TotalItems: totalItems}
}

// TotalPages is ceil(TotalItems/PageSize), never less than 1
func (p Paginator) TotalPages() int {
	pages := (p.TotalItems + p.PageSize - 1) / p.PageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Clamp bounds page to [1, TotalPages]
func (p Paginator) Clamp(page int) int {
	if page < 1 {
		return 1
	}
	if total := p.TotalPages(); page > total {
		return total
	}
	return page
}

// Page resolves a (clamped) page number to its offset and limit
func (p Paginator) Page(page int) Page {
	current := p.Clamp(page)
	return Page{
		Current:    current,
		TotalPages: p.TotalPages(),
		Offset:     (current - 1) * p.PageSize,
		Limit:      p.PageSize,
	}
}

// ParsePage reads a page query value. Absent or malformed values mean page 1.
func (p Paginator) ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return p.Clamp(n)
}

// Window returns the pagination bar for page: a sliding run of width pages
// centred on it, with the first and last pages pinned and ellipses over gaps.
func (p Paginator) Window(page, width int) []PageLink {
	total := p.TotalPages()
	current := p.Clamp(page)
	if width < 1 {
		width = WindowWidth
	}

	start := max(1, current-width/2)
	end := min(total, start+width-1)
	if end-start < width-1 {
		start = max(1, end-width+1)
	}

	links := make([]PageLink, 0, width+4)
	if start > 1 {
		links = append(links, PageLink{Number: 1})
		if start > 2 {
			links = append(links, PageLink{Ellipsis: true})
		}
	}
	for i := start; i <= end; i++ {
		links = append(links, PageLink{Number: i, Current: i == current})
	}
	if end < total {
		if end < total-1 {
			links = append(links, PageLink{Ellipsis: true})
		}
		links = append(links, PageLink{Number: total})
	}
	return links
}
