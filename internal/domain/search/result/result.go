package result

import "github.com/johnleydelgado/legacy-app-sub005/internal/domain/record"

// Meta is the pagination summary of a page.
type Meta struct {
	TotalItems   int64
	ItemCount    int
	ItemsPerPage int
	TotalPages   int
	CurrentPage  int
}

// NewMeta derives pagination metadata from the total match count.
// A page past the end has ItemCount 0.
func NewMeta(totalItems int64, page, limit int) Meta {
	m := Meta{TotalItems: totalItems, ItemsPerPage: limit, CurrentPage: page}
	if limit <= 0 || totalItems <= 0 {
		return m
	}
	pages := totalItems / int64(limit)
	if totalItems%int64(limit) != 0 {
		pages++
	}
	m.TotalPages = int(pages)

	if page < 1 || page > m.TotalPages {
		return m
	}
	remaining := totalItems - int64(page-1)*int64(limit)
	switch {
	case remaining < int64(limit):
		m.ItemCount = int(remaining)
	default:
		m.ItemCount = limit
	}
	return m
}

// Page is one page of search results.
type Page struct {
	items []record.Record
	meta  Meta
}

// New creates a page.
func New(items []record.Record, meta Meta) Page {
	if items == nil {
		items = []record.Record{}
	}
	return Page{items: items, meta: meta}
}

// Empty is the result for a query with nothing searchable.
func Empty(page, limit int) Page {
	return New(nil, NewMeta(0, page, limit))
}

// Items returns the page rows in order.
func (p Page) Items() []record.Record { return p.items }

// Meta returns the pagination summary.
func (p Page) Meta() Meta { return p.meta }
