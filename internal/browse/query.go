// Package browse holds the UI-independent state of the character browser: the
// user's query, the debounced search text and the fetch session that reconciles
// provider responses into displayable rows.
package browse

import (
	"github.com/f3rmion/morty/internal/character"
	"github.com/f3rmion/morty/internal/paging"
)

// SortOrder orders characters by name.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Label returns the label shown in the filter bar.
func (o SortOrder) Label() string {
	if o == SortDesc {
		return "Z-A"
	}
	return "A-Z"
}

// Toggle returns the opposite order.
func (o SortOrder) Toggle() SortOrder {
	if o == SortDesc {
		return SortAsc
	}
	return SortDesc
}

// Query is the set of user-adjustable browse parameters.
//
// Transitions are value methods returning the next Query. Page resets to 1
// whenever the page size, status, species or debounced search actually change.
type Query struct {
	Search    string // Raw text as typed
	Debounced string // Search text after the quiet period; this one is fetched
	Status    character.Status
	Species   string
	Sort      SortOrder
	PageSize  int
	Page      int
}

// NewQuery returns the initial query for the given page size.
func NewQuery(pageSize int) Query {
	if !paging.ValidPageSize(pageSize) {
		pageSize = paging.DefaultPageSize
	}
	return Query{
		Sort:     SortAsc,
		PageSize: pageSize,
		Page:     1,
	}
}

// WithSearch records raw search input. The page is not reset until the text
// has been debounced.
func (q Query) WithSearch(s string) Query {
	q.Search = s
	return q
}

// WithDebouncedSearch applies search text whose quiet period has elapsed.
func (q Query) WithDebouncedSearch(s string) Query {
	if s != q.Debounced {
		q.Debounced = s
		q.Page = 1
	}
	return q
}

func (q Query) WithStatus(s character.Status) Query {
	if s != q.Status {
		q.Status = s
		q.Page = 1
	}
	return q
}

func (q Query) WithSpecies(s string) Query {
	if s != q.Species {
		q.Species = s
		q.Page = 1
	}
	return q
}

func (q Query) WithPageSize(n int) Query {
	if n != q.PageSize && n > 0 {
		q.PageSize = n
		q.Page = 1
	}
	return q
}

// WithSort changes the sort order. Sorting is local, so the page is kept.
func (q Query) WithSort(o SortOrder) Query {
	q.Sort = o
	return q
}

// WithPage jumps to page n, clamped to [1, total].
func (q Query) WithPage(n, total int) Query {
	if n < 1 {
		n = 1
	}
	if total > 0 && n > total {
		n = total
	}
	q.Page = n
	return q
}

// NextPage advances one page unless already on the last one.
func (q Query) NextPage(total int) Query {
	if paging.HasNext(q.Page, total) {
		q.Page++
	}
	return q
}

// PrevPage steps back one page unless already on the first one.
func (q Query) PrevPage() Query {
	if paging.HasPrev(q.Page) {
		q.Page--
	}
	return q
}

// RemotePage is the provider page that holds the current local page.
func (q Query) RemotePage() int {
	return paging.RemotePage(q.Page, q.PageSize, paging.RemotePageSize)
}

// Slice is the window of the remote page shown on the current local page.
func (q Query) Slice() (start, end int) {
	return paging.LocalSlice(q.Page, q.PageSize, paging.RemotePageSize)
}

// Filter derives the provider request for the current query.
func (q Query) Filter() character.Filter {
	return character.Filter{
		Page:    q.RemotePage(),
		Name:    q.Debounced,
		Status:  q.Status,
		Species: q.Species,
	}
}
