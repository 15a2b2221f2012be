package browse

import (
	"context"
	"errors"

	"github.com/f3rmion/morty/internal/character"
	"github.com/f3rmion/morty/internal/paging"
)

// User-facing messages for failed fetches.
const (
	MsgNoMatch = "No characters match your criteria."
	MsgFailed  = "An error occurred. Please try again."
)

// Fetcher retrieves one remote page of characters.
type Fetcher interface {
	ListCharacters(ctx context.Context, f character.Filter) (*character.Page, error)
}

// Request is a fetch issued by a Session. Seq increases with every request.
type Request struct {
	Seq    uint64
	Filter character.Filter
}

// Response is the outcome of a Request.
type Response struct {
	Seq     uint64
	Results []character.Character
	Info    *character.PageInfo
	Err     error
}

// Fetch runs req against f and narrows the results to names starting with
// the requested name.
func Fetch(ctx context.Context, f Fetcher, req Request) Response {
	page, err := f.ListCharacters(ctx, req.Filter)
	if err != nil {
		return Response{Seq: req.Seq, Err: err}
	}
	info := page.Info
	return Response{
		Seq:     req.Seq,
		Results: FilterByPrefix(page.Results, req.Filter.Name),
		Info:    &info,
	}
}

// Session is the browser's state container. It owns the query, the result of
// the latest fetch and the character shown in the detail overlay.
//
// A Session is not safe for concurrent use; all calls happen on the UI loop.
type Session struct {
	Query Query

	results  []character.Character
	info     *character.PageInfo
	errMsg   string
	selected *character.Character
	loading  bool

	seq    uint64
	issued *character.Filter
}

// NewSession returns a session starting from q.
func NewSession(q Query) *Session {
	return &Session{Query: q}
}

// Update applies a query transition and begins a fetch if the transition
// changed what has to be fetched.
func (s *Session) Update(fn func(Query) Query) (Request, bool) {
	s.Query = fn(s.Query)
	return s.Begin()
}

// Begin starts a fetch cycle when the remote page, debounced search, status or
// species differ from the last issued request. Starting a cycle clears the
// error and closes the detail overlay.
func (s *Session) Begin() (Request, bool) {
	f := s.Query.Filter()
	if s.issued != nil && *s.issued == f {
		return Request{}, false
	}
	s.issued = &f
	s.errMsg = ""
	s.selected = nil
	s.loading = true
	s.seq++
	return Request{Seq: s.seq, Filter: f}, true
}

// Complete applies resp if it answers the latest request. Responses to
// superseded requests are dropped and Complete returns false.
func (s *Session) Complete(resp Response) bool {
	if resp.Seq != s.seq {
		return false
	}
	s.loading = false
	if resp.Err != nil {
		if errors.Is(resp.Err, character.ErrNotFound) {
			s.errMsg = MsgNoMatch
		} else {
			s.errMsg = MsgFailed
		}
		s.results = nil
		s.info = nil
		return true
	}
	s.results = resp.Results
	s.info = resp.Info
	return true
}

// Visible returns the rows of the current local page: the latest results
// sorted by name, windowed to the page.
func (s *Session) Visible() []character.Character {
	sorted := SortByName(s.results, s.Query.Sort)
	start, end := s.Query.Slice()
	return paging.Window(sorted, start, end)
}

// TotalPages returns the number of local pages, 1 without page info.
func (s *Session) TotalPages() int {
	if s.info == nil {
		return 1
	}
	return paging.TotalPages(s.info.Pages, paging.RemotePageSize, s.Query.PageSize)
}

// HasPrev reports whether the previous-page control is enabled.
func (s *Session) HasPrev() bool { return paging.HasPrev(s.Query.Page) }

// HasNext reports whether the next-page control is enabled.
func (s *Session) HasNext() bool { return paging.HasNext(s.Query.Page, s.TotalPages()) }

// NextPage moves forward one page, fetching if needed.
func (s *Session) NextPage() (Request, bool) {
	total := s.TotalPages()
	return s.Update(func(q Query) Query { return q.NextPage(total) })
}

// PrevPage moves back one page, fetching if needed.
func (s *Session) PrevPage() (Request, bool) {
	return s.Update(Query.PrevPage)
}

// Select opens the detail overlay for c.
func (s *Session) Select(c character.Character) {
	s.selected = &c
}

// Deselect closes the detail overlay.
func (s *Session) Deselect() {
	s.selected = nil
}

// Selected returns the character in the detail overlay, or nil.
func (s *Session) Selected() *character.Character { return s.selected }

// Err returns the user-facing message of the last failed fetch.
func (s *Session) Err() string { return s.errMsg }

// Loading reports whether the latest request is still in flight.
func (s *Session) Loading() bool { return s.loading }

// Results returns the filtered results of the latest successful fetch.
func (s *Session) Results() []character.Character { return s.results }

// Info returns the page info of the latest successful fetch, or nil.
func (s *Session) Info() *character.PageInfo { return s.info }

// Seq returns the sequence number of the latest request.
func (s *Session) Seq() uint64 { return s.seq }
