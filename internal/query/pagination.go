// Package query implements the list browsing model shared by every resource
// screen: page state that resets on refinement, a windowed page selector, and
// a keyed response cache with request coalescing.
package query

import (
	"net/url"
	"strconv"
)

// Ellipsis is the marker PageWindow inserts for elided page ranges
const Ellipsis = -1

// DefaultPerPage matches the fleet backend's default page size
const DefaultPerPage = 10

// ListState holds the current browsing position of a resource list. Changing
// the search term or any filter snaps the list back to page one so the user
// never lands on a page that no longer exists under the narrower result set.
type ListState struct {
	Page    int
	PerPage int
	Search  string
	Filters map[string]string
}

// NewListState returns a list state positioned at page one
func NewListState() *ListState {
	return &ListState{
		Page:    1,
		PerPage: DefaultPerPage,
		Filters: make(map[string]string),
	}
}

// SetPage moves to the given page. Pages below one clamp to one.
func (s *ListState) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.Page = page
}

// SetSearch updates the search term and resets to page one
func (s *ListState) SetSearch(term string) {
	if s.Search == term {
		return
	}
	s.Search = term
	s.Page = 1
}

// SetFilter updates a named filter and resets to page one. An empty value
// removes the filter.
func (s *ListState) SetFilter(name, value string) {
	if s.Filters == nil {
		s.Filters = make(map[string]string)
	}
	if s.Filters[name] == value {
		return
	}
	if value == "" {
		delete(s.Filters, name)
	} else {
		s.Filters[name] = value
	}
	s.Page = 1
}

// Values encodes the state as backend query parameters
func (s *ListState) Values() url.Values {
	v := url.Values{}
	if s.Page > 1 {
		v.Set("page", strconv.Itoa(s.Page))
	}
	if s.PerPage > 0 && s.PerPage != DefaultPerPage {
		v.Set("per_page", strconv.Itoa(s.PerPage))
	}
	if s.Search != "" {
		v.Set("search", s.Search)
	}
	for name, value := range s.Filters {
		v.Set(name, value)
	}
	return v
}

// PageWindow returns the page numbers to render for a paginator positioned on
// current out of last pages, keeping at most width numbered entries around the
// current page. The first and last page always appear; elided ranges collapse
// to a single Ellipsis marker.
func PageWindow(current, last, width int) []int {
	if last < 1 {
		return nil
	}
	if width < 1 {
		width = 1
	}
	if current < 1 {
		current = 1
	}
	if current > last {
		current = last
	}

	// Small enough to show everything
	if last <= width+2 {
		pages := make([]int, 0, last)
		for p := 1; p <= last; p++ {
			pages = append(pages, p)
		}
		return pages
	}

	half := width / 2
	start := current - half
	end := current + (width - 1 - half)
	if start < 2 {
		end += 2 - start
		start = 2
	}
	if end > last-1 {
		start -= end - (last - 1)
		end = last - 1
	}
	if start < 2 {
		start = 2
	}

	pages := make([]int, 0, width+4)
	pages = append(pages, 1)
	if start > 2 {
		pages = append(pages, Ellipsis)
	}
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	if end < last-1 {
		pages = append(pages, Ellipsis)
	}
	pages = append(pages, last)
	return pages
}
