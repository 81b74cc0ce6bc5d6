package query_test

import (
	"testing"

	"github.com/parcauto/fleet-dashboard/internal/query"
	"github.com/stretchr/testify/assert"
)

func TestSetSearchResetsPage(t *testing.T) {
	s := query.NewListState()
	s.SetPage(4)
	s.SetSearch("toyota")

	assert.Equal(t, 1, s.Page)
	assert.Equal(t, "toyota", s.Search)
}

func TestSetSearchSameTermKeepsPage(t *testing.T) {
	s := query.NewListState()
	s.SetSearch("toyota")
	s.SetPage(3)
	s.SetSearch("toyota")

	assert.Equal(t, 3, s.Page)
}

func TestSetFilterResetsPage(t *testing.T) {
	s := query.NewListState()
	s.SetPage(5)
	s.SetFilter("status", "active")

	assert.Equal(t, 1, s.Page)
	assert.Equal(t, "active", s.Filters["status"])
}

func TestSetFilterEmptyValueRemovesFilter(t *testing.T) {
	s := query.NewListState()
	s.SetFilter("status", "active")
	s.SetPage(2)
	s.SetFilter("status", "")

	assert.Equal(t, 1, s.Page)
	_, ok := s.Filters["status"]
	assert.False(t, ok)
}

func TestSetPageClampsToOne(t *testing.T) {
	s := query.NewListState()
	s.SetPage(0)
	assert.Equal(t, 1, s.Page)
	s.SetPage(-3)
	assert.Equal(t, 1, s.Page)
}

func TestValues(t *testing.T) {
	s := query.NewListState()
	s.SetFilter("status", "active")
	s.SetSearch("hilux")
	s.SetPage(3)

	v := s.Values()
	assert.Equal(t, "3", v.Get("page"))
	assert.Equal(t, "hilux", v.Get("search"))
	assert.Equal(t, "active", v.Get("status"))
	// Default page size is implicit
	assert.Empty(t, v.Get("per_page"))
}

func TestPageWindowSmall(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, query.PageWindow(2, 3, 5))
	assert.Equal(t, []int{1}, query.PageWindow(1, 1, 5))
	assert.Nil(t, query.PageWindow(1, 0, 5))
}

func TestPageWindowMiddle(t *testing.T) {
	pages := query.PageWindow(10, 20, 5)

	assert.Equal(t, 1, pages[0])
	assert.Equal(t, 20, pages[len(pages)-1])
	assert.Contains(t, pages, 10)
	assert.Contains(t, pages, query.Ellipsis)
}

func TestPageWindowBounds(t *testing.T) {
	// First and last page always present, whatever the position
	for _, current := range []int{1, 2, 7, 14, 19, 20} {
		pages := query.PageWindow(current, 20, 5)
		assert.Equal(t, 1, pages[0], "current=%d", current)
		assert.Equal(t, 20, pages[len(pages)-1], "current=%d", current)
		assert.Contains(t, pages, current, "current=%d", current)
	}
}

func TestPageWindowClampsCurrent(t *testing.T) {
	pages := query.PageWindow(99, 10, 5)
	assert.Contains(t, pages, 10)
	assert.Equal(t, 1, pages[0])
}
