package service

import (
	"net/url"
	"strconv"

	"github.com/parcauto/fleet-dashboard/internal/domain"
)

// listValues encodes shared list parameters as backend query values
func listValues(p *domain.ListParams) url.Values {
	v := url.Values{}
	if p == nil {
		return v
	}
	if p.Page > 1 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	for name, value := range p.Filters {
		if value != "" {
			v.Set(name, value)
		}
	}
	return v
}

// cacheKey builds the cache key for a resource read. Keys are prefixed by
// resource so mutations can invalidate every cached page of that resource.
func cacheKey(resource string, v url.Values) string {
	if len(v) == 0 {
		return resource
	}
	return resource + "?" + v.Encode()
}
