// Package pagination pages an in-memory listing with the FHIR search
// parameters _count and _offset.
package pagination

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultCount = 20
	MaxCount     = 100
)

// Params is the requested page. Count is always within [1, MaxCount] and
// Offset is never negative.
type Params struct {
	Count  int
	Offset int
}

// FromContext reads _count and _offset. Missing, malformed or out-of-range
// values fall back to the defaults rather than failing the request.
func FromContext(c echo.Context) Params {
	count, err := strconv.Atoi(c.QueryParam("_count"))
	if err != nil || count <= 0 {
		count = DefaultCount
	}
	offset, err := strconv.Atoi(c.QueryParam("_offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return Params{Count: min(count, MaxCount), Offset: offset}
}

// Page is one page of a listing plus the navigation links to its neighbours.
type Page[T any] struct {
	Data    []T    `json:"data"`
	Total   int    `json:"total"`
	Count   int    `json:"count"`
	Offset  int    `json:"offset"`
	HasMore bool   `json:"has_more"`
	Links   []Link `json:"links"`
}

// Link is a FHIR-style relation link (self, next, previous).
type Link struct {
	Relation string `json:"relation"`
	URL      string `json:"url"`
}

// Paginate cuts the page described by p out of items. An offset past the end
// yields an empty, non-nil page. basePath is the request path the links are
// built on.
func Paginate[T any](items []T, p Params, basePath string) *Page[T] {
	total := len(items)
	start := min(p.Offset, total)
	end := min(start+p.Count, total)

	data := make([]T, end-start)
	copy(data, items[start:end])

	page := &Page[T]{
		Data:    data,
		Total:   total,
		Count:   p.Count,
		Offset:  p.Offset,
		HasMore: end < total,
		Links:   []Link{p.link("self", basePath, p.Offset)},
	}
	if page.HasMore {
		page.Links = append(page.Links, p.link("next", basePath, end))
	}
	if p.Offset > 0 {
		page.Links = append(page.Links, p.link("previous", basePath, max(p.Offset-p.Count, 0)))
	}
	return page
}

func (p Params) link(rel, basePath string, offset int) Link {
	return Link{Relation: rel, URL: fmt.Sprintf("%s?_offset=%d&_count=%d", basePath, offset, p.Count)}
}
