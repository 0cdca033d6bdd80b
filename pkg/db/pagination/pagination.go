// Package pagination builds page/offset windows over list queries.
package pagination

import "math"

const (
	DefaultPageSize = 10
	MaxPageSize     = 250
)

// Page is the requested window, bound from the pageSize and currentPage
// query parameters. Zero values mean "not supplied".
type Page struct {
	PageSize    int `form:"pageSize" json:"pageSize"`
	CurrentPage int `form:"currentPage" json:"currentPage"`
}

// Normalize fills defaults and clamps the window. A missing page size becomes
// defaultSize, a negative one becomes 1, and anything above maxSize is capped.
// Pages before the first are moved to the first page.
func (p Page) Normalize(defaultSize, maxSize int) Page {
	if defaultSize < 1 {
		defaultSize = DefaultPageSize
	}
	if maxSize < defaultSize {
		maxSize = defaultSize
	}

	switch {
	case p.PageSize == 0:
		p.PageSize = defaultSize
	case p.PageSize < 0:
		p.PageSize = 1
	case p.PageSize > maxSize:
		p.PageSize = maxSize
	}
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	return p
}

// Offset is the number of rows skipped before the window starts. It
// saturates at math.MaxInt, so a page too far out to address lies past the
// end of any result set instead of wrapping around to the first rows.
func (p Page) Offset() int {
	if p.CurrentPage < 1 || p.PageSize < 1 {
		return 0
	}
	if p.CurrentPage-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.CurrentPage - 1) * p.PageSize
}

// PastEnd reports whether the window starts at or after the last of total rows.
func (p Page) PastEnd(total int64) bool {
	return int64(p.Offset()) >= total
}

func (p Page) Limit() int {
	if p.PageSize < 1 {
		return 1
	}
	return p.PageSize
}

// Result is one window of records plus the size of the unwindowed set.
type Result[T any] struct {
	Records     []T   `json:"records"`
	Total       int64 `json:"total"`
	PageSize    int   `json:"pageSize"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
}

func NewResult[T any](records []T, total int64, page Page) Result[T] {
	if records == nil {
		records = []T{}
	}
	return Result[T]{
		Records:     records,
		Total:       total,
		PageSize:    page.PageSize,
		CurrentPage: page.CurrentPage,
		TotalPages:  TotalPages(total, page.PageSize),
	}
}

func TotalPages(total int64, pageSize int) int {
	if total <= 0 || pageSize < 1 {
		return 0
	}
	size := int64(pageSize)
	return int((total + size - 1) / size)
}

// Meta returns the pagination block rendered next to list payloads.
func (r Result[T]) Meta() Meta {
	return Meta{
		Total:       r.Total,
		PageSize:    r.PageSize,
		CurrentPage: r.CurrentPage,
		TotalPages:  r.TotalPages,
	}
}

type Meta struct {
	Total       int64 `json:"total"`
	PageSize    int   `json:"pageSize"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
}
