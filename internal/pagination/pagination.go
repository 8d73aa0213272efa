// Package pagination turns a page request and a total row count into the
// metadata list pages render (page count, items on this page, prev/next).
package pagination

import "math"

const (
	// DefaultPerPage is applied by callers when the request omits a page size.
	DefaultPerPage = 10
	// MaxPerPage is the upper bound accepted by request validation.
	MaxPerPage = 100
	// MaxPage bounds the page number so Skip stays far from int overflow.
	MaxPage = 1_000_000
)

// PageRequest is the 1-indexed page window asked for by a client.
// Zero values mean "not supplied"; Normalize fills them in.
type PageRequest struct {
	Page    int `form:"page" json:"page,omitempty" validate:"omitempty,min=1,max=1000000"`
	PerPage int `form:"limit" json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
}

// PageMeta is derived once per list response and never mutated.
type PageMeta struct {
	Page            int  `json:"page"`
	ItemCount       int  `json:"itemCount"`
	PageCount       int  `json:"pageCount"`
	Take            int  `json:"take"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	HasNextPage     bool `json:"hasNextPage"`
}

// Normalize applies the defaults for missing values. It does not clamp
// out-of-range values; those are rejected by validation before this point.
func (r PageRequest) Normalize() PageRequest {
	if r.Page == 0 {
		r.Page = 1
	}
	if r.PerPage == 0 {
		r.PerPage = DefaultPerPage
	}
	return r
}

// Skip returns the number of rows preceding the requested page. It
// saturates at math.MaxInt instead of wrapping.
func Skip(r PageRequest) int {
	if r.Page <= 1 || r.PerPage <= 0 {
		return 0
	}
	if r.Page-1 > math.MaxInt/r.PerPage {
		return math.MaxInt
	}
	return (r.Page - 1) * r.PerPage
}

// Compute derives PageMeta for req over itemCount rows.
// Callers guarantee req.Page >= 1 and req.PerPage >= 1.
func Compute(req PageRequest, itemCount int) PageMeta {
	pageCount := 1
	if itemCount > 0 {
		pageCount = (itemCount + req.PerPage - 1) / req.PerPage
	}

	take := 0
	if remaining := itemCount - Skip(req); remaining > 0 {
		take = min(req.PerPage, remaining)
	}

	return PageMeta{
		Page:            req.Page,
		ItemCount:       itemCount,
		PageCount:       pageCount,
		Take:            take,
		HasPreviousPage: req.Page > 1 && itemCount > 0,
		HasNextPage:     req.Page < pageCount,
	}
}
