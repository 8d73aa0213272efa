package repository

import "github.com/maxviazov/realty-marketplace/internal/pagination"

// Page represents a limit/offset window for listing operations.
// Filtering belongs to the per-entity filter types, not here.
type Page struct {
	Limit  int
	Offset int
}

// PageFromRequest converts a normalized 1-indexed page request into the
// row window the SQL layer understands.
func PageFromRequest(r pagination.PageRequest) Page {
	return Page{Limit: r.PerPage, Offset: pagination.Skip(r)}
}

// PageResult carries a slice of items and the total count matching the query.
// The total lets callers compute page metadata without an extra round trip.
type PageResult[T any] struct {
	Items []T
	Total int
}
