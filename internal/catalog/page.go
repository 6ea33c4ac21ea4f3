package catalog

import "strings"

// SortDirection orders a paged listing.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// Paging defaults applied when a request omits them.
const (
	DefaultPage      = 0
	DefaultPageSize  = 5
	DefaultSortField = "id"
	MaxPageSize      = 100
)

// PageRequest carries the pass-through paging parameters of a listing.
type PageRequest struct {
	Page      int
	Size      int
	SortField string
	Direction SortDirection
}

// DefaultPageRequest returns page 0 of size 5 sorted by id ascending.
func DefaultPageRequest() PageRequest {
	return PageRequest{Page: DefaultPage, Size: DefaultPageSize, SortField: DefaultSortField, Direction: SortAsc}
}

// ParseSortDirection accepts ASC or DESC in any case.
func ParseSortDirection(s string) (SortDirection, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ASC":
		return SortAsc, true
	case "DESC":
		return SortDesc, true
	}
	return "", false
}

// Offset is the index of the first element on the requested page.
func (r PageRequest) Offset() int { return r.Page * r.Size }

// Page is one slice of a sorted listing together with its totals.
type Page[T any] struct {
	Items         []T
	Number        int
	Size          int
	TotalElements int
}

// TotalPages is the number of pages of Size needed for TotalElements.
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return (p.TotalElements + p.Size - 1) / p.Size
}

// Slice cuts the requested page out of an already sorted listing.
func Slice[T any](sorted []T, req PageRequest) Page[T] {
	p := Page[T]{Number: req.Page, Size: req.Size, TotalElements: len(sorted), Items: []T{}}
	start := req.Offset()
	if start >= len(sorted) || req.Size <= 0 {
		return p
	}
	end := start + req.Size
	if end > len(sorted) {
		end = len(sorted)
	}
	p.Items = append(p.Items, sorted[start:end]...)
	return p
}

// MapPage converts the items of a page while keeping its totals.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := Page[U]{Number: p.Number, Size: p.Size, TotalElements: p.TotalElements, Items: make([]U, 0, len(p.Items))}
	for _, it := range p.Items {
		out.Items = append(out.Items, fn(it))
	}
	return out
}
