// Package pagination builds and runs filtered, sorted, paginated queries whose
// rows are enriched with fields from related collections.
package pagination

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	SortAsc  = "asc"
	SortDesc = "desc"

	DefaultSortField = "createdAt"
)

// Sortable is the allowlist of fields a resource may be sorted by.
type Sortable struct {
	Default string
	Fields  []string
}

// NewSortable returns an allowlist with createdAt as the default.
func NewSortable(fields ...string) Sortable {
	return Sortable{Default: DefaultSortField, Fields: append([]string{DefaultSortField}, fields...)}
}

func (s Sortable) resolve(field string) string {
	field = strings.TrimSpace(field)
	for _, f := range s.Fields {
		if f == field {
			return f
		}
	}
	if s.Default == "" {
		return DefaultSortField
	}
	return s.Default
}

type PageRequest struct {
	Page          int
	Limit         int
	SortField     string
	SortDirection string
}

// ParsePageRequest coerces query parameters into a usable page request.
// Anything missing or malformed falls back to the defaults rather than
// failing the request.
func ParsePageRequest(q url.Values, sortable Sortable) PageRequest {
	// Only the exact value "asc" ascends.
	direction := SortDesc
	if q.Get("sortType") == SortAsc {
		direction = SortAsc
	}
	return PageRequest{
		Page:          positiveInt(q.Get("page"), DefaultPage),
		Limit:         clampLimit(positiveInt(q.Get("limit"), DefaultLimit)),
		SortField:     sortable.resolve(q.Get("sortBy")),
		SortDirection: direction,
	}
}

// Normalize applies the same defaults to a hand-built request.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	p.Limit = clampLimit(p.Limit)
	if p.SortField == "" {
		p.SortField = DefaultSortField
	}
	if p.SortDirection != SortAsc {
		p.SortDirection = SortDesc
	}
	return p
}

func (p PageRequest) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

func (p PageRequest) SortOrder() int {
	if p.SortDirection == SortAsc {
		return 1
	}
	return -1
}

// PageResult is one slice of a sorted result set.
type PageResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func newPageResult[T any](items []T, total int64, p PageRequest) *PageResult[T] {
	if items == nil {
		items = []T{}
	}
	return &PageResult[T]{
		Items:      items,
		TotalCount: total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: TotalPages(total, p.Limit),
	}
}

func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func clampLimit(limit int) int {
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
