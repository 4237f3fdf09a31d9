package pagination

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// Parse errors for page and limit query parameters. Non-numeric and
// non-positive values are rejected rather than silently coerced.
var (
	ErrInvalidPage  = errors.New("page must be a positive integer")
	ErrInvalidLimit = errors.New("limit must be a positive integer")
)

// PageRequest represents a client request for a page of data with an optional
// title search term.
type PageRequest struct {
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
	Search *string `json:"search,omitempty"`
}

// Normalize applies config defaults for unset values and clamps the limit.
// Page and Limit are assumed valid (see FromQuery); zero values take defaults.
func (r *PageRequest) Normalize(cfg Config) {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = cfg.DefaultPageSize
	}
	if r.Limit > cfg.MaxPageSize {
		r.Limit = cfg.MaxPageSize
	}
}

// Offset calculates the number of records to skip based on page and limit.
func (r *PageRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// FromQuery parses pagination parameters from URL query values.
// Supported parameters: page, limit, search. Absent parameters take config
// defaults; present but non-numeric or non-positive values are an error.
func FromQuery(values url.Values, cfg Config) (PageRequest, error) {
	req := PageRequest{}

	if v := values.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return req, ErrInvalidPage
		}
		req.Page = page
	}

	if v := values.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return req, ErrInvalidLimit
		}
		req.Limit = limit
	}

	if s := strings.TrimSpace(values.Get("search")); s != "" {
		req.Search = &s
	}

	req.Normalize(cfg)
	return req, nil
}

// Meta holds pagination metadata for a page of results.
type Meta struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	Limit       int  `json:"limit"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// PageResult holds a page of data along with pagination metadata.
type PageResult[T any] struct {
	Items []T
	Meta  Meta
}

// NewPageResult creates a PageResult with calculated total pages.
// An empty result set yields TotalPages of 0, not 1.
func NewPageResult[T any](items []T, total int, req PageRequest) PageResult[T] {
	totalPages := total / req.Limit
	if total%req.Limit != 0 {
		totalPages++
	}

	if items == nil {
		items = []T{}
	}

	return PageResult[T]{
		Items: items,
		Meta: Meta{
			CurrentPage: req.Page,
			TotalPages:  totalPages,
			TotalCount:  total,
			Limit:       req.Limit,
			HasNextPage: req.Page < totalPages,
			HasPrevPage: req.Page > 1,
		},
	}
}
