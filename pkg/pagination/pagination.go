package pagination

import (
	"math"
	"net/http"
	"strconv"
)

// MaxPerPage caps the page size a caller may request.
const MaxPerPage = 100

// Params holds 1-based pagination parameters extracted from query strings.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Offset  int `json:"-"`
}

// NewParams normalizes page and perPage. Non-positive values fall back to
// page 1 and defaultPerPage. The offset saturates at math.MaxInt instead of
// overflowing for absurd page numbers.
func NewParams(page, perPage, defaultPerPage int) Params {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > MaxPerPage {
		perPage = defaultPerPage
	}
	offset := math.MaxInt
	if perPage > 0 && page-1 <= math.MaxInt/perPage {
		offset = (page - 1) * perPage
	}
	return Params{Page: page, PerPage: perPage, Offset: offset}
}

// FromRequest extracts pagination parameters from the page and limit query
// parameters, the names the gateway uses.
func FromRequest(r *http.Request, defaultPerPage int) Params {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("limit"))
	return NewParams(page, perPage, defaultPerPage)
}

// Result wraps a paginated response.
type Result[T any] struct {
	Data       []T  `json:"data"`
	TotalCount int  `json:"total_count"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewResult creates a paginated result.
func NewResult[T any](data []T, totalCount int, params Params) Result[T] {
	totalPages := 0
	if params.PerPage > 0 {
		totalPages = totalCount / params.PerPage
		if totalCount%params.PerPage > 0 {
			totalPages++
		}
	}

	if data == nil {
		data = []T{}
	}

	return Result[T]{
		Data:       data,
		TotalCount: totalCount,
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}

// Slice returns the page of items selected by params. A page past the end is
// empty. The returned slice is a copy.
func Slice[T any](items []T, params Params) Result[T] {
	start := params.Offset
	if start < 0 || start > len(items) {
		start = len(items)
	}
	end := len(items)
	if params.PerPage >= 0 && params.PerPage < end-start {
		end = start + params.PerPage
	}

	page := make([]T, end-start)
	copy(page, items[start:end])
	return NewResult(page, len(items), params)
}
