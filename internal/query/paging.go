package query

import "math"

// PageRequest is a 1-based page window.
type PageRequest struct {
	Number int
	Size   int
}

// ClampPage normalizes client paging input: numbers below 1 become 1, sizes at or
// below zero take defaultSize, and sizes above maxSize are capped. Numbers are
// capped so that Skip+Take never overflows int.
func ClampPage(number, size, defaultSize, maxSize int) PageRequest {
	if number < 1 {
		number = 1
	}
	if size <= 0 {
		size = defaultSize
	}
	if size > maxSize {
		size = maxSize
	}
	if limit := math.MaxInt / size; number > limit {
		number = limit
	}
	return PageRequest{Number: number, Size: size}
}

// Skip is the number of rows before the window.
func (p PageRequest) Skip() int {
	return (p.Number - 1) * p.Size
}

// Take is the window length.
func (p PageRequest) Take() int {
	return p.Size
}

// Page is one window of a filtered, sorted result set.
type Page[T any] struct {
	Items       []T
	TotalCount  int
	PageSize    int
	CurrentPage int
	TotalPages  int
}

// NewPage wraps items fetched for req. totalCount is the size of the whole
// filtered set, not of items.
func NewPage[T any](items []T, totalCount int, req PageRequest) Page[T] {
	totalPages := 0
	if totalCount > 0 && req.Size > 0 {
		totalPages = (totalCount + req.Size - 1) / req.Size
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:       items,
		TotalCount:  totalCount,
		PageSize:    req.Size,
		CurrentPage: req.Number,
		TotalPages:  totalPages,
	}
}

func (p Page[T]) HasPrevious() bool {
	return p.CurrentPage > 1
}

func (p Page[T]) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// Metadata is the X-Pagination header payload. Links are null when absent.
type Metadata struct {
	TotalCount       int     `json:"totalCount"`
	PageSize         int     `json:"pageSize"`
	CurrentPage      int     `json:"currentPage"`
	TotalPages       int     `json:"totalPages"`
	PreviousPageLink *string `json:"previousPageLink"`
	NextPageLink     *string `json:"nextPageLink"`
}

// Metadata builds the header payload; empty links are omitted as null.
func (p Page[T]) Metadata(previousLink, nextLink string) Metadata {
	m := Metadata{
		TotalCount:  p.TotalCount,
		PageSize:    p.PageSize,
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
	}
	if previousLink != "" {
		m.PreviousPageLink = &previousLink
	}
	if nextLink != "" {
		m.NextPageLink = &nextLink
	}
	return m
}
