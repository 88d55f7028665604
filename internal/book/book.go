package book

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	"bookcatalog/internal/query"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

const (
	DefaultPageSize = 10
	MaxPageSize     = 20
)

// Book represents a book entity. ID is assigned by the store on insert and never
// changes afterwards.
type Book struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"size:50;not null"`
	Author      string    `json:"author" gorm:"size:50;not null"`
	Genre       string    `json:"genre" gorm:"size:50;not null;index"`
	Price       float64   `json:"price" gorm:"not null"`
	PublishDate time.Time `json:"publishDate" gorm:"not null"`
	Description string    `json:"description" gorm:"size:200;not null"`
}

// Params are the resource parameters a client may pass when listing books.
type Params struct {
	Genre       string
	SearchQuery string
	OrderBy     string
	Fields      string
	PageNumber  int
	PageSize    int
}

// ParamsFromValues reads list parameters from a query string. Paging values are
// clamped: page numbers below 1 become 1 and sizes are capped at MaxPageSize.
func ParamsFromValues(v url.Values) Params {
	number, _ := strconv.Atoi(v.Get("pageNumber"))
	size, _ := strconv.Atoi(v.Get("pageSize"))
	page := query.ClampPage(number, size, DefaultPageSize, MaxPageSize)

	return Params{
		Genre:       v.Get("genre"),
		SearchQuery: v.Get("searchQuery"),
		OrderBy:     v.Get("orderBy"),
		Fields:      v.Get("fields"),
		PageNumber:  page.Number,
		PageSize:    page.Size,
	}
}

// PageRequest returns the clamped paging window.
func (p Params) PageRequest() query.PageRequest {
	return query.ClampPage(p.PageNumber, p.PageSize, DefaultPageSize, MaxPageSize)
}

// Values renders the parameters back into a query string, omitting empty ones.
func (p Params) Values() url.Values {
	v := url.Values{}
	if p.Fields != "" {
		v.Set("fields", p.Fields)
	}
	if p.OrderBy != "" {
		v.Set("orderBy", p.OrderBy)
	}
	if p.Genre != "" {
		v.Set("genre", p.Genre)
	}
	if p.SearchQuery != "" {
		v.Set("searchQuery", p.SearchQuery)
	}
	page := p.PageRequest()
	v.Set("pageNumber", strconv.Itoa(page.Number))
	v.Set("pageSize", strconv.Itoa(page.Size))
	return v
}

// ListQuery is what a Repository needs to fetch one page: predicates, a
// storage-native ordering and the window.
type ListQuery struct {
	Filter query.Filter
	Order  query.Order
	Page   query.PageRequest
}
