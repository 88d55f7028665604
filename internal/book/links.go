package book

import (
	"net/http"
	"net/url"
	"strconv"

	"bookcatalog/internal/query"
)

// BooksPath is the collection route, relative to the server root.
const BooksPath = "/api/v1/books"

// ResourceURIType selects which page a collection URI points at.
type ResourceURIType int

const (
	CurrentPage ResourceURIType = iota
	PreviousPage
	NextPage
)

// Links renders the hypermedia links of book resources.
type Links struct {
	b query.LinkBuilder
}

func NewLinks(baseURL string) Links {
	return Links{b: query.NewLinkBuilder(baseURL)}
}

// ResourceURI returns the collection URI for p, shifted one page back or forward
// for PreviousPage and NextPage. Every other parameter is kept.
func (l Links) ResourceURI(p Params, kind ResourceURIType) string {
	page := p.PageRequest()
	switch kind {
	case PreviousPage:
		page.Number--
	case NextPage:
		page.Number++
	}
	p.PageNumber, p.PageSize = page.Number, page.Size
	return l.b.URL(BooksPath, p.Values())
}

// CollectionLinks returns self plus nextPage and previousPage when they exist.
func (l Links) CollectionLinks(p Params, hasNext, hasPrevious bool) []query.Link {
	links := []query.Link{
		{Href: l.ResourceURI(p, CurrentPage), Rel: "self", Method: http.MethodGet},
	}
	if hasNext {
		links = append(links, query.Link{Href: l.ResourceURI(p, NextPage), Rel: "nextPage", Method: http.MethodGet})
	}
	if hasPrevious {
		links = append(links, query.Link{Href: l.ResourceURI(p, PreviousPage), Rel: "previousPage", Method: http.MethodGet})
	}
	return links
}

// ItemURL is the canonical URI of one book.
func (l Links) ItemURL(id int64) string {
	return l.b.URL(itemPath(id), nil)
}

// ItemLinks returns the links of one book. The self link carries fields when the
// representation was shaped.
func (l Links) ItemLinks(id int64, fields string) []query.Link {
	var params url.Values
	if fields != "" {
		params = url.Values{"fields": {fields}}
	}
	return []query.Link{
		l.b.Link("self", http.MethodGet, itemPath(id), params),
		l.b.Link("delete_book", http.MethodDelete, itemPath(id), nil),
	}
}

func itemPath(id int64) string {
	return BooksPath + "/" + strconv.FormatInt(id, 10)
}
