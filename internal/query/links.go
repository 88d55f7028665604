package query

import (
	"net/url"
	"strings"
)

// Link is a hypermedia affordance attached to a response.
type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

// LinkBuilder renders absolute hrefs below a base URL such as
// "https://api.example.com". It holds no state beyond the base.
type LinkBuilder struct {
	base string
}

func NewLinkBuilder(baseURL string) LinkBuilder {
	return LinkBuilder{base: strings.TrimRight(baseURL, "/")}
}

// URL joins path to the base and appends params, which url.Values encodes in
// key order.
func (b LinkBuilder) URL(path string, params url.Values) string {
	href := b.base + "/" + strings.TrimLeft(path, "/")
	if encoded := params.Encode(); encoded != "" {
		href += "?" + encoded
	}
	return href
}

// Link builds a Link for path.
func (b LinkBuilder) Link(rel, method, path string, params url.Values) Link {
	return Link{Href: b.URL(path, params), Rel: rel, Method: method}
}
