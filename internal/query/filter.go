package query

import "strings"

// Filter carries the optional equality filter and substring search applied before
// sorting and paging. Empty fields mean no restriction.
type Filter struct {
	Genre  string
	Search string
}

// NewFilter trims both inputs; blank values drop the predicate.
func NewFilter(genre, search string) Filter {
	return Filter{
		Genre:  strings.TrimSpace(genre),
		Search: strings.TrimSpace(search),
	}
}

func (f Filter) HasGenre() bool { return f.Genre != "" }
func (f Filter) HasSearch() bool { return f.Search != "" }
