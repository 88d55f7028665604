package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNegotiate(t *testing.T) {
	offers := []string{ContentTypeJSON, MediaTypeHATEOAS}

	tests := []struct {
		accept string
		want   string
		err    error
	}{
		{"", ContentTypeJSON, nil},
		{"*/*", ContentTypeJSON, nil},
		{"application/json", ContentTypeJSON, nil},
		{"application/vnd.company.hateoas+json", MediaTypeHATEOAS, nil},
		{"Application/VND.Company.HATEOAS+JSON", MediaTypeHATEOAS, nil},
		{"text/html, application/vnd.company.hateoas+json;q=0.9", MediaTypeHATEOAS, nil},
		{"application/json;q=0, application/vnd.company.hateoas+json", MediaTypeHATEOAS, nil},
		{"application/*", ContentTypeJSON, nil},
		{"application/json;q=0.1, application/vnd.company.hateoas+json", MediaTypeHATEOAS, nil},
		{"*/*;q=0.2, application/vnd.company.hateoas+json;q=0.8", MediaTypeHATEOAS, nil},
		{"application/vnd.company.hateoas+json;q=0.5, application/json;q=0.5", MediaTypeHATEOAS, nil},
		{"application/json;q=0.3, text/html", ContentTypeJSON, nil},
		{"text/html", "", ErrNotAcceptable},
		{"@@@", "", ErrMalformedAccept},
		{"application/", "", ErrMalformedAccept},
	}

	for _, tt := range tests {
		t.Run(tt.accept, func(t *testing.T) {
			got, err := Negotiate(tt.accept, offers...)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNegotiateRequest(t *testing.T) {
	cases := map[string]int{
		"@@@":       http.StatusBadRequest,
		"text/html": http.StatusNotAcceptable,
	}
	for accept, status := range cases {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Accept", accept)
		w := httptest.NewRecorder()

		_, ok := NegotiateRequest(w, r, ContentTypeJSON)
		assert.False(t, ok)
		assert.Equal(t, status, w.Code)
		assert.Equal(t, ContentTypeProblem, w.Header().Get("Content-Type"))
	}
}
