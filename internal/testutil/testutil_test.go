package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRequest(t *testing.T) {
	r := NewRequest(http.MethodPost, "/x", map[string]string{"a": "b"})
	assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

	r = NewRequestWithAccept(http.MethodGet, "/x", nil, "application/vnd.company.hateoas+json")
	assert.Equal(t, "application/vnd.company.hateoas+json", r.Header.Get("Accept"))
	assert.Empty(t, r.Header.Get("Content-Type"))
}

func TestRecordHTTPResponse(t *testing.T) {
	w := httptest.NewRecorder()
	w.Header().Set("X-Meta", `{"n":1}`)
	w.WriteHeader(http.StatusTeapot)
	_, _ = w.Write([]byte(`{"z":1,"a":[1,2]}`))

	res := RecordHTTPResponse(w)
	AssertResponseCode(t, res.Code, http.StatusTeapot)
	AssertResponseBody(t, res.Object(), "z", float64(1))
	assert.Nil(t, res.Array())
	assert.Equal(t, float64(1), res.HeaderJSON("X-Meta")["n"])
	assert.Equal(t, []string{"z", "a"}, Keys(res.Raw))
}
