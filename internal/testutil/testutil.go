// Package testutil holds request and response helpers shared by handler tests.
package testutil

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NewRequest creates a new HTTP request for testing. Non-nil bodies are sent as
// JSON; a string body is sent verbatim.
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	switch b := body.(type) {
	case nil:
	case string:
		bodyBytes = []byte(b)
	default:
		bodyBytes, _ = json.Marshal(b)
	}

	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// NewRequestWithAccept creates a request asking for the given media type.
func NewRequestWithAccept(method, path string, body interface{}, accept string) *http.Request {
	r := NewRequest(method, path, body)
	if accept != "" {
		r.Header.Set("Accept", accept)
	}
	return r
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Raw    []byte
	// Body is the decoded JSON document: a map, a slice or nil.
	Body interface{}
}

// Object returns the body as a JSON object, or nil.
func (r RecordResponse) Object() map[string]interface{} {
	m, _ := r.Body.(map[string]interface{})
	return m
}

// Array returns the body as a JSON array, or nil.
func (r RecordResponse) Array() []interface{} {
	a, _ := r.Body.([]interface{})
	return a
}

// HeaderJSON decodes a JSON encoded response header.
func (r RecordResponse) HeaderJSON(name string) map[string]interface{} {
	var m map[string]interface{}
	_ = json.Unmarshal([]byte(r.Header.Get(name)), &m)
	return m
}

// RecordHTTPResponse records the HTTP response
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var body interface{}
	if len(bodyBytes) > 0 {
		_ = json.Unmarshal(bodyBytes, &body)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Raw:    bodyBytes,
		Body:   body,
	}
}

// AssertResponseCode checks if the response code matches expected
func AssertResponseCode(t interface {
	Errorf(format string, args ...any)
}, got, want int) {
	if got != want {
		t.Errorf("got status code %d, want %d", got, want)
	}
}

// AssertResponseBody checks if the response body contains expected field
func AssertResponseBody(t interface {
	Errorf(format string, args ...any)
}, body map[string]interface{}, key string, expectedValue interface{}) {
	value, ok := body[key]
	if !ok {
		t.Errorf("response body missing key %q", key)
		return
	}
	if value != expectedValue {
		t.Errorf("got %v for key %q, want %v", value, key, expectedValue)
	}
}

// Keys returns the top-level keys of the JSON object raw in document order.
func Keys(raw []byte) []string {
	iter := jsoniter.ParseBytes(json, raw)
	var keys []string
	iter.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
		keys = append(keys, field)
		it.Skip()
		return true
	})
	return keys
}
