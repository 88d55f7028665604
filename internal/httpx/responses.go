package httpx

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"bookcatalog/internal/logger"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	ContentTypeJSON    = "application/json"
	ContentTypeProblem = "application/problem+json"
)

// ErrorDetail describes a problem with one input field.
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ProblemDetails is the error body of every failed request.
type ProblemDetails struct {
	Type      string        `json:"type"`
	Title     string        `json:"title"`
	Status    int           `json:"status"`
	Detail    string        `json:"detail,omitempty"`
	Instance  string        `json:"instance,omitempty"`
	RequestID string        `json:"requestId,omitempty"`
	Errors    []ErrorDetail `json:"errors,omitempty"`
}

// JSON writes v with the given status. contentType defaults to application/json.
func JSON(w http.ResponseWriter, r *http.Request, status int, contentType string, v any) {
	if contentType == "" {
		contentType = ContentTypeJSON
	}
	body, err := json.Marshal(v)
	if err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Msg("encode response")
		Problem(w, r, http.StatusInternalServerError, "An internal error occurred", nil)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Problem writes a problem-details response.
func Problem(w http.ResponseWriter, r *http.Request, status int, detail string, details []ErrorDetail) {
	p := ProblemDetails{
		Type:      "about:blank",
		Title:     http.StatusText(status),
		Status:    status,
		Detail:    detail,
		Instance:  r.URL.Path,
		RequestID: RequestIDFrom(r),
		Errors:    details,
	}
	body, _ := json.Marshal(p)

	w.Header().Set("Content-Type", ContentTypeProblem)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// InternalError logs err and writes a generic 500 problem.
func InternalError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContext(r.Context()).Error().Err(err).
		Str("request_id", RequestIDFrom(r)).
		Str("path", r.URL.Path).
		Msg("request failed")
	Problem(w, r, http.StatusInternalServerError, "An internal error occurred", nil)
}

// NoContent writes a bodiless 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// NotFound writes a bodiless 404.
func NotFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
}

// SetJSONHeader stores v, JSON encoded, in the named response header.
func SetJSONHeader(w http.ResponseWriter, name string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s header: %w", name, err)
	}
	w.Header().Set(name, string(raw))
	return nil
}

// ErrEmptyBody is returned by DecodeJSON when the request has no body.
var ErrEmptyBody = errors.New("request body is empty")

// DecodeJSON reads one JSON document from the request body into v. Unknown
// fields are rejected.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	return nil
}
