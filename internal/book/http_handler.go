package book

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"bookcatalog/internal/httpx"
	"bookcatalog/internal/query"
)

// collectionMethods is the Allow header of the books collection.
const collectionMethods = "GET, HEAD, POST, OPTIONS"

type HTTPHandler struct {
	service *Service
	baseURL string
}

// NewHTTPHandler creates the books handler. An empty baseURL derives link hosts
// from each request.
func NewHTTPHandler(service *Service, baseURL string) *HTTPHandler {
	return &HTTPHandler{service: service, baseURL: baseURL}
}

// Register mounts the book routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET "+BooksPath, h.List)
	mux.HandleFunc("OPTIONS "+BooksPath, h.Options)
	mux.HandleFunc("POST "+BooksPath, h.Create)
	mux.HandleFunc("GET "+BooksPath+"/{id}", h.Get)
	mux.HandleFunc("DELETE "+BooksPath+"/{id}", h.Delete)
}

type collectionEnvelope struct {
	Value []query.Record `json:"value"`
	Links []query.Link   `json:"links"`
}

func (h *HTTPHandler) links(r *http.Request) Links {
	return NewLinks(httpx.BaseURL(r, h.baseURL))
}

// List handles GET and HEAD /api/v1/books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	mediaType, ok := httpx.NegotiateRequest(w, r, httpx.ContentTypeJSON, httpx.MediaTypeHATEOAS)
	if !ok {
		return
	}

	params := ParamsFromValues(r.URL.Query())
	projector, err := ReadShape.Resolve(params.Fields)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	page, err := h.service.List(r.Context(), params)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	links := h.links(r)
	var prev, next string
	if page.HasPrevious() {
		prev = links.ResourceURI(params, PreviousPage)
	}
	if page.HasNext() {
		next = links.ResourceURI(params, NextPage)
	}
	if err := httpx.SetJSONHeader(w, "X-Pagination", page.Metadata(prev, next)); err != nil {
		httpx.InternalError(w, r, err)
		return
	}

	records := projector.ApplyAll(page.Items)
	if mediaType != httpx.MediaTypeHATEOAS {
		httpx.JSON(w, r, http.StatusOK, mediaType, records)
		return
	}

	for i, b := range page.Items {
		records[i] = records[i].WithLinks(links.ItemLinks(b.ID, params.Fields))
	}
	httpx.JSON(w, r, http.StatusOK, mediaType, collectionEnvelope{
		Value: records,
		Links: links.CollectionLinks(params, page.HasNext(), page.HasPrevious()),
	})
}

// Options handles OPTIONS /api/v1/books
func (h *HTTPHandler) Options(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", collectionMethods)
	w.WriteHeader(http.StatusOK)
}

// Get handles GET /api/v1/books/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	mediaType, ok := httpx.NegotiateRequest(w, r, httpx.ContentTypeJSON, httpx.MediaTypeHATEOAS)
	if !ok {
		return
	}

	id, ok := pathID(r)
	if !ok {
		httpx.NotFound(w)
		return
	}

	fields := r.URL.Query().Get("fields")
	projector, err := ReadShape.Resolve(fields)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	rec := projector.Apply(b)
	if mediaType == httpx.MediaTypeHATEOAS {
		rec = rec.WithLinks(h.links(r).ItemLinks(b.ID, fields))
	}
	httpx.JSON(w, r, http.StatusOK, mediaType, rec)
}

// Create handles POST /api/v1/books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	mediaType, ok := httpx.NegotiateRequest(w, r, httpx.ContentTypeJSON, httpx.MediaTypeHATEOAS)
	if !ok {
		return
	}

	var in CreateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httpx.Problem(w, r, http.StatusRequestEntityTooLarge, "Request body too large", nil)
			return
		}
		httpx.Problem(w, r, http.StatusBadRequest, "Request body is not a valid book: "+err.Error(), nil)
		return
	}

	b, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	links := h.links(r)
	rec, _ := ReadShape.Project(b, "")
	if mediaType == httpx.MediaTypeHATEOAS {
		rec = rec.WithLinks(links.ItemLinks(b.ID, ""))
	}
	w.Header().Set("Location", links.ItemURL(b.ID))
	httpx.JSON(w, r, http.StatusCreated, mediaType, rec)
}

// Delete handles DELETE /api/v1/books/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.NotFound(w)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.NoContent(w)
}

func pathID(r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	if raw == "" || strings.Contains(raw, "/") {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		fieldErr    *query.InvalidFieldError
		notFoundErr *query.FieldNotFoundError
		validErr    *ValidationError
	)

	switch {
	case errors.Is(err, ErrNotFound):
		httpx.NotFound(w)
	case errors.As(err, &fieldErr), errors.As(err, &notFoundErr):
		httpx.Problem(w, r, http.StatusBadRequest, err.Error(), nil)
	case errors.As(err, &validErr):
		details := make([]httpx.ErrorDetail, 0, len(validErr.Errors))
		for _, fe := range validErr.Errors {
			details = append(details, httpx.ErrorDetail{Field: fe.Field, Message: fe.Message})
		}
		httpx.Problem(w, r, http.StatusBadRequest, "One or more validation errors occurred", details)
	default:
		httpx.InternalError(w, r, err)
	}
}
