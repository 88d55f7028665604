// Package root serves the API entry document and the health probes.
package root

import (
	"context"
	"net/http"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/logger"
	"bookcatalog/internal/query"
)

const Path = "/api/v1"

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HTTPHandler struct {
	baseURL      string
	store        Pinger
	readyTimeout time.Duration
}

func NewHTTPHandler(baseURL string, store Pinger) *HTTPHandler {
	return &HTTPHandler{baseURL: baseURL, store: store, readyTimeout: 500 * time.Millisecond}
}

func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET "+Path, h.Root)
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
}

// Root handles GET /api/v1
func (h *HTTPHandler) Root(w http.ResponseWriter, r *http.Request) {
	mediaType, ok := httpx.NegotiateRequest(w, r, httpx.ContentTypeJSON, httpx.MediaTypeHATEOAS)
	if !ok {
		return
	}

	b := query.NewLinkBuilder(httpx.BaseURL(r, h.baseURL))
	links := []query.Link{
		b.Link("self", http.MethodGet, Path, nil),
		b.Link("books", http.MethodGet, book.BooksPath, nil),
		b.Link("create_book", http.MethodPost, book.BooksPath, nil),
	}
	httpx.JSON(w, r, http.StatusOK, mediaType, links)
}

func (h *HTTPHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *HTTPHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.readyTimeout)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		logger.FromContext(r.Context()).Warn().Err(err).Msg("store not ready")
		http.Error(w, "store not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
