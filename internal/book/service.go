package book

import (
	"context"
	"fmt"

	"bookcatalog/internal/query"
)

// Service provides book-related business logic.
type Service struct {
	repo    Repository
	mapping query.Mapping
}

// NewService creates a new book service. It fails when the registry has no
// mapping from the book read shape to its storage row.
func NewService(repo Repository, mappings *query.Registry) (*Service, error) {
	m, err := mappings.Mapping(ReadTag, RowTag)
	if err != nil {
		return nil, err
	}
	return &Service{repo: repo, mapping: m}, nil
}

// List returns one page of books. An orderBy naming an unmapped field fails with
// *query.InvalidFieldError before the store is queried.
func (s *Service) List(ctx context.Context, p Params) (query.Page[Book], error) {
	order, err := query.BuildOrder(p.OrderBy, s.mapping)
	if err != nil {
		return query.Page[Book]{}, err
	}

	req := p.PageRequest()
	books, total, err := s.repo.List(ctx, ListQuery{
		Filter: query.NewFilter(p.Genre, p.SearchQuery),
		Order:  order,
		Page:   req,
	})
	if err != nil {
		return query.Page[Book]{}, fmt.Errorf("list books: %w", err)
	}
	return query.NewPage(books, total, req), nil
}

// Get returns a book by its ID.
func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the input and stores a new book.
func (s *Service) Create(ctx context.Context, in CreateInput) (Book, error) {
	if err := in.Validate(); err != nil {
		return Book{}, err
	}

	b := in.Book()
	if err := s.repo.Create(ctx, &b); err != nil {
		return Book{}, fmt.Errorf("create book: %w", err)
	}
	return b, nil
}

// Delete removes a book. Unknown IDs yield ErrNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Ping reports whether the backing store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
