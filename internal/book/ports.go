package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=book

// Repository defines the contract for book data storage. List returns one page of
// matching books together with the total number of matches.
type Repository interface {
	List(ctx context.Context, q ListQuery) ([]Book, int, error)
	GetByID(ctx context.Context, id int64) (Book, error)
	Create(ctx context.Context, book *Book) error
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}
