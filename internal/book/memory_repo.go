package book

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"bookcatalog/internal/query"
)

// MemoryRepo keeps books in process memory. Search is case-sensitive.
type MemoryRepo struct {
	mu     sync.RWMutex
	books  map[int64]Book
	nextID int64
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{books: make(map[int64]Book)}
}

var memoryComparators = map[string]func(a, b Book) int{
	colID:          func(a, b Book) int { return cmp.Compare(a.ID, b.ID) },
	colTitle:       func(a, b Book) int { return strings.Compare(a.Title, b.Title) },
	colAuthor:      func(a, b Book) int { return strings.Compare(a.Author, b.Author) },
	colGenre:       func(a, b Book) int { return strings.Compare(a.Genre, b.Genre) },
	colPrice:       func(a, b Book) int { return cmp.Compare(a.Price, b.Price) },
	colPublishDate: func(a, b Book) int { return a.PublishDate.Compare(b.PublishDate) },
	colDescription: func(a, b Book) int { return strings.Compare(a.Description, b.Description) },
}

func matches(b Book, f query.Filter) bool {
	if f.HasGenre() && b.Genre != f.Genre {
		return false
	}
	if f.HasSearch() {
		return strings.Contains(b.Title, f.Search) ||
			strings.Contains(b.Author, f.Search) ||
			strings.Contains(b.Description, f.Search)
	}
	return true
}

func comparator(o query.Order) (func(a, b Book) int, error) {
	if o.IsEmpty() {
		return memoryComparators[colID], nil
	}
	cmps := make([]func(a, b Book) int, 0, len(o))
	for _, term := range o {
		c, ok := memoryComparators[term.Column]
		if !ok {
			return nil, fmt.Errorf("memory store cannot sort by %q", term.Column)
		}
		if term.Descending {
			asc := c
			c = func(a, b Book) int { return asc(b, a) }
		}
		cmps = append(cmps, c)
	}
	return func(a, b Book) int {
		for _, c := range cmps {
			if r := c(a, b); r != 0 {
				return r
			}
		}
		return 0
	}, nil
}

func (r *MemoryRepo) List(ctx context.Context, q ListQuery) ([]Book, int, error) {
	compare, err := comparator(q.Order)
	if err != nil {
		return nil, 0, err
	}

	r.mu.RLock()
	matched := make([]Book, 0, len(r.books))
	for _, b := range r.books {
		if matches(b, q.Filter) {
			matched = append(matched, b)
		}
	}
	r.mu.RUnlock()

	// map iteration is random, so settle ties by id before the requested order
	slices.SortFunc(matched, memoryComparators[colID])
	slices.SortStableFunc(matched, compare)

	total := len(matched)
	start := min(q.Page.Skip(), total)
	end := min(start+q.Page.Take(), total)
	return matched[start:end], total, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

func (r *MemoryRepo) Create(ctx context.Context, b *Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	b.ID = r.nextID
	r.books[b.ID] = *b
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return ErrNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *MemoryRepo) Ping(ctx context.Context) error {
	return ctx.Err()
}
