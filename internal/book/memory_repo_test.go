package book

import (
	"context"
	"sync"
	"testing"

	"bookcatalog/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepo(t *testing.T) {
	repoContract(t, NewMemoryRepo())
}

func TestMemoryRepo_SearchIsCaseSensitive(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &Book{Title: "Dune", Author: "Frank Herbert"}))

	_, total, err := repo.List(ctx, ListQuery{Filter: query.NewFilter("", "dune"), Page: query.PageRequest{Number: 1, Size: 10}})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestMemoryRepo_UnknownColumn(t *testing.T) {
	_, _, err := NewMemoryRepo().List(context.Background(), ListQuery{
		Order: query.Order{{Column: "isbn"}},
		Page:  query.PageRequest{Number: 1, Size: 10},
	})
	assert.Error(t, err)
}

func TestMemoryRepo_ConcurrentCreate(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.Create(ctx, &Book{Title: "t"})
		}()
	}
	wg.Wait()

	_, total, err := repo.List(ctx, ListQuery{Page: query.PageRequest{Number: 1, Size: 1}})
	require.NoError(t, err)
	assert.Equal(t, 50, total)
}
