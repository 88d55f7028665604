package book

import (
	"context"
	"net/url"
	"testing"
	"time"

	"bookcatalog/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureBooks() []Book {
	date := func(y int) time.Time { return time.Date(y, 1, 15, 0, 0, 0, 0, time.UTC) }
	return []Book{
		{Title: "The Fellowship of the Ring", Author: "J. R. R. Tolkien", Genre: "Fantasy", Price: 15.99, PublishDate: date(1954), Description: "The ring sets out."},
		{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", Price: 9.99, PublishDate: date(1965), Description: "Spice and sand."},
		{Title: "A Wizard of Earthsea", Author: "Ursula K. Le Guin", Genre: "Fantasy", Price: 8.5, PublishDate: date(1968), Description: "A young wizard at school."},
		{Title: "Neuromancer", Author: "William Gibson", Genre: "Science Fiction", Price: 11, PublishDate: date(1984), Description: "Cyberspace heist."},
		{Title: "The Two Towers", Author: "J. R. R. Tolkien", Genre: "Fantasy", Price: 15.99, PublishDate: date(1954), Description: "The Ring is carried on."},
	}
}

func titles(books []Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func orderBy(t *testing.T, expr string) query.Order {
	t.Helper()
	m, err := Mappings.Mapping(ReadTag, RowTag)
	require.NoError(t, err)
	o, err := query.BuildOrder(expr, m)
	require.NoError(t, err)
	return o
}

// repoContract exercises the behavior every Repository implementation shares.
// repo must start empty.
func repoContract(t *testing.T, repo Repository) {
	ctx := context.Background()
	firstPage := query.PageRequest{Number: 1, Size: 10}

	fixtures := fixtureBooks()
	ids := make(map[int64]bool)
	for i := range fixtures {
		require.NoError(t, repo.Create(ctx, &fixtures[i]))
		require.NotZero(t, fixtures[i].ID)
		ids[fixtures[i].ID] = true
	}
	require.Len(t, ids, len(fixtures), "ids are unique")

	t.Run("list all in id order", func(t *testing.T) {
		books, total, err := repo.List(ctx, ListQuery{Page: firstPage})
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		assert.Equal(t, titles(fixtures), titles(books))
	})

	t.Run("genre filter", func(t *testing.T) {
		books, total, err := repo.List(ctx, ListQuery{Filter: query.NewFilter("Fantasy", ""), Page: firstPage})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		for _, b := range books {
			assert.Equal(t, "Fantasy", b.Genre)
		}
	})

	t.Run("search across title author and description", func(t *testing.T) {
		_, total, err := repo.List(ctx, ListQuery{Filter: query.NewFilter("", "Ring"), Page: firstPage})
		require.NoError(t, err)
		assert.Equal(t, 2, total)

		books, _, err := repo.List(ctx, ListQuery{Filter: query.NewFilter("", "Gibson"), Page: firstPage})
		require.NoError(t, err)
		assert.Equal(t, []string{"Neuromancer"}, titles(books))

		books, _, err = repo.List(ctx, ListQuery{Filter: query.NewFilter("", "Spice"), Page: firstPage})
		require.NoError(t, err)
		assert.Equal(t, []string{"Dune"}, titles(books))
	})

	t.Run("genre and search conjoin", func(t *testing.T) {
		books, total, err := repo.List(ctx, ListQuery{Filter: query.NewFilter("Fantasy", "wizard"), Page: firstPage})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, []string{"A Wizard of Earthsea"}, titles(books))
	})

	t.Run("search wildcards match literally", func(t *testing.T) {
		_, total, err := repo.List(ctx, ListQuery{Filter: query.NewFilter("", "%"), Page: firstPage})
		require.NoError(t, err)
		assert.Equal(t, 0, total)
	})

	t.Run("order", func(t *testing.T) {
		books, _, err := repo.List(ctx, ListQuery{Order: orderBy(t, "title desc"), Page: firstPage})
		require.NoError(t, err)
		assert.Equal(t, []string{"The Two Towers", "The Fellowship of the Ring", "Neuromancer", "Dune", "A Wizard of Earthsea"}, titles(books))

		books, _, err = repo.List(ctx, ListQuery{Order: orderBy(t, "age, title"), Page: firstPage})
		require.NoError(t, err)
		assert.Equal(t, []string{"Neuromancer", "A Wizard of Earthsea", "Dune", "The Fellowship of the Ring", "The Two Towers"}, titles(books))
	})

	t.Run("paging", func(t *testing.T) {
		books, total, err := repo.List(ctx, ListQuery{Order: orderBy(t, "title"), Page: query.PageRequest{Number: 2, Size: 2}})
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		assert.Equal(t, []string{"Neuromancer", "The Fellowship of the Ring"}, titles(books))

		books, total, err = repo.List(ctx, ListQuery{Page: query.PageRequest{Number: 9, Size: 2}})
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		assert.Empty(t, books)

		far := ParamsFromValues(url.Values{"pageNumber": {"922337203685477580"}, "pageSize": {"20"}}).PageRequest()
		books, total, err = repo.List(ctx, ListQuery{Page: far})
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		assert.Empty(t, books)
	})

	t.Run("get", func(t *testing.T) {
		want := fixtures[1]
		got, err := repo.GetByID(ctx, want.ID)
		require.NoError(t, err)
		assert.Equal(t, want.Title, got.Title)
		assert.Equal(t, want.Price, got.Price)
		assert.True(t, want.PublishDate.Equal(got.PublishDate))

		_, err = repo.GetByID(ctx, 999999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		id := fixtures[3].ID
		require.NoError(t, repo.Delete(ctx, id))

		_, err := repo.GetByID(ctx, id)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, id), ErrNotFound)

		_, total, err := repo.List(ctx, ListQuery{Page: firstPage})
		require.NoError(t, err)
		assert.Equal(t, 4, total)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, repo.Ping(ctx))
	})
}
