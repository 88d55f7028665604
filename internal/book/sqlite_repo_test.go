package book

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"bookcatalog/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteRepo(t *testing.T) *SQLiteRepo {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewSQLiteRepo(db, 3*time.Second)
}

func TestSQLiteRepo(t *testing.T) {
	repoContract(t, newSQLiteRepo(t))
}

func TestSQLiteRepo_SearchIgnoresASCIICase(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &Book{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", Price: 1, PublishDate: time.Now().UTC(), Description: "d"}))

	_, total, err := repo.List(ctx, ListQuery{Filter: query.NewFilter("", "dune"), Page: query.PageRequest{Number: 1, Size: 10}})
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	// genre equality stays exact
	_, total, err = repo.List(ctx, ListQuery{Filter: query.NewFilter("science fiction", ""), Page: query.PageRequest{Number: 1, Size: 10}})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestOpenSQLite_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "books.db")

	db, err := OpenSQLite(path)
	require.NoError(t, err)
	repo := NewSQLiteRepo(db, time.Second)
	require.NoError(t, repo.Create(context.Background(), &Book{Title: "x", Author: "y", Genre: "z", Price: 1, PublishDate: time.Now().UTC(), Description: "d"}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	_, total, err := NewSQLiteRepo(reopened, time.Second).List(context.Background(), ListQuery{Page: query.PageRequest{Number: 1, Size: 10}})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}
