package query

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMapping() Mapping {
	return NewMapping(map[string]MappingValue{
		"Title":  {DestinationFields: []string{"Title"}},
		"Author": {DestinationFields: []string{"Author"}},
		"Age":    {DestinationFields: []string{"PublishDate"}, Revert: true},
		"Byline": {DestinationFields: []string{"Author", "Title"}},
	})
}

func TestMapping_Lookup(t *testing.T) {
	m := testMapping()

	t.Run("case insensitive", func(t *testing.T) {
		for _, name := range []string{"title", "TITLE", "Title", "tItLe"} {
			v, ok := m.Lookup(name)
			require.True(t, ok, name)
			assert.Equal(t, []string{"Title"}, v.DestinationFields)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		_, ok := m.Lookup("isbn")
		assert.False(t, ok)
	})

	assert.Equal(t, 4, m.Len())
}

func TestMapping_ValidOrderBy(t *testing.T) {
	m := testMapping()

	tests := []struct {
		expr string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"title", true},
		{"title desc", true},
		{" Title desc , author", true},
		{"age,byline asc", true},
		{"isbn", false},
		{"title,isbn desc", false},
		{"title,", false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, m.ValidOrderBy(tt.expr))
		})
	}
}

func TestRegistry(t *testing.T) {
	const (
		readShape Tag = "BookRead"
		row       Tag = "BookRow"
	)

	t.Run("lookup registered pair", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(readShape, row, testMapping()))

		m, err := r.Mapping(readShape, row)
		require.NoError(t, err)
		assert.Equal(t, 4, m.Len())
	})

	t.Run("absent pair", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(readShape, row, testMapping()))

		_, err := r.Mapping(row, readShape)
		var cfgErr *ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, row, cfgErr.Source)
		assert.Equal(t, readShape, cfgErr.Target)
	})

	t.Run("duplicate registration is ambiguous", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(readShape, row, testMapping()))

		err := r.Register(readShape, row, testMapping())
		var cfgErr *ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Contains(t, err.Error(), "more than once")
	})

	t.Run("must register panics on duplicate", func(t *testing.T) {
		r := NewRegistry().MustRegister(readShape, row, testMapping())
		assert.Panics(t, func() { r.MustRegister(readShape, row, testMapping()) })
	})

	t.Run("concurrent reads", func(t *testing.T) {
		r := NewRegistry().MustRegister(readShape, row, testMapping())

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				m, err := r.Mapping(readShape, row)
				assert.NoError(t, err)
				assert.True(t, m.ValidOrderBy("title desc"))
			}()
		}
		wg.Wait()
	})
}
