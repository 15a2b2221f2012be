package kv

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, s Store) {
	t.Helper()

	_, ok, err := s.Get("favorites")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("favorites", "[]"))
	require.NoError(t, s.Set("favorites", `[{"id":1}]`))

	v, ok, err := s.Get("favorites")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, v)
}

func TestMemory(t *testing.T) {
	testStore(t, NewMemory())
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "favorites.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path())
	testStore(t, s)
	require.NoError(t, s.Close())

	// Values survive reopening.
	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get("favorites")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, v)
}
