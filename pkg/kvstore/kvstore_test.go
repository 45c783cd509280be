package kvstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRoundTrip(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)

	_, err = s.Get("cart")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put("cart", []byte(`[]`)))
	v, err := s.Get("cart")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), v)

	require.NoError(t, s.Put("cart", []byte(`[{"productId":"1"}]`)))
	v, err = s.Get("cart")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"productId":"1"}]`), v)

	require.NoError(t, s.Delete("cart"))
	_, err = s.Get("cart")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteDeleteMissingKey(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)

	assert.NoError(t, s.Delete("never-written"))
}

func TestMemoryIsolation(t *testing.T) {
	m := NewMemory()
	orig := []byte(`{"a":1}`)
	require.NoError(t, m.Put("k", orig))

	got, err := m.Get("k")
	require.NoError(t, err)
	got[0] = 'X'

	again, err := m.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), again, "callers must not be able to mutate stored values")
}
