package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGetRoundTripAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "marquee.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Put("movieState", []byte(`{"a":1}`)))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })

	data, ok, err := reopened.Get("movieState")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(data))
}

func TestGetMissingKey(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "marquee.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	data, ok, err := s.Get("nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestPutReplacesWholesale(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "marquee.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.Put("k", []byte("first value")))
	require.NoError(t, s.Put("k", []byte("2nd")))

	data, ok, err := s.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2nd", string(data))
}

func TestReturnedBytesAreCopies(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)

	in := []byte("abc")
	require.NoError(t, s.Put("k", in))
	in[0] = 'x'

	out, _, _ := s.Get("k")
	out[1] = 'y'

	again, ok, err := s.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "abc", string(again))
}

func TestMemoryOnlyStore(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)

	require.NoError(t, s.Put("k", []byte("v")))
	data, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", string(data))

	require.NoError(t, s.Delete("k"))
	_, ok, _ = s.Get("k")
	assert.False(t, ok)
	assert.NoError(t, s.Close())
}

func TestDeletePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marquee.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Put("k", []byte("v")))
	require.NoError(t, s.Delete("k"))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })
	_, ok, err := reopened.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}
