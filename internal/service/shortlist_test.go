package service

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/store"
)

// memoryBlobs is a BlobStore whose writes can be made to fail
type memoryBlobs struct {
	mu     sync.Mutex
	data   map[string][]byte
	putErr error
	getErr error
	puts   int
}

func newMemoryBlobs() *memoryBlobs {
	return &memoryBlobs{data: map[string][]byte{}}
}

func (m *memoryBlobs) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memoryBlobs) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memoryBlobs) Close() error { return nil }

func ids(titles []domain.Title) []int {
	out := make([]int, len(titles))
	for i, t := range titles {
		out[i] = t.ID
	}
	return out
}

func openTestStore(t *testing.T) (*store.BoltStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "marquee.db")
	s, err := store.Open(path)
	require.NoError(t, err)
	return s, path
}

func TestShortlistToggleAddsAndRemoves(t *testing.T) {
	sl := NewShortlist(newMemoryBlobs(), adapter.NullLogger())

	assert.True(t, sl.Toggle(domain.Title{ID: 42, Name: "Answer"}))
	assert.True(t, sl.IsShortlisted(42))
	assert.Equal(t, 1, sl.Len())

	assert.False(t, sl.Toggle(domain.Title{ID: 42}))
	assert.False(t, sl.IsShortlisted(42))
	assert.Empty(t, sl.Items())
}

func TestShortlistDoubleToggleRestoresOrder(t *testing.T) {
	sl := NewShortlist(nil, adapter.NullLogger())
	for _, id := range []int{1, 2, 3} {
		sl.Toggle(domain.Title{ID: id})
	}

	sl.Toggle(domain.Title{ID: 7})
	sl.Toggle(domain.Title{ID: 7})
	assert.Equal(t, []int{1, 2, 3}, ids(sl.Items()))

	// Removing from the middle keeps the rest in insertion order
	sl.Toggle(domain.Title{ID: 2})
	assert.Equal(t, []int{1, 3}, ids(sl.Items()))
	sl.Toggle(domain.Title{ID: 2})
	assert.Equal(t, []int{1, 3, 2}, ids(sl.Items()))
}

func TestShortlistItemsIsACopy(t *testing.T) {
	sl := NewShortlist(nil, adapter.NullLogger())
	sl.Toggle(domain.Title{ID: 1, Name: "One"})

	items := sl.Items()
	items[0].Name = "changed"
	assert.Equal(t, "One", sl.Items()[0].Name)
}

func TestShortlistPersistsAcrossReopen(t *testing.T) {
	s, path := openTestStore(t)
	sl := NewShortlist(s, adapter.NullLogger())
	sl.Load()
	sl.Toggle(domain.Title{ID: 42, Name: "Answer", ReleaseDate: "1979-10-12"})
	sl.Toggle(domain.Title{ID: 7, Name: "Seven"})
	require.NoError(t, s.Close())

	reopened, err := store.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	restored := NewShortlist(reopened, adapter.NullLogger())
	restored.Load()
	assert.Equal(t, []int{42, 7}, ids(restored.Items()))
	assert.Equal(t, "1979-10-12", restored.Items()[0].ReleaseDate)
	assert.True(t, restored.IsShortlisted(7))
}

func TestShortlistBlobFormat(t *testing.T) {
	blobs := newMemoryBlobs()
	sl := NewShortlist(blobs, adapter.NullLogger())
	sl.Toggle(domain.Title{ID: 42, Name: "Answer"})

	data, ok, err := blobs.Get(ShortlistKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"shortlistedMovies":[{"id":42,"title":"Answer","overview":"","vote_average":0}]}`, string(data))
}

func TestShortlistLoadsMissingBlobAsEmpty(t *testing.T) {
	sl := NewShortlist(newMemoryBlobs(), adapter.NullLogger())
	sl.Load()
	assert.Empty(t, sl.Items())
	assert.NotNil(t, sl.Items())
}

func TestShortlistLoadsMalformedBlobAsEmpty(t *testing.T) {
	blobs := newMemoryBlobs()
	blobs.data[ShortlistKey] = []byte(`{"shortlistedMovies": [`)
	sl := NewShortlist(blobs, adapter.NullLogger())
	sl.Load()
	assert.Empty(t, sl.Items())
	assert.False(t, sl.IsShortlisted(42))
}

func TestShortlistLoadDropsDuplicateIDs(t *testing.T) {
	blobs := newMemoryBlobs()
	blobs.data[ShortlistKey] = []byte(`{"shortlistedMovies":[{"id":1,"title":"a"},{"id":2},{"id":1,"title":"b"}]}`)
	sl := NewShortlist(blobs, adapter.NullLogger())
	sl.Load()
	assert.Equal(t, []int{1, 2}, ids(sl.Items()))
	assert.Equal(t, "a", sl.Items()[0].Name)
}

func TestShortlistLoadSurvivesReadError(t *testing.T) {
	blobs := newMemoryBlobs()
	blobs.getErr = domain.ErrStorage
	sl := NewShortlist(blobs, adapter.NullLogger())
	sl.Load()
	assert.Empty(t, sl.Items())
}

func TestShortlistWriteFailureIsSwallowed(t *testing.T) {
	blobs := newMemoryBlobs()
	blobs.putErr = errors.New("disk full")
	sl := NewShortlist(blobs, adapter.NullLogger())

	assert.True(t, sl.Toggle(domain.Title{ID: 42}))
	assert.True(t, sl.IsShortlisted(42))
	assert.ErrorContains(t, sl.LastPersistErr(), "disk full")

	blobs.mu.Lock()
	blobs.putErr = nil
	blobs.mu.Unlock()
	sl.Toggle(domain.Title{ID: 43})
	assert.NoError(t, sl.LastPersistErr())

	data, ok, _ := blobs.Get(ShortlistKey)
	require.True(t, ok)
	assert.Contains(t, string(data), `"id":42`)
	assert.Contains(t, string(data), `"id":43`)
}

func TestShortlistWritesEveryMutation(t *testing.T) {
	blobs := newMemoryBlobs()
	sl := NewShortlist(blobs, adapter.NullLogger())

	sl.Toggle(domain.Title{ID: 1})
	sl.Toggle(domain.Title{ID: 2})
	sl.Toggle(domain.Title{ID: 1})
	sl.Clear()
	assert.Equal(t, 4, blobs.puts)

	restored := NewShortlist(blobs, adapter.NullLogger())
	restored.Load()
	assert.Empty(t, restored.Items())
}

func TestShortlistFilter(t *testing.T) {
	sl := NewShortlist(nil, adapter.NullLogger())
	sl.Toggle(domain.Title{ID: 1, Name: "The Matrix"})
	sl.Toggle(domain.Title{ID: 2, Name: "Heat"})
	sl.Toggle(domain.Title{ID: 3, Name: "Matrix Reloaded"})

	all := sl.Filter("  ")
	require.Len(t, all, 3)
	assert.Equal(t, 2, all[1].Title.ID)

	matches := sl.Filter("matrix")
	require.Len(t, matches, 2)
	for _, m := range matches {
		assert.Contains(t, m.Title.Name, "Matrix")
	}
}

func TestShortlistConcurrentToggles(t *testing.T) {
	s, _ := openTestStore(t)
	defer s.Close()
	sl := NewShortlist(s, adapter.NullLogger())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			sl.Toggle(domain.Title{ID: id})
		}(i)
	}
	wg.Wait()

	restored := NewShortlist(s, adapter.NullLogger())
	restored.Load()
	assert.Equal(t, 20, restored.Len())
	assert.NoError(t, sl.LastPersistErr())
}
