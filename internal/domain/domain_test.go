package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageHasNext(t *testing.T) {
	tests := []struct {
		name string
		page Page
		want bool
	}{
		{"first of three", Page{Page: 1, NextPage: 2, TotalPages: 3}, true},
		{"last page", Page{Page: 3, NextPage: 4, TotalPages: 3}, false},
		{"empty page", EmptyPage(), false},
		{"no next offered", Page{Page: 1, TotalPages: 3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.page.HasNext())
		})
	}
}

func TestListKindNamespace(t *testing.T) {
	for _, k := range MovieListKinds() {
		assert.Equal(t, NamespaceMovie, k.Namespace(), k)
		assert.True(t, k.Valid())
	}
	for _, k := range TVListKinds() {
		assert.Equal(t, NamespaceTV, k.Namespace(), k)
		assert.True(t, k.Valid())
	}
	assert.False(t, ListKind("movie/latest").Valid())
	assert.Equal(t, TVListKinds(), ListKindsFor(NamespaceTV))
}

func TestTitleYearAndRuntime(t *testing.T) {
	assert.Equal(t, 1999, Title{ReleaseDate: "1999-03-31"}.Year())
	assert.Equal(t, 0, Title{}.Year())
	assert.Equal(t, "2h 16m", Title{RuntimeMinutes: 136}.FormattedRuntime())
	assert.Equal(t, "45m", Title{RuntimeMinutes: 45}.FormattedRuntime())
}

func TestFeedKeyString(t *testing.T) {
	assert.Equal(t, "movie/popular", FeedKey{Kind: ListMoviePopular}.String())
	assert.Equal(t, "search/tv?lost", FeedKey{Kind: ListTVPopular, Query: "lost"}.String())
	assert.True(t, FeedKey{Query: "x"}.IsSearch())
}

func TestVideoIsTrailer(t *testing.T) {
	assert.True(t, Video{Site: "YouTube", Type: "Trailer"}.IsTrailer())
	assert.False(t, Video{Site: "YouTube", Type: "Featurette"}.IsTrailer())
}

func TestVideoURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=abc", Video{Site: "YouTube", Key: "abc"}.URL())
	assert.Equal(t, "", Video{Site: "Vimeo", Key: "abc"}.URL())
}
