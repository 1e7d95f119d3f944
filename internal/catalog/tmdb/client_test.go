package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-token", "", WithRateLimit(0, 0))
}

func TestListSendsAuthAndQuery(t *testing.T) {
	var gotPath, gotAuth, gotLang, gotPage string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotLang = r.URL.Query().Get("language")
		gotPage = r.URL.Query().Get("page")
		w.Write([]byte(`{"page":2,"total_pages":7,"total_results":140,"results":[
			{"id":1,"title":"Alpha","poster_path":"/a.jpg","overview":"o","vote_average":7.5,"release_date":"2021-03-04"},
			{"id":2,"title":"Beta","poster_path":null,"overview":"","vote_average":6}
		]}`))
	})

	page, err := c.List(context.Background(), domain.ListMoviePopular, 2)
	require.NoError(t, err)

	assert.Equal(t, "/movie/popular", gotPath)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "en-US", gotLang)
	assert.Equal(t, "2", gotPage)

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.NextPage)
	assert.Equal(t, 7, page.TotalPages)
	assert.True(t, page.HasNext())
	require.Len(t, page.Results, 2)
	assert.Equal(t, "Alpha", page.Results[0].Name)
	assert.Equal(t, domain.NamespaceMovie, page.Results[0].Namespace)
	assert.Equal(t, 2021, page.Results[0].Year())
	assert.Equal(t, "", page.Results[1].PosterPath)
}

func TestListRejectsUnknownKind(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	})
	_, err := c.List(context.Background(), domain.ListKind("movie/latest"), 1)
	require.ErrorIs(t, err, domain.ErrInvalidListKind)
}

func TestSearchUsesNamespaceEndpoint(t *testing.T) {
	var gotPath, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		w.Write([]byte(`{"page":1,"total_pages":1,"results":[{"id":9,"name":"Severance","first_air_date":"2022-02-18"}]}`))
	})

	page, err := c.Search(context.Background(), domain.NamespaceTV, "sev & co", 1)
	require.NoError(t, err)
	assert.Equal(t, "/search/tv", gotPath)
	assert.Equal(t, "sev & co", gotQuery)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Severance", page.Results[0].Name)
	assert.Equal(t, "2022-02-18", page.Results[0].ReleaseDate)
	assert.False(t, page.HasNext())
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, `{}`, domain.ErrUnauthorized},
		{"not found", http.StatusNotFound, `{"status_code":34}`, domain.ErrNotFound},
		{"malformed", http.StatusOK, `{"id":`, domain.ErrMalformed},
		{"missing id", http.StatusOK, `{"success":false}`, domain.ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			_, err := c.Details(context.Background(), domain.NamespaceMovie, 1)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestServerErrorIsReported(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := c.List(context.Background(), domain.ListTVPopular, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewClient(srv.URL, "t", "", WithRateLimit(0, 0))

	_, err := c.List(context.Background(), domain.ListMoviePopular, 1)
	require.ErrorIs(t, err, domain.ErrUnreachable)
}

func TestDetailsMapsTVFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tv/42", r.URL.Path)
		w.Write([]byte(`{"id":42,"name":"Show","tagline":"tag","episode_run_time":[48,52],
			"first_air_date":"2019-01-01","genres":[{"id":18,"name":"Drama"}]}`))
	})

	title, err := c.Details(context.Background(), domain.NamespaceTV, 42)
	require.NoError(t, err)
	assert.Equal(t, "Show", title.Name)
	assert.Equal(t, 48, title.RuntimeMinutes)
	assert.Equal(t, "2019-01-01", title.ReleaseDate)
	assert.Equal(t, []domain.Genre{{ID: 18, Name: "Drama"}}, title.Genres)
	assert.Equal(t, domain.NamespaceTV, title.Namespace)
}

func TestTrendingAllDropsPeople(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/trending/all/day", r.URL.Path)
		w.Write([]byte(`{"page":1,"results":[
			{"id":1,"media_type":"movie","title":"M"},
			{"id":2,"media_type":"person","name":"P"},
			{"id":3,"media_type":"tv","name":"T"}
		]}`))
	})

	titles, err := c.Trending(context.Background(), domain.TrendingAll, domain.TrendingDay)
	require.NoError(t, err)
	require.Len(t, titles, 2)
	assert.Equal(t, domain.NamespaceMovie, titles[0].Namespace)
	assert.Equal(t, "T", titles[1].Name)
	assert.Equal(t, domain.NamespaceTV, titles[1].Namespace)
}

func TestCreditsAndVideosRequireCollections(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":5}`))
	})
	_, err := c.Credits(context.Background(), domain.NamespaceMovie, 5)
	require.ErrorIs(t, err, domain.ErrMalformed)
	_, err = c.Videos(context.Background(), domain.NamespaceMovie, 5)
	require.ErrorIs(t, err, domain.ErrMalformed)
}

func TestImageURL(t *testing.T) {
	assert.Equal(t, "", ImageURL("", "w500"))
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/poster.png", ImageURL("/poster.png", "w500"))
	assert.Equal(t, "https://image.tmdb.org/t/p/original/poster.png", ImageURL("/poster.png", ""))
	assert.Equal(t, "http://img.local/w200/x.jpg", ImageURLWithBase("http://img.local/", "/x.jpg", "w200"))
}
