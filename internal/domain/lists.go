package domain

import "strings"

// ListKind is a fixed catalog category. The value is the endpoint path.
type ListKind string

const (
	ListMovieNowPlaying ListKind = "movie/now_playing"
	ListMoviePopular    ListKind = "movie/popular"
	ListMovieTopRated   ListKind = "movie/top_rated"
	ListMovieUpcoming   ListKind = "movie/upcoming"

	ListTVAiringToday ListKind = "tv/airing_today"
	ListTVOnTheAir    ListKind = "tv/on_the_air"
	ListTVPopular     ListKind = "tv/popular"
	ListTVTopRated    ListKind = "tv/top_rated"
)

var listLabels = map[ListKind]string{
	ListMovieNowPlaying: "Now Playing",
	ListMoviePopular:    "Popular",
	ListMovieTopRated:   "Top Rated",
	ListMovieUpcoming:   "Upcoming",
	ListTVAiringToday:   "Airing Today",
	ListTVOnTheAir:      "On The Air",
	ListTVPopular:       "Popular",
	ListTVTopRated:      "Top Rated",
}

// MovieListKinds returns the movie categories in tab order
func MovieListKinds() []ListKind {
	return []ListKind{ListMovieNowPlaying, ListMoviePopular, ListMovieTopRated, ListMovieUpcoming}
}

// TVListKinds returns the TV categories in tab order
func TVListKinds() []ListKind {
	return []ListKind{ListTVAiringToday, ListTVOnTheAir, ListTVPopular, ListTVTopRated}
}

// ListKindsFor returns the categories of a namespace
func ListKindsFor(ns Namespace) []ListKind {
	if ns == NamespaceTV {
		return TVListKinds()
	}
	return MovieListKinds()
}

// Valid reports whether k is one of the fixed categories
func (k ListKind) Valid() bool {
	_, ok := listLabels[k]
	return ok
}

// Namespace returns the catalog namespace the list belongs to
func (k ListKind) Namespace() Namespace {
	ns, _, _ := strings.Cut(string(k), "/")
	return Namespace(ns)
}

// Label returns the display name
func (k ListKind) Label() string {
	return listLabels[k]
}

// TrendingScope selects what a trending list contains
type TrendingScope string

const (
	TrendingAll   TrendingScope = "all"
	TrendingMovie TrendingScope = "movie"
	TrendingTV    TrendingScope = "tv"
)

// TrendingWindow is the time window of a trending list
type TrendingWindow string

const (
	TrendingDay  TrendingWindow = "day"
	TrendingWeek TrendingWindow = "week"
)
