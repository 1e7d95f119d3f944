package domain

import "fmt"

// Namespace identifies which catalog a numeric ID belongs to.
// The same ID may exist in both namespaces.
type Namespace string

const (
	NamespaceMovie Namespace = "movie"
	NamespaceTV    Namespace = "tv"
)

// Valid reports whether n is a known namespace
func (n Namespace) Valid() bool {
	return n == NamespaceMovie || n == NamespaceTV
}

// Genre is a catalog genre tag
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Title is a movie or TV show from the catalog.
// The JSON form is the one persisted in the shortlist blob.
type Title struct {
	ID          int       `json:"id"`
	Namespace   Namespace `json:"media_type,omitempty"`
	Name        string    `json:"title"`
	PosterPath  string    `json:"poster_path,omitempty"` // empty = no poster
	Overview    string    `json:"overview"`
	VoteAverage float64   `json:"vote_average"`

	// Detail fields, only populated by detail lookups
	RuntimeMinutes int     `json:"runtime,omitempty"`
	ReleaseDate    string  `json:"release_date,omitempty"`
	Tagline        string  `json:"tagline,omitempty"`
	Genres         []Genre `json:"genres,omitempty"`
}

// Year returns the release year parsed from ReleaseDate (0 if unknown)
func (t Title) Year() int {
	if len(t.ReleaseDate) < 4 {
		return 0
	}
	var year int
	if _, err := fmt.Sscanf(t.ReleaseDate[:4], "%d", &year); err != nil {
		return 0
	}
	return year
}

// FormattedRuntime returns the runtime as "2h 5m" (empty if unknown)
func (t Title) FormattedRuntime() string {
	if t.RuntimeMinutes <= 0 {
		return ""
	}
	h := t.RuntimeMinutes / 60
	m := t.RuntimeMinutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// CastMember is a billed performer on a title
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path,omitempty"`
}

// Video is an external video attached to a title
type Video struct {
	ID   string `json:"id"`
	Key  string `json:"key"` // video-platform id
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// IsTrailer reports whether the video is a YouTube trailer
func (v Video) IsTrailer() bool {
	return v.Site == "YouTube" && v.Type == "Trailer"
}

// URL returns the watch page of a YouTube video (empty for other sites)
func (v Video) URL() string {
	if v.Site != "YouTube" || v.Key == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + v.Key
}

// Page is one page of a paged list or search.
type Page struct {
	Results      []Title
	Page         int
	NextPage     int // 0 when there is no next page to offer
	TotalPages   int
	TotalResults int
}

// HasNext reports whether the consumer may request NextPage
func (p Page) HasNext() bool {
	return p.NextPage > 0 && p.NextPage <= p.TotalPages
}

// EmptyPage is the well-formed page returned when a fetch fails
func EmptyPage() Page {
	return Page{Results: []Title{}}
}

// TitleBundle holds everything a detail screen shows for one id.
type TitleBundle struct {
	Detail          *Title
	Namespace       Namespace // namespace that resolved Detail
	Cast            []CastMember
	Videos          []Video
	Recommendations []Title
}
