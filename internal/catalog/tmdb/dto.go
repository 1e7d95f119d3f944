package tmdb

// PagedResponse is the envelope of every paged list/search endpoint
type PagedResponse struct {
	Page         int            `json:"page"`
	Results      []ResultRecord `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// ResultRecord is a list entry. Movies use Title/ReleaseDate,
// shows use Name/FirstAirDate.
type ResultRecord struct {
	ID           int     `json:"id"`
	MediaType    string  `json:"media_type,omitempty"` // trending/all only
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	PosterPath   *string `json:"poster_path"`
	Overview     string  `json:"overview"`
	VoteAverage  float64 `json:"vote_average"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
}

// GenreRecord is a genre tag
type GenreRecord struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// DetailRecord is GET /movie/{id} or GET /tv/{id}
type DetailRecord struct {
	ID             int           `json:"id"`
	Title          string        `json:"title,omitempty"`
	Name           string        `json:"name,omitempty"`
	PosterPath     *string       `json:"poster_path"`
	Overview       string        `json:"overview"`
	VoteAverage    float64       `json:"vote_average"`
	Tagline        string        `json:"tagline"`
	Runtime        int           `json:"runtime,omitempty"`
	EpisodeRunTime []int         `json:"episode_run_time,omitempty"`
	ReleaseDate    string        `json:"release_date,omitempty"`
	FirstAirDate   string        `json:"first_air_date,omitempty"`
	Genres         []GenreRecord `json:"genres"`
}

// CreditsResponse is GET /{ns}/{id}/credits
type CreditsResponse struct {
	ID   int          `json:"id"`
	Cast []CastRecord `json:"cast"`
}

// CastRecord is a billed performer
type CastRecord struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
	Order       int     `json:"order"`
}

// VideosResponse is GET /{ns}/{id}/videos
type VideosResponse struct {
	ID      int           `json:"id"`
	Results []VideoRecord `json:"results"`
}

// VideoRecord is an attached video
type VideoRecord struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}
