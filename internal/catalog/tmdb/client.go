package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/"
	DefaultLanguage     = "en-US"

	// TMDB allows roughly 50 requests per second
	defaultRateLimit = 40
	defaultBurst     = 20

	userAgent = "Marquee/1.0"
)

// Client implements domain.CatalogClient for the TMDB v3 API
type Client struct {
	baseURL    string
	token      string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTimeout sets a per-request timeout (0 = rely on the transport)
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRateLimit caps outgoing requests per second. rps <= 0 disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewClient creates a new TMDB API client
func NewClient(baseURL, token, language string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if language == "" {
		language = DefaultLanguage
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		language:   language,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(defaultRateLimit), defaultBurst),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// doRequest performs an authenticated GET and decodes the JSON body into dest
func (c *Client) doRequest(ctx context.Context, path string, query url.Values, dest any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("language", c.language)
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, strings.TrimLeft(path, "/"), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("tmdb request", "path", path, "query", query.Encode())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.logger.Warn("tmdb request failed", "path", path, "error", err)
		return fmt.Errorf("%w: %v", domain.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.logger.Warn("tmdb request error", "path", path, "status", resp.StatusCode, "bodyLen", len(body))
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Warn("JSON parse error", "path", path, "error", err, "bodyLen", len(body))
		return fmt.Errorf("%w: %v", domain.ErrMalformed, err)
	}
	return nil
}

// List returns one page of a fixed category
func (c *Client) List(ctx context.Context, kind domain.ListKind, page int) (domain.Page, error) {
	if !kind.Valid() {
		return domain.Page{}, fmt.Errorf("%w: %q", domain.ErrInvalidListKind, kind)
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))

	var resp PagedResponse
	if err := c.doRequest(ctx, string(kind), query, &resp); err != nil {
		return domain.Page{}, err
	}
	return MapPage(resp, page, kind.Namespace()), nil
}

// Search returns one page of the catalog's relevance-ranked search
func (c *Client) Search(ctx context.Context, ns domain.Namespace, text string, page int) (domain.Page, error) {
	if !ns.Valid() {
		return domain.Page{}, fmt.Errorf("unknown namespace: %q", ns)
	}
	query := url.Values{}
	query.Set("query", text)
	query.Set("page", strconv.Itoa(page))

	var resp PagedResponse
	if err := c.doRequest(ctx, "search/"+string(ns), query, &resp); err != nil {
		return domain.Page{}, err
	}
	return MapPage(resp, page, ns), nil
}

// Trending returns the first page of a trending list
func (c *Client) Trending(ctx context.Context, scope domain.TrendingScope, window domain.TrendingWindow) ([]domain.Title, error) {
	var resp PagedResponse
	path := fmt.Sprintf("trending/%s/%s", scope, window)
	if err := c.doRequest(ctx, path, nil, &resp); err != nil {
		return nil, err
	}

	var ns domain.Namespace
	switch scope {
	case domain.TrendingMovie:
		ns = domain.NamespaceMovie
	case domain.TrendingTV:
		ns = domain.NamespaceTV
	}
	return MapResults(resp.Results, ns), nil
}

// Details returns the full record for an id
func (c *Client) Details(ctx context.Context, ns domain.Namespace, id int) (*domain.Title, error) {
	var resp DetailRecord
	if err := c.doRequest(ctx, fmt.Sprintf("%s/%d", ns, id), nil, &resp); err != nil {
		return nil, err
	}
	if resp.ID == 0 {
		return nil, fmt.Errorf("%w: detail without id", domain.ErrMalformed)
	}
	return MapDetail(resp, ns), nil
}

// Credits returns the full cast in billing order
func (c *Client) Credits(ctx context.Context, ns domain.Namespace, id int) ([]domain.CastMember, error) {
	var resp CreditsResponse
	if err := c.doRequest(ctx, fmt.Sprintf("%s/%d/credits", ns, id), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Cast == nil {
		return nil, fmt.Errorf("%w: credits without cast", domain.ErrMalformed)
	}
	return MapCast(resp.Cast), nil
}

// Videos returns every video attached to the id
func (c *Client) Videos(ctx context.Context, ns domain.Namespace, id int) ([]domain.Video, error) {
	var resp VideosResponse
	if err := c.doRequest(ctx, fmt.Sprintf("%s/%d/videos", ns, id), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return nil, fmt.Errorf("%w: videos without results", domain.ErrMalformed)
	}
	return MapVideos(resp.Results), nil
}

// Recommendations returns the first page of recommendations for the id
func (c *Client) Recommendations(ctx context.Context, ns domain.Namespace, id int) ([]domain.Title, error) {
	var resp PagedResponse
	if err := c.doRequest(ctx, fmt.Sprintf("%s/%d/recommendations", ns, id), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return nil, fmt.Errorf("%w: recommendations without results", domain.ErrMalformed)
	}
	return MapResults(resp.Results, ns), nil
}

// ImageURL builds an image URL for a relative path, e.g. ImageURL("/p.jpg", "w500").
// Returns "" for an empty path.
func ImageURL(path, size string) string {
	return ImageURLWithBase(DefaultImageBaseURL, path, size)
}

// ImageURLWithBase is ImageURL against a custom image host
func ImageURLWithBase(base, path, size string) string {
	if path == "" {
		return ""
	}
	if size == "" {
		size = "original"
	}
	return strings.TrimRight(base, "/") + "/" + size + "/" + strings.TrimLeft(path, "/")
}
