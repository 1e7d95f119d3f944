package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
	"golang.org/x/sync/errgroup"
)

const (
	maxCast            = 10
	maxRecommendations = 10
)

// CatalogService is the best-effort face of the catalog client.
// No method returns a fault: failures are logged and degrade to an
// empty value, with Result.Err recording what happened.
type CatalogService struct {
	client domain.CatalogClient
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(client domain.CatalogClient, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{client: client, logger: logger}
}

// FetchPage returns one page of a list category
func (s *CatalogService) FetchPage(ctx context.Context, kind domain.ListKind, page int) domain.Result[domain.Page] {
	if page < 1 {
		page = 1
	}
	p, err := s.client.List(ctx, kind, page)
	if err != nil {
		s.logger.Warn("failed to fetch page", "kind", kind, "page", page, "error", err)
		return domain.Fallback(domain.EmptyPage(), err)
	}
	s.logger.Debug("fetched page", "kind", kind, "page", page, "count", len(p.Results), "totalPages", p.TotalPages)
	return domain.Success(p)
}

// Search returns one page of search results within a namespace.
// Ranking is the catalog's; nothing is re-ordered here.
func (s *CatalogService) Search(ctx context.Context, ns domain.Namespace, query string, page int) domain.Result[domain.Page] {
	if page < 1 {
		page = 1
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Success(domain.EmptyPage())
	}
	p, err := s.client.Search(ctx, ns, query, page)
	if err != nil {
		s.logger.Warn("failed to search", "namespace", ns, "query", query, "page", page, "error", err)
		return domain.Fallback(domain.EmptyPage(), err)
	}
	s.logger.Debug("searched", "namespace", ns, "query", query, "page", page, "count", len(p.Results))
	return domain.Success(p)
}

// FetchTrending returns a trending list
func (s *CatalogService) FetchTrending(ctx context.Context, scope domain.TrendingScope, window domain.TrendingWindow) domain.Result[[]domain.Title] {
	titles, err := s.client.Trending(ctx, scope, window)
	if err != nil {
		s.logger.Warn("failed to fetch trending", "scope", scope, "window", window, "error", err)
		return domain.Fallback([]domain.Title{}, err)
	}
	return domain.Success(titles)
}

// FetchDetail returns the detail record for an id, movie first then TV
func (s *CatalogService) FetchDetail(ctx context.Context, id int) domain.Result[*domain.Title] {
	title, _, err := lookup(ctx, s.logger, "details", id, func(ctx context.Context, ns domain.Namespace) (*domain.Title, error) {
		return s.client.Details(ctx, ns, id)
	})
	if err != nil {
		s.logger.Warn("failed to fetch detail", "id", id, "error", err)
		return domain.Fallback[*domain.Title](nil, err)
	}
	return domain.Success(title)
}

// FetchCast returns the top-billed cast for an id
func (s *CatalogService) FetchCast(ctx context.Context, id int) domain.Result[[]domain.CastMember] {
	cast, _, err := lookup(ctx, s.logger, "credits", id, func(ctx context.Context, ns domain.Namespace) ([]domain.CastMember, error) {
		return s.client.Credits(ctx, ns, id)
	})
	if err != nil {
		s.logger.Warn("failed to fetch cast", "id", id, "error", err)
		return domain.Fallback([]domain.CastMember{}, err)
	}
	return domain.Success(truncate(cast, maxCast))
}

// FetchVideos returns the YouTube trailers for an id
func (s *CatalogService) FetchVideos(ctx context.Context, id int) domain.Result[[]domain.Video] {
	videos, _, err := lookup(ctx, s.logger, "videos", id, func(ctx context.Context, ns domain.Namespace) ([]domain.Video, error) {
		return s.client.Videos(ctx, ns, id)
	})
	if err != nil {
		s.logger.Warn("failed to fetch videos", "id", id, "error", err)
		return domain.Fallback([]domain.Video{}, err)
	}
	trailers := make([]domain.Video, 0, len(videos))
	for _, v := range videos {
		if v.IsTrailer() {
			trailers = append(trailers, v)
		}
	}
	return domain.Success(trailers)
}

// FetchRecommendations returns up to 10 recommended titles for an id
func (s *CatalogService) FetchRecommendations(ctx context.Context, id int) domain.Result[[]domain.Title] {
	titles, _, err := lookup(ctx, s.logger, "recommendations", id, func(ctx context.Context, ns domain.Namespace) ([]domain.Title, error) {
		return s.client.Recommendations(ctx, ns, id)
	})
	if err != nil {
		s.logger.Warn("failed to fetch recommendations", "id", id, "error", err)
		return domain.Fallback([]domain.Title{}, err)
	}
	return domain.Success(truncate(titles, maxRecommendations))
}

// FetchBundle loads detail, cast, trailers and recommendations concurrently.
// The bundle is always populated; Err joins the failures of individual parts.
func (s *CatalogService) FetchBundle(ctx context.Context, id int) domain.Result[domain.TitleBundle] {
	var (
		g      errgroup.Group
		detail domain.Result[*domain.Title]
		cast   domain.Result[[]domain.CastMember]
		videos domain.Result[[]domain.Video]
		recs   domain.Result[[]domain.Title]
	)
	g.Go(func() error { detail = s.FetchDetail(ctx, id); return nil })
	g.Go(func() error { cast = s.FetchCast(ctx, id); return nil })
	g.Go(func() error { videos = s.FetchVideos(ctx, id); return nil })
	g.Go(func() error { recs = s.FetchRecommendations(ctx, id); return nil })
	_ = g.Wait()

	bundle := domain.TitleBundle{
		Detail:          detail.Value,
		Cast:            cast.Value,
		Videos:          videos.Value,
		Recommendations: recs.Value,
	}
	if detail.Value != nil {
		bundle.Namespace = detail.Value.Namespace
	}
	return domain.Result[domain.TitleBundle]{
		Value: bundle,
		Err:   errors.Join(detail.Err, cast.Err, videos.Err, recs.Err),
	}
}

// lookup runs fn against the movie namespace and, on any failure,
// against the TV namespace. A cancelled context stops the chain.
func lookup[T any](
	ctx context.Context,
	logger *slog.Logger,
	op string,
	id int,
	fn func(ctx context.Context, ns domain.Namespace) (T, error),
) (T, domain.Namespace, error) {
	v, movieErr := fn(ctx, domain.NamespaceMovie)
	if movieErr == nil {
		return v, domain.NamespaceMovie, nil
	}

	var zero T
	if err := ctx.Err(); err != nil {
		return zero, "", err
	}

	logger.Debug("movie lookup failed, trying tv", "op", op, "id", id, "error", movieErr)
	v, tvErr := fn(ctx, domain.NamespaceTV)
	if tvErr == nil {
		return v, domain.NamespaceTV, nil
	}
	return zero, "", errors.Join(movieErr, tvErr)
}

func truncate[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
