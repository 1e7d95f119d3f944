package tmdb

import (
	"github.com/mmcdole/marquee/internal/domain"
)

// MapPage converts a paged envelope to a domain page for the requested
// page number. NextPage is always requested+1; HasNext decides if it is offered.
func MapPage(resp PagedResponse, requested int, ns domain.Namespace) domain.Page {
	return domain.Page{
		Results:      MapResults(resp.Results, ns),
		Page:         requested,
		NextPage:     requested + 1,
		TotalPages:   resp.TotalPages,
		TotalResults: resp.TotalResults,
	}
}

// MapResults converts list entries. When ns is empty each record's
// media_type decides the namespace and non-title records (people) are dropped.
func MapResults(records []ResultRecord, ns domain.Namespace) []domain.Title {
	titles := make([]domain.Title, 0, len(records))
	for _, r := range records {
		recordNS := ns
		if recordNS == "" {
			recordNS = domain.Namespace(r.MediaType)
			if !recordNS.Valid() {
				continue
			}
		}
		titles = append(titles, mapResult(r, recordNS))
	}
	return titles
}

func mapResult(r ResultRecord, ns domain.Namespace) domain.Title {
	t := domain.Title{
		ID:          r.ID,
		Namespace:   ns,
		PosterPath:  deref(r.PosterPath),
		Overview:    r.Overview,
		VoteAverage: r.VoteAverage,
	}
	if ns == domain.NamespaceTV {
		t.Name = firstNonEmpty(r.Name, r.Title)
		t.ReleaseDate = r.FirstAirDate
	} else {
		t.Name = firstNonEmpty(r.Title, r.Name)
		t.ReleaseDate = r.ReleaseDate
	}
	return t
}

// MapDetail converts a detail record
func MapDetail(d DetailRecord, ns domain.Namespace) *domain.Title {
	t := &domain.Title{
		ID:          d.ID,
		Namespace:   ns,
		PosterPath:  deref(d.PosterPath),
		Overview:    d.Overview,
		VoteAverage: d.VoteAverage,
		Tagline:     d.Tagline,
		Genres:      make([]domain.Genre, 0, len(d.Genres)),
	}
	if ns == domain.NamespaceTV {
		t.Name = firstNonEmpty(d.Name, d.Title)
		t.ReleaseDate = d.FirstAirDate
		if len(d.EpisodeRunTime) > 0 {
			t.RuntimeMinutes = d.EpisodeRunTime[0]
		}
	} else {
		t.Name = firstNonEmpty(d.Title, d.Name)
		t.ReleaseDate = d.ReleaseDate
		t.RuntimeMinutes = d.Runtime
	}
	for _, g := range d.Genres {
		t.Genres = append(t.Genres, domain.Genre{ID: g.ID, Name: g.Name})
	}
	return t
}

// MapCast converts credits to cast members in billing order
func MapCast(records []CastRecord) []domain.CastMember {
	cast := make([]domain.CastMember, 0, len(records))
	for _, c := range records {
		cast = append(cast, domain.CastMember{
			ID:          c.ID,
			Name:        c.Name,
			Character:   c.Character,
			ProfilePath: deref(c.ProfilePath),
		})
	}
	return cast
}

// MapVideos converts video records (unfiltered)
func MapVideos(records []VideoRecord) []domain.Video {
	videos := make([]domain.Video, 0, len(records))
	for _, v := range records {
		videos = append(videos, domain.Video{
			ID:   v.ID,
			Key:  v.Key,
			Name: v.Name,
			Site: v.Site,
			Type: v.Type,
		})
	}
	return videos
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
