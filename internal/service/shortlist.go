package service

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
)

// ShortlistKey is the blob key the shortlist is persisted under
const ShortlistKey = "movieState"

// shortlistState is the persisted blob
type shortlistState struct {
	ShortlistedMovies []domain.Title `json:"shortlistedMovies"`
}

// Shortlist is the user's set of favorited titles, keyed by id and kept
// in insertion order. Every mutation is written through to storage;
// storage failures never reach the caller, the in-memory set stays
// authoritative for the session.
type Shortlist struct {
	storage domain.BlobStore
	logger  *slog.Logger

	mu      sync.RWMutex
	items   []domain.Title
	ids     map[int]struct{}
	lastErr error
}

// NewShortlist creates an empty shortlist. storage may be nil for a
// session-only shortlist.
func NewShortlist(storage domain.BlobStore, logger *slog.Logger) *Shortlist {
	if logger == nil {
		logger = slog.Default()
	}
	return &Shortlist{
		storage: storage,
		logger:  logger,
		items:   []domain.Title{},
		ids:     make(map[int]struct{}),
	}
}

// Load replaces the in-memory set with the persisted one. A missing,
// unreadable or malformed blob yields an empty shortlist.
func (s *Shortlist) Load() {
	items := s.read()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make([]domain.Title, 0, len(items))
	s.ids = make(map[int]struct{}, len(items))
	for _, t := range items {
		if _, dup := s.ids[t.ID]; dup {
			continue
		}
		s.ids[t.ID] = struct{}{}
		s.items = append(s.items, t)
	}
	s.logger.Info("loaded shortlist", "count", len(s.items))
}

func (s *Shortlist) read() []domain.Title {
	if s.storage == nil {
		return nil
	}
	data, ok, err := s.storage.Get(ShortlistKey)
	if err != nil {
		s.logger.Warn("failed to read shortlist", "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	var state shortlistState
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.Warn("ignoring malformed shortlist", "error", err, "bytes", len(data))
		return nil
	}
	return state.ShortlistedMovies
}

// Toggle removes the title if its id is present, otherwise appends it.
// Returns whether the title is shortlisted afterwards.
func (s *Shortlist) Toggle(title domain.Title) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var added bool
	if _, ok := s.ids[title.ID]; ok {
		delete(s.ids, title.ID)
		kept := make([]domain.Title, 0, len(s.items))
		for _, t := range s.items {
			if t.ID != title.ID {
				kept = append(kept, t)
			}
		}
		s.items = kept
	} else {
		s.ids[title.ID] = struct{}{}
		s.items = append(s.items, title)
		added = true
	}

	s.logger.Debug("toggled shortlist", "id", title.ID, "added", added, "count", len(s.items))
	s.persistLocked()
	return added
}

// Clear empties the shortlist
func (s *Shortlist) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []domain.Title{}
	s.ids = make(map[int]struct{})
	s.persistLocked()
}

// IsShortlisted reports whether id is in the shortlist
func (s *Shortlist) IsShortlisted(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// Items returns a copy of the shortlist in insertion order
func (s *Shortlist) Items() []domain.Title {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Title, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of shortlisted titles
func (s *Shortlist) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Filter fuzzy-matches the shortlist by name; an empty query returns
// every entry in insertion order.
func (s *Shortlist) Filter(query string) []search.FilterResult {
	items := s.Items()
	if strings.TrimSpace(query) != "" {
		return search.FilterTitles(query, items)
	}
	all := make([]search.FilterResult, len(items))
	for i, t := range items {
		all[i] = search.FilterResult{Title: t, Index: i}
	}
	return all
}

// LastPersistErr returns the error of the most recent write, if it failed
func (s *Shortlist) LastPersistErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// persistLocked writes the full set, replacing the stored blob.
// Caller holds s.mu, so writes happen one at a time in mutation order.
func (s *Shortlist) persistLocked() {
	if s.storage == nil {
		return
	}
	data, err := json.Marshal(shortlistState{ShortlistedMovies: s.items})
	if err == nil {
		err = s.storage.Put(ShortlistKey, data)
	}
	if err != nil {
		s.lastErr = fmt.Errorf("persist shortlist: %w", err)
		s.logger.Warn("failed to persist shortlist", "error", err, "count", len(s.items))
		return
	}
	s.lastErr = nil
}
