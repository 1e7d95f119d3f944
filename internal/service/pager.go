package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
)

const (
	DefaultStaleTime = 5 * time.Minute
	DefaultGCTime    = 10 * time.Minute
)

// PagerOptions configures a Pager. Zero values select the defaults.
type PagerOptions struct {
	StaleTime time.Duration
	GCTime    time.Duration
	Clock     func() time.Time
	Logger    *slog.Logger
	Observer  domain.FeedObserver
}

// pageSet is the cached page sequence of one key
type pageSet struct {
	pages     []domain.Page
	fetchedAt time.Time // zero until a first page was fetched successfully
	usedAt    time.Time
	err       error
}

func (ps *pageSet) last() (domain.Page, bool) {
	if len(ps.pages) == 0 {
		return domain.Page{}, false
	}
	return ps.pages[len(ps.pages)-1], true
}

func (ps *pageSet) titles() []domain.Title {
	n := 0
	for _, p := range ps.pages {
		n += len(p.Results)
	}
	titles := make([]domain.Title, 0, n)
	for _, p := range ps.pages {
		titles = append(titles, p.Results...)
	}
	return titles
}

// Pager is a cursor-paginated cache over a PageSource.
//
// Exactly one key is active at a time. Every activation mints a token;
// a response carrying an older token is dropped, so work for an
// abandoned key never reaches the active key's results. At most one
// page fetch is in flight for the active key.
type Pager struct {
	source    domain.PageSource
	staleTime time.Duration
	gcTime    time.Duration
	now       func() time.Time
	logger    *slog.Logger
	observer  domain.FeedObserver

	mu      sync.Mutex
	entries map[domain.FeedKey]*pageSet
	active  domain.FeedKey
	state   domain.FeedState
	token   uint64
	cancel  context.CancelFunc
}

// NewPager creates a new pager
func NewPager(source domain.PageSource, opts PagerOptions) *Pager {
	if opts.StaleTime <= 0 {
		opts.StaleTime = DefaultStaleTime
	}
	if opts.GCTime <= 0 {
		opts.GCTime = DefaultGCTime
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Observer == nil {
		opts.Observer = domain.NoOpObserver{}
	}
	return &Pager{
		source:    source,
		staleTime: opts.StaleTime,
		gcTime:    opts.GCTime,
		now:       opts.Clock,
		logger:    opts.Logger,
		observer:  opts.Observer,
		entries:   make(map[domain.FeedKey]*pageSet),
	}
}

// Activate makes key the active key and blocks until its first page set
// is available. A fresh cached set is returned without a network call;
// a stale one stays visible while it is refetched.
func (p *Pager) Activate(ctx context.Context, key domain.FeedKey) domain.FeedSnapshot {
	key = normalizeKey(key)

	p.mu.Lock()
	if key == p.active && p.state != domain.StateIdle {
		entry := p.entries[key]
		if p.state != domain.StateReady || p.isFresh(entry) {
			entry.usedAt = p.now()
			snap := p.snapshotLocked()
			p.mu.Unlock()
			return snap
		}
	}

	if key != p.active {
		p.logger.Debug("feed key changed", "from", p.active.String(), "to", key.String())
	}
	p.evictLocked(key)
	token, fetchCtx, cancel := p.beginLocked(ctx)
	defer cancel()
	p.active = key

	entry, ok := p.entries[key]
	if !ok {
		entry = &pageSet{}
		p.entries[key] = entry
	}
	entry.usedAt = p.now()

	if p.isFresh(entry) {
		p.state = domain.StateReady
		snap := p.snapshotLocked()
		p.mu.Unlock()
		p.logger.Debug("feed cache hit", "key", key.String(), "pages", len(entry.pages))
		p.observer.OnFeedUpdate(snap)
		return snap
	}

	// Revalidate as many pages as are cached (at least the first)
	count := max(1, len(entry.pages))
	p.state = domain.StateFetching
	snap := p.snapshotLocked()
	p.mu.Unlock()
	p.observer.OnFeedUpdate(snap)

	pages, err := p.fetchPages(fetchCtx, key, count)

	p.mu.Lock()
	if token != p.token {
		snap = p.snapshotLocked()
		p.mu.Unlock()
		p.logger.Debug("discarding response for abandoned key", "key", key.String())
		return snap
	}

	switch {
	case len(pages) > 0:
		entry.pages = pages
		entry.fetchedAt = p.now()
		entry.err = err
	case err != nil:
		// Keep whatever was visible before the failed revalidation
		entry.err = err
	}
	p.state = domain.StateReady
	snap = p.snapshotLocked()
	p.mu.Unlock()

	p.logger.Debug("feed ready", "key", key.String(), "titles", len(snap.Titles), "hasMore", snap.HasMore)
	p.observer.OnFeedUpdate(snap)
	return snap
}

// LoadMore fetches the next page of the active key and appends it.
// It returns false without touching the network unless the pager is
// Ready and the last page offers a next page.
func (p *Pager) LoadMore(ctx context.Context) (domain.FeedSnapshot, bool) {
	p.mu.Lock()
	if p.state != domain.StateReady {
		snap := p.snapshotLocked()
		p.mu.Unlock()
		return snap, false
	}
	entry := p.entries[p.active]
	last, ok := entry.last()
	if !ok || !last.HasNext() {
		snap := p.snapshotLocked()
		p.mu.Unlock()
		return snap, false
	}

	key := p.active
	next := last.NextPage
	token, fetchCtx, cancel := p.beginLoadMoreLocked(ctx)
	defer cancel()
	p.state = domain.StateFetchingMore
	entry.usedAt = p.now()
	snap := p.snapshotLocked()
	p.mu.Unlock()
	p.observer.OnFeedUpdate(snap)

	res := p.fetch(fetchCtx, key, next)

	p.mu.Lock()
	if token != p.token {
		snap = p.snapshotLocked()
		p.mu.Unlock()
		p.logger.Debug("discarding page for abandoned key", "key", key.String(), "page", next)
		return snap, true
	}
	if res.OK() {
		entry.pages = append(entry.pages, res.Value)
		entry.err = nil
	} else {
		// Not appended: a later scroll may try the same page again
		entry.err = res.Err
	}
	p.state = domain.StateReady
	snap = p.snapshotLocked()
	p.mu.Unlock()

	p.observer.OnFeedUpdate(snap)
	return snap, true
}

// Refresh refetches the active key even if its page set is fresh
func (p *Pager) Refresh(ctx context.Context) domain.FeedSnapshot {
	p.mu.Lock()
	if p.state == domain.StateIdle {
		snap := p.snapshotLocked()
		p.mu.Unlock()
		return snap
	}
	key := p.active
	if entry, ok := p.entries[key]; ok {
		entry.fetchedAt = time.Time{}
	}
	p.mu.Unlock()
	return p.Activate(ctx, key)
}

// Snapshot returns the current view of the active key
func (p *Pager) Snapshot() domain.FeedSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// Close cancels any in-flight fetch
func (p *Pager) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// beginLocked mints a new token and cancels the work of the previous one
func (p *Pager) beginLocked(ctx context.Context) (uint64, context.Context, context.CancelFunc) {
	if p.cancel != nil {
		p.cancel()
	}
	p.token++
	fetchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	return p.token, fetchCtx, cancel
}

// beginLoadMoreLocked keeps the current token; nothing else is in flight
func (p *Pager) beginLoadMoreLocked(ctx context.Context) (uint64, context.Context, context.CancelFunc) {
	fetchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	return p.token, fetchCtx, cancel
}

func (p *Pager) fetch(ctx context.Context, key domain.FeedKey, page int) domain.Result[domain.Page] {
	if key.IsSearch() {
		return p.source.Search(ctx, key.Kind.Namespace(), key.Query, page)
	}
	return p.source.FetchPage(ctx, key.Kind, page)
}

// fetchPages fetches pages 1..count in order, stopping early when the
// catalog has no further page or a fetch fails.
func (p *Pager) fetchPages(ctx context.Context, key domain.FeedKey, count int) ([]domain.Page, error) {
	pages := make([]domain.Page, 0, count)
	for n := 1; n <= count; n++ {
		res := p.fetch(ctx, key, n)
		if !res.OK() {
			return pages, res.Err
		}
		pages = append(pages, res.Value)
		if !res.Value.HasNext() {
			break
		}
	}
	return pages, nil
}

func (p *Pager) isFresh(entry *pageSet) bool {
	if entry == nil || entry.fetchedAt.IsZero() {
		return false
	}
	return p.now().Sub(entry.fetchedAt) < p.staleTime
}

// evictLocked drops page sets that have not been used for gcTime
func (p *Pager) evictLocked(keep domain.FeedKey) {
	now := p.now()
	for k, e := range p.entries {
		if k == keep || k == p.active {
			continue
		}
		if now.Sub(e.usedAt) >= p.gcTime {
			delete(p.entries, k)
			p.logger.Debug("evicted feed cache", "key", k.String())
		}
	}
}

func (p *Pager) snapshotLocked() domain.FeedSnapshot {
	snap := domain.FeedSnapshot{
		Key:   p.active,
		State: p.state,
		Token: p.token,
	}
	if p.state == domain.StateIdle {
		return snap
	}
	entry, ok := p.entries[p.active]
	if !ok {
		return snap
	}
	snap.Titles = entry.titles()
	if last, ok := entry.last(); ok {
		snap.Page = last.Page
		snap.TotalPages = last.TotalPages
		snap.HasMore = last.HasNext()
	}
	snap.Stale = len(entry.pages) > 0 && !p.isFresh(entry)
	snap.Err = entry.err
	return snap
}

func normalizeKey(key domain.FeedKey) domain.FeedKey {
	key.Query = strings.TrimSpace(key.Query)
	return key
}
