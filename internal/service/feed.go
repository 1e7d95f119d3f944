package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
)

// Feed drives one browsing screen: a selected list kind, a debounced
// search text and scroll-triggered loads, all over a single Pager.
type Feed struct {
	pager    *Pager
	debounce *Debouncer
	logger   *slog.Logger

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	kind    domain.ListKind
	query   string // last committed (debounced) query
	pending string // last typed text
	wg      sync.WaitGroup
}

// NewFeed creates a feed starting on kind. Nothing is fetched until Start.
func NewFeed(pager *Pager, debounce *Debouncer, kind domain.ListKind, logger *slog.Logger) *Feed {
	if logger == nil {
		logger = slog.Default()
	}
	if debounce == nil {
		debounce = NewDebouncer(DefaultDebounce)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Feed{
		pager:    pager,
		debounce: debounce,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		kind:     kind,
	}
}

// Start activates the initial key and blocks until its first page set is ready
func (f *Feed) Start(ctx context.Context) domain.FeedSnapshot {
	return f.pager.Activate(ctx, f.Key())
}

// Key returns the committed cache key
func (f *Feed) Key() domain.FeedKey {
	f.mu.Lock()
	defer f.mu.Unlock()
	return domain.FeedKey{Kind: f.kind, Query: f.query}
}

// Kind returns the selected list kind
func (f *Feed) Kind() domain.ListKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.kind
}

// PendingQuery returns the text typed so far, committed or not
func (f *Feed) PendingQuery() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

// SelectKind switches the list kind immediately and blocks until ready
func (f *Feed) SelectKind(ctx context.Context, kind domain.ListKind) domain.FeedSnapshot {
	f.mu.Lock()
	f.kind = kind
	key := domain.FeedKey{Kind: f.kind, Query: f.query}
	f.mu.Unlock()
	return f.pager.Activate(ctx, key)
}

// SetQueryText records typed text. The cache key only changes once the
// text has been stable for the debounce interval; the activation then
// runs in the background and is reported through the pager's observer.
func (f *Feed) SetQueryText(text string) {
	f.mu.Lock()
	f.pending = text
	f.mu.Unlock()

	f.debounce.Trigger(text, f.commitQuery)
}

func (f *Feed) commitQuery(text string) {
	text = strings.TrimSpace(text)

	f.mu.Lock()
	if f.ctx.Err() != nil || text == f.query {
		f.mu.Unlock()
		return
	}
	f.query = text
	key := domain.FeedKey{Kind: f.kind, Query: f.query}
	ctx := f.ctx
	f.wg.Add(1)
	f.mu.Unlock()

	f.logger.Debug("query committed", "key", key.String())
	go func() {
		defer f.wg.Done()
		f.pager.Activate(ctx, key)
	}()
}

// LoadMore asks for the next page of the committed key
func (f *Feed) LoadMore(ctx context.Context) (domain.FeedSnapshot, bool) {
	return f.pager.LoadMore(ctx)
}

// Refresh refetches the committed key
func (f *Feed) Refresh(ctx context.Context) domain.FeedSnapshot {
	return f.pager.Refresh(ctx)
}

// Snapshot returns the current results
func (f *Feed) Snapshot() domain.FeedSnapshot {
	return f.pager.Snapshot()
}

// Close stops pending debounces and background activations
func (f *Feed) Close() {
	f.debounce.Stop()
	f.mu.Lock()
	f.cancel()
	f.mu.Unlock()
	f.pager.Close()
	f.wg.Wait()
}
