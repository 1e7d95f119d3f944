package domain

import "fmt"

// FeedKey identifies one cached page set. An empty Query means list mode;
// otherwise the query is searched within Kind's namespace.
type FeedKey struct {
	Kind  ListKind
	Query string
}

// IsSearch reports whether the key selects a search
func (k FeedKey) IsSearch() bool {
	return k.Query != ""
}

func (k FeedKey) String() string {
	if k.Query == "" {
		return string(k.Kind)
	}
	return fmt.Sprintf("search/%s?%s", k.Kind.Namespace(), k.Query)
}

// FeedState is the fetch state of the active key
type FeedState int

const (
	StateIdle FeedState = iota
	StateFetching
	StateReady
	StateFetchingMore
)

func (s FeedState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateReady:
		return "ready"
	case StateFetchingMore:
		return "fetching-more"
	default:
		return "unknown"
	}
}

// FeedSnapshot is a read-only view of the active key's results.
type FeedSnapshot struct {
	Key        FeedKey
	State      FeedState
	Titles     []Title // all loaded pages, concatenated in page order
	Page       int     // last loaded page number
	TotalPages int
	HasMore    bool
	Stale      bool   // cached results past their fresh window
	Err        error  // last fetch failure for this key, if any
	Token      uint64 // activation token the snapshot belongs to
}

// FeedObserver receives a snapshot after each state transition.
type FeedObserver interface {
	OnFeedUpdate(snap FeedSnapshot)
}

// NoOpObserver discards updates (for testing/batch operations).
type NoOpObserver struct{}

func (NoOpObserver) OnFeedUpdate(FeedSnapshot) {}
