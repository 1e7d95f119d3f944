package domain

import "context"

// CatalogClient: Network operations against one remote catalog
// (implemented by catalog clients). Errors are returned as-is.
type CatalogClient interface {
	List(ctx context.Context, kind ListKind, page int) (Page, error)
	Search(ctx context.Context, ns Namespace, query string, page int) (Page, error)
	Trending(ctx context.Context, scope TrendingScope, window TrendingWindow) ([]Title, error)

	Details(ctx context.Context, ns Namespace, id int) (*Title, error)
	Credits(ctx context.Context, ns Namespace, id int) ([]CastMember, error)
	Videos(ctx context.Context, ns Namespace, id int) ([]Video, error)
	Recommendations(ctx context.Context, ns Namespace, id int) ([]Title, error)
}

// PageSource: Best-effort paged reads. Never fails; a failed fetch
// yields EmptyPage with Err set.
type PageSource interface {
	FetchPage(ctx context.Context, kind ListKind, page int) Result[Page]
	Search(ctx context.Context, ns Namespace, query string, page int) Result[Page]
}

// BlobStore persists named opaque blobs (bbolt or memory).
type BlobStore interface {
	// Get returns the blob and whether it exists
	Get(key string) ([]byte, bool, error)
	// Put replaces the blob wholesale
	Put(key string, value []byte) error
	Close() error
}
