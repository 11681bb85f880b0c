// Package store defines the persistent catalog of concrete path
// strings. A catalog holds listings — named batches of paths produced
// by some enumerator (an object-store listing, a file, stdin) — and
// streams them back in insertion order for index construction.
package store

import "context"

// Catalog is the composite interface for path catalog access.
type Catalog interface {
	// CreateListing registers a new listing. An empty ID is assigned.
	CreateListing(ctx context.Context, l *Listing) error
	GetListing(ctx context.Context, id string) (*Listing, error)
	ListListings(ctx context.Context) ([]Listing, error)
	// DeleteListing removes a listing and all of its paths.
	DeleteListing(ctx context.Context, id string) error

	// AppendPaths stores paths under a listing, preserving order.
	AppendPaths(ctx context.Context, listingID string, paths []string) error
	// CountPaths returns the total number of stored paths.
	CountPaths(ctx context.Context) (int, error)
	// StreamPaths sends every stored path to out in insertion order.
	// It does not close out; it returns when exhausted or when ctx is
	// cancelled.
	StreamPaths(ctx context.Context, out chan<- string) error

	Ping(ctx context.Context) error
	Close() error
}
