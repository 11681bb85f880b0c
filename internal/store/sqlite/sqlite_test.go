package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/revittco/datapath/internal/index"
	"github.com/revittco/datapath/internal/store"
	"github.com/revittco/datapath/internal/store/sqlite"
	"golang.org/x/sync/errgroup"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.New(context.Background(), t.TempDir()+"/test.db")
	if err != nil {
		t.Fatalf("new test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPing(t *testing.T) {
	db := newTestDB(t)
	if err := db.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestListingCRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	l := &store.Listing{Source: "s3://crawl-bucket"}

	// Create.
	if err := db.CreateListing(ctx, l); err != nil {
		t.Fatalf("create: %v", err)
	}
	if l.ID == "" {
		t.Fatal("expected ID to be set")
	}

	// Get.
	got, err := db.GetListing(ctx, l.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Source != "s3://crawl-bucket" {
		t.Fatalf("source = %q", got.Source)
	}
	if got.PathCount != 0 {
		t.Fatalf("path count = %d, want 0", got.PathCount)
	}

	// List.
	list, err := db.ListListings(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len = %d, want 1", len(list))
	}

	// Delete.
	if err := db.DeleteListing(ctx, l.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := db.GetListing(ctx, l.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := db.DeleteListing(ctx, l.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("delete missing: expected ErrNotFound, got %v", err)
	}
}

func TestAppendAndCountPaths(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	l := &store.Listing{Source: "test"}
	if err := db.CreateListing(ctx, l); err != nil {
		t.Fatalf("create listing: %v", err)
	}

	paths := []string{
		"web/domain=example.com/ts=1234",
		"web/domain=other.com/ts=1234",
		"web/domain=example.com/ts=1234", // duplicate, preserved
	}
	if err := db.AppendPaths(ctx, l.ID, paths); err != nil {
		t.Fatalf("append: %v", err)
	}

	n, err := db.CountPaths(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Fatalf("count = %d, want 3", n)
	}

	got, err := db.GetListing(ctx, l.ID)
	if err != nil {
		t.Fatalf("get listing: %v", err)
	}
	if got.PathCount != 3 {
		t.Fatalf("listing path count = %d, want 3", got.PathCount)
	}

	// Deleting the listing cascades to its paths.
	if err := db.DeleteListing(ctx, l.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	n, err = db.CountPaths(ctx)
	if err != nil {
		t.Fatalf("count after delete: %v", err)
	}
	if n != 0 {
		t.Fatalf("count after delete = %d, want 0", n)
	}
}

func TestStreamPathsOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	l := &store.Listing{Source: "test"}
	if err := db.CreateListing(ctx, l); err != nil {
		t.Fatalf("create listing: %v", err)
	}
	paths := []string{"c/x=3", "a/x=1", "b/x=2"}
	if err := db.AppendPaths(ctx, l.ID, paths); err != nil {
		t.Fatalf("append: %v", err)
	}

	ch := make(chan string, len(paths))
	if err := db.StreamPaths(ctx, ch); err != nil {
		t.Fatalf("stream: %v", err)
	}
	close(ch)

	var got []string
	for p := range ch {
		got = append(got, p)
	}
	if len(got) != 3 {
		t.Fatalf("streamed %d paths, want 3", len(got))
	}
	for i := range paths {
		if got[i] != paths[i] {
			t.Fatalf("order: got %v, want %v", got, paths)
		}
	}
}

// The catalog is a string source for index construction: streaming it
// through BuildFromChannel yields the same index as a synchronous build
// over the same paths.
func TestStreamIntoIndex(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	l := &store.Listing{Source: "test"}
	if err := db.CreateListing(ctx, l); err != nil {
		t.Fatalf("create listing: %v", err)
	}
	paths := []string{
		"web/domain=example.com/ts=1234",
		"web/domain=other.com/ts=1234",
		"api/domain=example.com/ts=5678",
	}
	if err := db.AppendPaths(ctx, l.ID, paths); err != nil {
		t.Fatalf("append: %v", err)
	}

	ch := make(chan string, 16)
	var idx *index.Index

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(ch)
		return db.StreamPaths(gctx, ch)
	})
	g.Go(func() error {
		idx = index.BuildFromChannel(gctx, ch)
		return nil
	})
	if err := g.Wait(); err != nil {
		t.Fatalf("stream-and-build: %v", err)
	}

	if idx.Len() != 3 {
		t.Fatalf("index Len = %d, want 3", idx.Len())
	}
	got, err := idx.QueryMatch("web/domain=*/ts=1234")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if !got {
		t.Fatal("expected a match for web/domain=*/ts=1234")
	}
}
