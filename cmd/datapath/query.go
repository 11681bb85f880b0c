package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/revittco/datapath/internal/index"
	"github.com/revittco/datapath/internal/rulecache"
	"github.com/revittco/datapath/internal/store/sqlite"
	"golang.org/x/sync/errgroup"
)

// cmdQuery builds an index from the catalog and prints every stored
// path matching the glob arguments. Rules are compiled once per
// distinct glob.
func cmdQuery(args []string) error {
	cfg, rest := loadConfig(args)
	if len(rest) == 0 {
		return fmt.Errorf("usage: datapath query [--db=PATH] GLOB [GLOB...]")
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer cancel()

	idx, err := loadIndex(ctx, cfg)
	if err != nil {
		return err
	}

	rules := rulecache.New(len(rest))
	for _, glob := range rest {
		rule, err := rules.Get(glob)
		if err != nil {
			return err
		}
		for _, adv := range rule.Advisories() {
			slog.Warn(adv)
		}

		n := 0
		for p := range idx.QueryRule(rule) {
			fmt.Println(p)
			n++
		}
		slog.Info("query finished", "glob", glob, "matches", n, "indexed", idx.Len())
	}
	return nil
}

// cmdExists reports whether any stored path matches the glob argument.
// Prints "true" on a match, "false" otherwise.
func cmdExists(args []string) error {
	cfg, rest := loadConfig(args)
	if len(rest) != 1 {
		return fmt.Errorf("usage: datapath exists [--db=PATH] GLOB")
	}
	glob := rest[0]

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer cancel()

	idx, err := loadIndex(ctx, cfg)
	if err != nil {
		return err
	}

	ok, err := idx.QueryMatch(glob)
	if err != nil {
		return err
	}
	fmt.Println(ok)
	return nil
}

// loadIndex streams the catalog into a fresh in-memory index. The
// reader and builder run concurrently so the path set is never
// materialized as one slice.
func loadIndex(ctx context.Context, cfg *Config) (*index.Index, error) {
	db, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	paths := make(chan string, 256)
	var idx *index.Index

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(paths)
		return db.StreamPaths(gctx, paths)
	})
	g.Go(func() error {
		idx = index.BuildFromChannel(gctx, paths)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	slog.Debug("index built", "paths", idx.Len())
	return idx, nil
}
