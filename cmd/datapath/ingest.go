package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/revittco/datapath/internal/store"
	"github.com/revittco/datapath/internal/store/sqlite"
)

// appendBatchSize bounds memory per insert transaction.
const appendBatchSize = 1000

// cmdIngest reads path strings (one per line) from a file or stdin and
// stores them as a new catalog listing.
func cmdIngest(args []string) error {
	cfg, rest := loadConfig(args)

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer cancel()

	source := "stdin"
	var in io.Reader = os.Stdin
	if len(rest) > 0 {
		f, err := os.Open(rest[0])
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
		source = rest[0]
	}

	db, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	listing := &store.Listing{Source: source}
	if err := db.CreateListing(ctx, listing); err != nil {
		return fmt.Errorf("create listing: %w", err)
	}

	total := 0
	batch := make([]string, 0, appendBatchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := db.AppendPaths(ctx, listing.ID, batch); err != nil {
			return fmt.Errorf("append paths: %w", err)
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		batch = append(batch, line)
		if len(batch) == appendBatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if err := flush(); err != nil {
		return err
	}

	slog.Info("ingested listing", "id", listing.ID, "source", source, "paths", total)
	fmt.Println(listing.ID)
	return nil
}
