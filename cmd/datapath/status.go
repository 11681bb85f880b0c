package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/revittco/datapath/internal/store/sqlite"
)

// cmdStatus prints the catalog's listings and path counts.
func cmdStatus(args []string) error {
	cfg, _ := loadConfig(args)

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer cancel()

	db, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	listings, err := db.ListListings(ctx)
	if err != nil {
		return err
	}
	total, err := db.CountPaths(ctx)
	if err != nil {
		return err
	}

	for _, l := range listings {
		fmt.Printf("%s  %s  paths=%d  created=%s\n",
			l.ID, l.Source, l.PathCount, l.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("total: %d listings, %d paths\n", len(listings), total)
	return nil
}
