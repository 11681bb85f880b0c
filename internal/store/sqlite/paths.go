package sqlite

import (
	"context"
	"fmt"
)

// AppendPaths stores paths under a listing in one transaction,
// preserving order via the autoincrement rowid.
func (d *DB) AppendPaths(ctx context.Context, listingID string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO paths (listing_id, path) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range paths {
		if _, err := stmt.ExecContext(ctx, listingID, p); err != nil {
			return fmt.Errorf("insert path: %w", err)
		}
	}
	return tx.Commit()
}

// CountPaths returns the total number of stored paths across listings.
func (d *DB) CountPaths(ctx context.Context) (int, error) {
	var n int
	err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM paths`).Scan(&n)
	return n, err
}

// StreamPaths sends every stored path to out in insertion order. It
// returns when the result set is exhausted or ctx is cancelled; the
// channel is left open for the caller to close.
func (d *DB) StreamPaths(ctx context.Context, out chan<- string) error {
	rows, err := d.db.QueryContext(ctx, `SELECT path FROM paths ORDER BY id ASC`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- p:
		}
	}
	return rows.Err()
}
