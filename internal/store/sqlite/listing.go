package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/revittco/datapath/internal/store"
)

const timeFormat = time.RFC3339

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(timeFormat, s)
	return t
}

func (d *DB) CreateListing(ctx context.Context, l *store.Listing) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	l.CreatedAt = time.Now().UTC()

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO listings (id, source, created_at)
		VALUES (?, ?, ?)`,
		l.ID, l.Source, formatTime(l.CreatedAt),
	)
	return err
}

func (d *DB) GetListing(ctx context.Context, id string) (*store.Listing, error) {
	row := d.db.QueryRowContext(ctx, `
		SELECT l.id, l.source, l.created_at, COUNT(p.id)
		FROM listings l
		LEFT JOIN paths p ON p.listing_id = l.id
		WHERE l.id = ?
		GROUP BY l.id`, id)

	var l store.Listing
	var createdAt string
	err := row.Scan(&l.ID, &l.Source, &createdAt, &l.PathCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	l.CreatedAt = parseTime(createdAt)
	return &l, nil
}

func (d *DB) ListListings(ctx context.Context) ([]store.Listing, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT l.id, l.source, l.created_at, COUNT(p.id)
		FROM listings l
		LEFT JOIN paths p ON p.listing_id = l.id
		GROUP BY l.id
		ORDER BY l.created_at ASC, l.id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Listing
	for rows.Next() {
		var l store.Listing
		var createdAt string
		if err := rows.Scan(&l.ID, &l.Source, &createdAt, &l.PathCount); err != nil {
			return nil, err
		}
		l.CreatedAt = parseTime(createdAt)
		out = append(out, l)
	}
	return out, rows.Err()
}

func (d *DB) DeleteListing(ctx context.Context, id string) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
