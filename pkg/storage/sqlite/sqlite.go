// Package sqlite provides a SQLite-backed fact storage driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3" // register the sqlite3 driver

	"github.com/papercomputeco/cultura/pkg/fact"
	"github.com/papercomputeco/cultura/pkg/storage"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS facts (
		seq         INTEGER PRIMARY KEY AUTOINCREMENT,
		id          TEXT    NOT NULL UNIQUE,
		text        TEXT    NOT NULL UNIQUE,
		provider_id TEXT    NOT NULL,
		displayed   BOOLEAN NOT NULL DEFAULT 0,
		created_at  INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_facts_unread ON facts (displayed, created_at)`,
}

const selectColumns = `SELECT id, text, provider_id, displayed, created_at FROM facts`

// Driver implements storage.Driver using SQLite.
type Driver struct {
	db *sql.DB

	// mu serializes writers so concurrent harvests never interleave batches.
	mu sync.Mutex

	now func() time.Time
}

// Option configures a Driver.
type Option func(*Driver)

// WithClock overrides the clock used to stamp created_at.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) {
		d.now = now
	}
}

// NewDriver opens (creating if needed) the SQLite database at dbPath and
// migrates the schema. The dbPath can be a file path or ":memory:".
func NewDriver(ctx context.Context, dbPath string, opts ...Option) (*Driver, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, storage.Wrap("open", err)
	}

	// One connection keeps ":memory:" databases alive and matches SQLite's
	// single-writer model.
	db.SetMaxOpenConns(1)

	d := &Driver{
		db:  db,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, storage.Wrap("migrate", err)
		}
	}

	return d, nil
}

// Insert implements storage.Driver.
func (d *Driver) Insert(ctx context.Context, providerID string, texts []string) []error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(texts) == 0 {
		return nil
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return storage.Errs(len(texts), storage.Wrap("insert", err))
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO facts (id, text, provider_id, displayed, created_at)
		 VALUES (?, ?, ?, 0, ?)
		 ON CONFLICT (text) DO NOTHING`)
	if err != nil {
		_ = tx.Rollback()
		return storage.Errs(len(texts), storage.Wrap("insert", err))
	}
	defer stmt.Close()

	errs := make([]error, len(texts))
	for i, text := range texts {
		if err := storage.ValidText(text); err != nil {
			errs[i] = err
			continue
		}

		_, err := stmt.ExecContext(ctx, storage.NewID(), text, providerID, d.now().UTC().UnixNano())
		errs[i] = storage.Wrap("insert", err)
	}

	if err := tx.Commit(); err != nil {
		commitErr := storage.Wrap("insert", err)
		for i := range errs {
			if errs[i] == nil {
				errs[i] = commitErr
			}
		}
	}

	return errs
}

// NextUnread implements storage.Driver.
func (d *Driver) NextUnread(ctx context.Context) (*fact.Fact, error) {
	row := d.db.QueryRowContext(ctx,
		selectColumns+` WHERE displayed = 0 ORDER BY created_at DESC, seq DESC LIMIT 1`)

	f, err := scanFact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storage.Wrap("next unread", err)
	}
	return f, nil
}

// MarkAsRead implements storage.Driver.
func (d *Driver) MarkAsRead(ctx context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := d.db.ExecContext(ctx, `UPDATE facts SET displayed = 1 WHERE id = ?`, id)
	return storage.Wrap("mark as read", err)
}

// List implements storage.Driver.
func (d *Driver) List(ctx context.Context, opts storage.ListOptions) ([]*fact.Fact, error) {
	var (
		query strings.Builder
		args  []any
	)
	query.WriteString(selectColumns)
	if opts.UnreadOnly {
		query.WriteString(` WHERE displayed = 0`)
	}
	query.WriteString(` ORDER BY created_at DESC, seq DESC`)
	if opts.Limit > 0 {
		query.WriteString(` LIMIT ?`)
		args = append(args, opts.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, storage.Wrap("list", err)
	}
	defer rows.Close()

	facts := []*fact.Fact{}
	for rows.Next() {
		f, err := scanFact(rows)
		if err != nil {
			return nil, storage.Wrap("list", err)
		}
		facts = append(facts, f)
	}

	return facts, storage.Wrap("list", rows.Err())
}

// Stats implements storage.Driver.
func (d *Driver) Stats(ctx context.Context) (*storage.Stats, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT provider_id, displayed, COUNT(*) FROM facts GROUP BY provider_id, displayed`)
	if err != nil {
		return nil, storage.Wrap("stats", err)
	}
	defer rows.Close()

	stats := storage.NewStats()
	for rows.Next() {
		var (
			providerID string
			displayed  bool
			count      int
		)
		if err := rows.Scan(&providerID, &displayed, &count); err != nil {
			return nil, storage.Wrap("stats", err)
		}
		stats.Add(providerID, displayed, count)
	}

	return stats, storage.Wrap("stats", rows.Err())
}

// Reset implements storage.Driver.
func (d *Driver) Reset(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := d.db.ExecContext(ctx, `DELETE FROM facts`)
	return storage.Wrap("reset", err)
}

// Close implements storage.Driver.
func (d *Driver) Close() error {
	return d.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFact(s scanner) (*fact.Fact, error) {
	var (
		f         fact.Fact
		createdAt int64
	)
	if err := s.Scan(&f.ID, &f.Text, &f.ProviderID, &f.Displayed, &createdAt); err != nil {
		return nil, err
	}
	f.CreatedAt = time.Unix(0, createdAt).UTC()
	return &f, nil
}
