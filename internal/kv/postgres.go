package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
)

// Postgres keeps entries in the kv_entries table created by the migrations.
type Postgres struct {
	DB *sql.DB
}

// OpenPostgres opens and pings a lib/pq connection.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Postgres{DB: db}, nil
}

func (p *Postgres) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := p.DB.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key=$1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

const upsertEntry = `INSERT INTO kv_entries (key, value, updated_at) VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=NOW()`

func (p *Postgres) Set(ctx context.Context, key, value string) error {
	_, err := p.DB.ExecContext(ctx, upsertEntry, key, value)
	return err
}

// SetMany upserts every entry inside one transaction.
func (p *Postgres) SetMany(ctx context.Context, entries []Entry) error {
	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, upsertEntry, e.Key, e.Value); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("upsert %s: %w", e.Key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	_, err := p.DB.ExecContext(ctx, `DELETE FROM kv_entries WHERE key=$1`, key)
	return err
}

// Close releases the connection pool.
func (p *Postgres) Close() error {
	return p.DB.Close()
}
