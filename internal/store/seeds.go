package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/wordseed/internal/model"
	"github.com/roach88/wordseed/internal/seed"
)

// Get returns the seed stored under key.
func (s *Store) Get(ctx context.Context, key string) (model.DailySeed, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT date, seed_hex, theme, pools_version, created_at
		FROM daily_seeds
		WHERE cache_key = ?
	`, key)

	ds, err := scanSeed(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DailySeed{}, false, nil
	}
	if err != nil {
		return model.DailySeed{}, false, fmt.Errorf("get seed %q: %w", key, err)
	}
	return ds, true, nil
}

// PutIfAbsent stores ds under key unless a row exists, then returns the
// stored row.
func (s *Store) PutIfAbsent(ctx context.Context, key string, ds model.DailySeed) (model.DailySeed, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO daily_seeds (cache_key, date, seed_hex, theme, pools_version, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(cache_key) DO NOTHING
	`, key, ds.Date, ds.SeedHex, ds.Theme, ds.PoolsVersion, ds.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return model.DailySeed{}, fmt.Errorf("insert seed %q: %w", key, err)
	}

	stored, ok, err := s.Get(ctx, key)
	if err != nil {
		return model.DailySeed{}, err
	}
	if !ok {
		return model.DailySeed{}, fmt.Errorf("seed %q missing after insert", key)
	}
	return stored, nil
}

// ListRange returns cached seeds whose key starts with keyPrefix and whose
// date is within [first, last], ordered by date then cache key. An empty
// keyPrefix matches every key.
func (s *Store) ListRange(ctx context.Context, keyPrefix, first, last string) ([]model.DailySeed, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, seed_hex, theme, pools_version, created_at
		FROM daily_seeds
		WHERE date >= ? AND date <= ? AND substr(cache_key, 1, ?) = ?
		ORDER BY date ASC, cache_key ASC COLLATE BINARY
	`, first, last, len(keyPrefix), keyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list seeds: %w", err)
	}
	defer rows.Close()

	out := []model.DailySeed{}
	for rows.Next() {
		ds, err := scanSeed(rows)
		if err != nil {
			return nil, fmt.Errorf("scan seed: %w", err)
		}
		out = append(out, ds)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seeds: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSeed(row scanner) (model.DailySeed, error) {
	var (
		ds        model.DailySeed
		createdAt string
	)
	if err := row.Scan(&ds.Date, &ds.SeedHex, &ds.Theme, &ds.PoolsVersion, &createdAt); err != nil {
		return model.DailySeed{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return model.DailySeed{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	ds.CreatedAt = t
	return ds, nil
}

var _ seed.Cache = (*Store)(nil)
