package scorecache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hupe1980/songchain/codec"
	"github.com/hupe1980/songchain/model"
)

// SQLiteOptions configures a SQLite cache.
type SQLiteOptions struct {
	// Codec serializes the stored rows. Defaults to codec.Default.
	Codec codec.Codec
}

// SQLite is a Cache backed by a SQLite database file. The driver is pure Go,
// so the cache works without cgo.
type SQLite struct {
	db    *sql.DB
	codec codec.Codec
}

var _ Cache = (*SQLite)(nil)

// NewSQLite opens (and if needed creates) the cache database at dbPath.
func NewSQLite(dbPath string, optFns ...func(*SQLiteOptions)) (*SQLite, error) {
	opts := SQLiteOptions{
		Codec: codec.Default,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLite{db: db, codec: opts.Codec}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return s, nil
}

func (s *SQLite) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS score_cache (
		collection  TEXT NOT NULL,
		track_id    TEXT NOT NULL,
		params_hash TEXT NOT NULL,
		results     BLOB NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		PRIMARY KEY (collection, track_id, params_hash)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Get returns the cached results for key.
func (s *SQLite) Get(ctx context.Context, key Key) ([]model.SimilarityCandidate, bool, error) {
	var data []byte

	err := s.db.QueryRowContext(ctx, `
		SELECT results FROM score_cache
		WHERE collection = ? AND track_id = ? AND params_hash = ?
	`, key.Collection, key.TrackID, key.ParamsHash).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var results []model.SimilarityCandidate
	if err := s.codec.Unmarshal(data, &results); err != nil {
		return nil, false, NewDecodeError(key, err)
	}

	return results, true, nil
}

// Save inserts or overwrites the results for key. An existing row keeps its
// created_at and gets a fresh updated_at.
func (s *SQLite) Save(ctx context.Context, key Key, results []model.SimilarityCandidate) error {
	data, err := s.codec.Marshal(results)
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO score_cache (collection, track_id, params_hash, results, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (collection, track_id, params_hash) DO UPDATE SET
			results = excluded.results,
			updated_at = excluded.updated_at
	`, key.Collection, key.TrackID, key.ParamsHash, data, now, now)

	return err
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
