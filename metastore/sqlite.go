package metastore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/hupe1980/songchain/model"
)

// SQLite is a Store backed by a SQLite database file. The driver is pure Go,
// so the store works without cgo.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// NewSQLite opens (and if needed creates) the track catalog at dbPath.
func NewSQLite(dbPath string) (*SQLite, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLite{db: db}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return s, nil
}

func (s *SQLite) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tracks (
		track_id     TEXT PRIMARY KEY,
		title        TEXT NOT NULL DEFAULT '',
		artist       TEXT NOT NULL DEFAULT '',
		source_group TEXT NOT NULL DEFAULT '',
		tempo        REAL,
		excluded     INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_tracks_source_group ON tracks(source_group);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Upsert inserts or replaces tracks.
func (s *SQLite) Upsert(ctx context.Context, tracks ...model.Track) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, t := range tracks {
		var tempo sql.NullFloat64
		if t.Tempo != nil {
			tempo = sql.NullFloat64{Float64: *t.Tempo, Valid: true}
		}

		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO tracks (track_id, title, artist, source_group, tempo, excluded)
			VALUES (?, ?, ?, ?, ?, ?)
		`, t.ID, t.Title, t.Artist, t.SourceGroup, tempo, boolToInt(t.Excluded))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetMany fetches tracks by id. Ids without a row are absent from the map.
func (s *SQLite) GetMany(ctx context.Context, ids []string) (map[string]model.Track, error) {
	found := make(map[string]model.Track, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT track_id, title, artist, source_group, tempo, excluded
		FROM tracks WHERE track_id IN (%s)
	`, placeholders), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			t        model.Track
			tempo    sql.NullFloat64
			excluded int
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Artist, &t.SourceGroup, &tempo, &excluded); err != nil {
			return nil, err
		}
		if tempo.Valid {
			t.Tempo = &tempo.Float64
		}
		t.Excluded = excluded != 0

		found[t.ID] = t
	}

	return found, rows.Err()
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
