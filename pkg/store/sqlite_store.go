package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	key         TEXT PRIMARY KEY,
	blob        BLOB NOT NULL,
	snapshot_id TEXT NOT NULL,
	updated_at  TEXT NOT NULL,
	extra       TEXT NOT NULL DEFAULT ''
);`

// sqlitePragmas are applied via EXEC on open (driver-agnostic).
var sqlitePragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 10000",
	"PRAGMA synchronous = NORMAL",
	"PRAGMA foreign_keys = ON",
}

// SQLiteStore persists snapshot blobs in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens path (created if missing), applies the production pragmas
// and prepares the snapshot table.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	if path == ":memory:" {
		// Each pooled connection to :memory: gets its own database.
		db.SetMaxOpenConns(1)
	}
	for _, pragma := range sqlitePragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: apply %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Load(ctx context.Context, ref Ref) ([]byte, Meta, bool, error) {
	key, err := ref.Identifier()
	if err != nil {
		return nil, Meta{}, false, err
	}

	var (
		blob      []byte
		meta      Meta
		updatedAt string
		extra     string
	)
	row := s.db.QueryRowContext(ctx,
		`SELECT blob, snapshot_id, updated_at, extra FROM snapshots WHERE key = ?`, key)
	if err := row.Scan(&blob, &meta.SnapshotID, &updatedAt, &extra); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, Meta{}, false, nil
		}
		return nil, Meta{}, false, fmt.Errorf("store: load %q: %w", key, err)
	}

	meta.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return nil, Meta{}, false, fmt.Errorf("store: load %q: parse updated_at: %w", key, err)
	}
	if extra != "" {
		if err := json.Unmarshal([]byte(extra), &meta.Extra); err != nil {
			return nil, Meta{}, false, fmt.Errorf("store: load %q: parse extra: %w", key, err)
		}
	}
	return blob, meta, true, nil
}

func (s *SQLiteStore) Save(ctx context.Context, ref Ref, blob []byte, meta Meta) (Meta, error) {
	key, err := ref.Identifier()
	if err != nil {
		return Meta{}, err
	}
	meta = stampMeta(meta, time.Now().UTC())

	extra := ""
	if len(meta.Extra) > 0 {
		raw, err := json.Marshal(meta.Extra)
		if err != nil {
			return Meta{}, fmt.Errorf("store: save %q: encode extra: %w", key, err)
		}
		extra = string(raw)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, blob, snapshot_id, updated_at, extra)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			blob = excluded.blob,
			snapshot_id = excluded.snapshot_id,
			updated_at = excluded.updated_at,
			extra = excluded.extra`,
		key, blob, meta.SnapshotID, meta.UpdatedAt.Format(time.RFC3339Nano), extra)
	if err != nil {
		return Meta{}, fmt.Errorf("store: save %q: %w", key, err)
	}
	return cloneMeta(meta), nil
}
