// Package history keeps a local ledger of scaffolded client projects.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Entry is one successful build.
type Entry struct {
	ID           string
	CreatedAt    time.Time
	Client       string
	NicheCode    string
	NicheName    string
	Root         string
	Directories  int
	FilesCreated []string
	FilesSkipped []string
}

// HistoryDB handles database operations
type HistoryDB struct {
	db *sql.DB
}

// Open creates/opens the history database at path.
func Open(path string) (*HistoryDB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	h := &HistoryDB{db: db}
	if err := h.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return h, nil
}

func (h *HistoryDB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		client TEXT NOT NULL,
		niche_code TEXT NOT NULL,
		niche_name TEXT NOT NULL,
		root TEXT NOT NULL,
		directories INTEGER DEFAULT 0,
		files_created TEXT,
		files_skipped TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_builds_created ON builds(created_at);
	CREATE INDEX IF NOT EXISTS idx_builds_client ON builds(client);
	`

	_, err := h.db.Exec(schema)
	return err
}

// Record saves e, filling in ID and CreatedAt when they are empty.
func (h *HistoryDB) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	created, err := json.Marshal(nonNil(e.FilesCreated))
	if err != nil {
		return e, err
	}
	skipped, err := json.Marshal(nonNil(e.FilesSkipped))
	if err != nil {
		return e, err
	}

	query := `
	INSERT INTO builds (
		id, created_at, client, niche_code, niche_name, root,
		directories, files_created, files_skipped
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = h.db.ExecContext(ctx, query,
		e.ID, e.CreatedAt, e.Client, e.NicheCode, e.NicheName, e.Root,
		e.Directories, string(created), string(skipped),
	)
	if err != nil {
		return e, fmt.Errorf("failed to record build: %w", err)
	}
	return e, nil
}

// List returns up to limit entries, newest first. A limit <= 0 returns all.
func (h *HistoryDB) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `
	SELECT id, created_at, client, niche_code, niche_name, root,
		directories, files_created, files_skipped
	FROM builds ORDER BY created_at DESC, rowid DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created, skipped sql.NullString

		err := rows.Scan(
			&e.ID, &e.CreatedAt, &e.Client, &e.NicheCode, &e.NicheName,
			&e.Root, &e.Directories, &created, &skipped,
		)
		if err != nil {
			return nil, err
		}

		if created.Valid && created.String != "" {
			json.Unmarshal([]byte(created.String), &e.FilesCreated)
		}
		if skipped.Valid && skipped.String != "" {
			json.Unmarshal([]byte(skipped.String), &e.FilesSkipped)
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// CountByClient returns how many builds were recorded for client.
func (h *HistoryDB) CountByClient(ctx context.Context, client string) (int, error) {
	var count int
	err := h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM builds WHERE client = ?`, client).Scan(&count)
	return count, err
}

func (h *HistoryDB) Close() error {
	return h.db.Close()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
