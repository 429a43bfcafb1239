package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"flipbook/internal/config"
	"flipbook/internal/project"
)

const collectionKey = "projects"

// Store manages project persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

// Open initializes or connects to the project database, applies the schema,
// and takes the single-instance lock for the data directory.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(filepath.Join(cfg.Paths.DataDir, "flipbook.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire data directory lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("data directory %s is in use by another flipbook process", cfg.Paths.DataDir)
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "projects.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, lock: lock, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Close closes the database connection and releases the instance lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var dbErr error
	if s.db != nil {
		dbErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && dbErr == nil {
			dbErr = fmt.Errorf("release data directory lock: %w", err)
		}
	}
	return dbErr
}

// Path returns the database file path.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Load reads the persisted collection. A database with no saved collection
// yet loads as empty.
func (s *Store) Load(ctx context.Context) (project.Collection, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM collections WHERE key = ?", collectionKey,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return project.Collection{}, nil
	}
	if err != nil {
		return project.Collection{}, fmt.Errorf("read collection: %w", err)
	}

	var collection project.Collection
	if err := json.Unmarshal([]byte(payload), &collection); err != nil {
		return project.Collection{}, fmt.Errorf("decode collection: %w", err)
	}
	return collection, nil
}

// Save rewrites the full collection in a single transaction.
func (s *Store) Save(ctx context.Context, collection project.Collection) error {
	payload, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO collections (key, payload, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		collectionKey,
		string(payload),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("write collection: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit collection: %w", err)
	}
	return nil
}

// CheckHealth verifies the database is reachable and structurally sound.
func (s *Store) CheckHealth(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New("store is not open")
	}
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	var result string
	if err := s.db.QueryRowContext(ctx, "PRAGMA integrity_check").Scan(&result); err != nil {
		return fmt.Errorf("integrity check: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("integrity check reported %q", result)
	}

	var rows int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM collections").Scan(&rows); err != nil {
		return fmt.Errorf("inspect collections table: %w", err)
	}
	return nil
}
