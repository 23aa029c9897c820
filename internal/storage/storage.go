package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// keyPrefix versions the key namespace as a whole. Payload versioning lives
// inside the envelope value, so this prefix never needs to change for a
// format migration.
const keyPrefix = "matchday"

// Key builds the canonical storage key for a domain and identifier.
// Every cached snapshot must go through this builder; domains map to
// disjoint prefixes by construction because the separator is reserved.
func Key(domain, id string) string {
	domain = strings.ReplaceAll(domain, ":", "_")
	if id == "" {
		return keyPrefix + ":" + domain
	}
	return keyPrefix + ":" + domain + ":" + id
}

// InitDB opens the cache database and ensures the schema is up to date.
// For local-only databases, dbPath is the filename. When primaryURL is set,
// the remote Turso database is used instead.
func InitDB(dbPath, primaryURL, authToken, migrationsDir string) (*sql.DB, func(), error) {
	var (
		db  *sql.DB
		err error
	)
	if primaryURL == "" {
		log.Info("Initializing local cache database", "path", dbPath)
		db, err = sql.Open("sqlite3", dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open local database: %w", err)
		}
	} else {
		log.Info("Initializing Turso cache database", "url", primaryURL)
		db, err = sql.Open("libsql", primaryURL+"?authToken="+authToken)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open db %s: %w", primaryURL, err)
		}
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, migrationsDir); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	teardown := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close cache database", "error", err)
		}
	}
	return db, teardown, nil
}

// store persists blobs in the cache_entries table.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a Store backed by the given database.
func New(db *sql.DB) Store {
	return &store{db: db}
}

func (s *store) Get(key string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value []byte
	err := s.db.QueryRow("SELECT value FROM cache_entries WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Error("Cache read failed, treating as miss", "key", key, "error", err)
		}
		return nil
	}
	return value
}

func (s *store) Set(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Single upsert statement so a failure leaves no partial write behind.
	_, err := s.db.Exec(`
		INSERT INTO cache_entries (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at;
	`, key, value, time.Now().Unix())
	if err != nil {
		log.Error("Cache write failed, dropping entry", "key", key, "error", err)
	}
}

func (s *store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM cache_entries WHERE key = ?", key); err != nil {
		log.Error("Cache delete failed", "key", key, "error", err)
	}
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM cache_entries"); err != nil {
		log.Error("Cache clear failed", "error", err)
	}
}
