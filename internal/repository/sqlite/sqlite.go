package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/msomdec/shelfnotes/internal/repository/sqlite/schema"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite handle and hands out the repositories that share it.
type DB struct {
	SqlDB *sql.DB
}

// New opens a SQLite database at the given path and configures it for use.
// The parent directory is created if it does not exist. It enables WAL mode
// and foreign keys.
func New(dbPath string) (*DB, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single connection keeps the pragmas below in effect for every query
	// and leaves writer serialization to the engine.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Enable foreign key enforcement.
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// EnsureSchema creates the users, books and quotes tables if they are missing.
func (db *DB) EnsureSchema(ctx context.Context) error {
	return schema.Apply(ctx, db.SqlDB)
}

// Close releases the underlying handle.
func (db *DB) Close() error {
	return db.SqlDB.Close()
}

// Users returns a UserRepository backed by this database.
func (db *DB) Users() *UserRepository {
	return NewUserRepository(db)
}

// Books returns a BookRepository backed by this database.
func (db *DB) Books() *BookRepository {
	return NewBookRepository(db)
}

// Quotes returns a QuoteRepository backed by this database.
func (db *DB) Quotes() *QuoteRepository {
	return NewQuoteRepository(db)
}
