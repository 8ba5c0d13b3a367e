// Package sqlite provides a SQLite implementation of the narrative stores.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/lore-oracle/internal/domain/entities"
	"github.com/ersonp/lore-oracle/internal/domain/ports"
	"github.com/ersonp/lore-oracle/internal/infrastructure/config"
)

// Repository implements the catalog, event, chapter, generation and dataset
// ports using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

var (
	_ ports.EventStore      = (*Repository)(nil)
	_ ports.ChapterStore    = (*Repository)(nil)
	_ ports.GenerationStore = (*Repository)(nil)
	_ ports.DatasetWriter   = (*Repository)(nil)
)

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	// Pragmas in the DSN apply to every pooled connection
	dsn := cfg.Path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Every connection to :memory: is a separate database
	if cfg.Path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// Ping checks that the database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Characters, places and objects share one table, split by kind
	CREATE TABLE IF NOT EXISTS entities (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL CHECK (kind IN ('character', 'place', 'object')),
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_entities_kind ON entities(kind);
	CREATE INDEX IF NOT EXISTS idx_entities_name ON entities(kind, name COLLATE NOCASE);

	CREATE TABLE IF NOT EXISTS generations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		place_id TEXT REFERENCES entities(id) ON DELETE SET NULL,
		generation_id TEXT REFERENCES generations(id) ON DELETE SET NULL
	);
	CREATE INDEX IF NOT EXISTS idx_events_place ON events(place_id);

	-- Characters involved in an event, in the order they were listed
	CREATE TABLE IF NOT EXISTS event_characters (
		event_id TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		character_id TEXT NOT NULL REFERENCES entities(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		PRIMARY KEY (event_id, character_id)
	);
	CREATE INDEX IF NOT EXISTS idx_event_characters_character ON event_characters(character_id);

	CREATE TABLE IF NOT EXISTS chapters (
		number INTEGER PRIMARY KEY CHECK (number > 0)
	);

	-- Events narrated in a chapter, in narration order
	CREATE TABLE IF NOT EXISTS chapter_events (
		chapter_number INTEGER NOT NULL REFERENCES chapters(number) ON DELETE CASCADE,
		event_id TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		PRIMARY KEY (chapter_number, event_id)
	);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Catalog returns the read-only catalog of one entity kind.
func (r *Repository) Catalog(kind entities.EntityKind) ports.EntityCatalog {
	return &catalog{db: r.db, kind: kind}
}

// Catalogs returns the catalogs used by the question pipeline. The object
// catalog is left nil when withObjects is false.
func (r *Repository) Catalogs(withObjects bool) ports.Catalogs {
	c := ports.Catalogs{
		Characters: r.Catalog(entities.KindCharacter),
		Places:     r.Catalog(entities.KindPlace),
	}
	if withObjects {
		c.Objects = r.Catalog(entities.KindObject)
	}
	return c
}

// placeholders builds "?, ?, ?" for an IN clause and the matching args.
func placeholders(values []string) (string, []any) {
	marks := make([]string, len(values))
	args := make([]any, len(values))
	for i, v := range values {
		marks[i] = "?"
		args[i] = v
	}
	return strings.Join(marks, ", "), args
}

// nullable maps an empty reference to SQL NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
