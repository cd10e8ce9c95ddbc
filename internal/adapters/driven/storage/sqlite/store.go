package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/opencourse-labs/virta/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/opencourse-labs/virta/internal/core/domain"
	"github.com/opencourse-labs/virta/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.KnowledgeStore = (*Store)(nil)

// Store is the SQLite-backed knowledge store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.virta/data/knowledge.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".virta", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "knowledge.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Save stores or updates a document.
func (s *Store) Save(ctx context.Context, doc *domain.Document) error {
	if err := validateDocument(doc); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, collection, title, content, url, section, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			url = excluded.url,
			section = excluded.section,
			created_at = excluded.created_at
	`, doc.ID, string(doc.Collection), doc.Title, doc.Content, doc.URL, doc.Section, nullTime(doc.CreatedAt))

	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// SaveBatch stores or updates documents in a single transaction.
func (s *Store) SaveBatch(ctx context.Context, docs []domain.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (id, collection, title, content, url, section, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			url = excluded.url,
			section = excluded.section,
			created_at = excluded.created_at
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i := range docs {
		doc := &docs[i]
		if err := validateDocument(doc); err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, doc.ID, string(doc.Collection), doc.Title,
			doc.Content, doc.URL, doc.Section, nullTime(doc.CreatedAt)); err != nil {
			return fmt.Errorf("saving document %s: %w", doc.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Get retrieves a document by collection and ID.
func (s *Store) Get(ctx context.Context, collection domain.Collection, id string) (*domain.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, collection, title, content, url, section, created_at
		FROM documents WHERE collection = ? AND id = ?
	`, string(collection), id)

	doc, err := scanDocument(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return doc, nil
}

// List returns all documents in a collection.
func (s *Store) List(ctx context.Context, collection domain.Collection) ([]domain.Document, error) {
	return s.queryDocuments(ctx, `
		SELECT id, collection, title, content, url, section, created_at
		FROM documents WHERE collection = ?
		ORDER BY created_at DESC, id
	`, string(collection))
}

// ListAll returns every stored document across collections.
func (s *Store) ListAll(ctx context.Context) ([]domain.Document, error) {
	return s.queryDocuments(ctx, `
		SELECT id, collection, title, content, url, section, created_at
		FROM documents
		ORDER BY created_at DESC, id
	`)
}

// Stats returns per-collection counts and the newest document timestamp.
func (s *Store) Stats(ctx context.Context) (driven.StoreStats, error) {
	stats := driven.StoreStats{Counts: make(map[domain.Collection]int)}

	rows, err := s.db.QueryContext(ctx, `
		SELECT collection, COUNT(*), MAX(created_at)
		FROM documents GROUP BY collection
	`)
	if err != nil {
		return stats, fmt.Errorf("querying stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var collection string
		var count int
		// MAX() strips the column's DATETIME decltype, so the driver
		// returns the stored string rather than a time.Time.
		var newest sql.NullString
		if err := rows.Scan(&collection, &count, &newest); err != nil {
			return stats, fmt.Errorf("scanning stats: %w", err)
		}
		stats.Counts[domain.Collection(collection)] = count
		if newest.Valid {
			ts, err := time.Parse("2006-01-02 15:04:05.999999999 -0700 MST", newest.String)
			if err != nil {
				return stats, fmt.Errorf("scanning stats: %w", err)
			}
			if ts.After(stats.LastUpdated) {
				stats.LastUpdated = ts
			}
		}
	}

	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("iterating stats: %w", err)
	}
	return stats, nil
}

// queryDocuments runs a document query and scans all rows.
func (s *Store) queryDocuments(ctx context.Context, query string, args ...any) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// scanDocument scans one document row via the given scan function.
func scanDocument(scan func(...any) error) (*domain.Document, error) {
	var doc domain.Document
	var collection string
	var createdAt sql.NullTime

	if err := scan(&doc.ID, &collection, &doc.Title, &doc.Content,
		&doc.URL, &doc.Section, &createdAt); err != nil {
		return nil, err
	}

	doc.Collection = domain.Collection(collection)
	if createdAt.Valid {
		doc.CreatedAt = createdAt.Time
	}
	return &doc, nil
}

// validateDocument enforces the store invariants: non-empty content,
// non-empty ID, known collection.
func validateDocument(doc *domain.Document) error {
	if doc.ID == "" || doc.Content == "" || !doc.Collection.Valid() {
		return domain.ErrInvalidInput
	}
	return nil
}

// nullTime maps the zero time to SQL NULL.
func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t.UTC(), Valid: !t.IsZero()}
}
