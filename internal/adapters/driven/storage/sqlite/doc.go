// Package sqlite provides the SQLite-backed knowledge store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. The store holds two
// logical collections in a single documents table: scraped forum posts and
// course content sections.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory as .up.sql files embedded at compile time.
//
// # Data Location
//
// By default, the database is stored at ~/.virta/data/knowledge.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode; query handling only ever reads.
package sqlite
