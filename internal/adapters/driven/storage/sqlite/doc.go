// Package sqlite provides a unified SQLite-based implementation of the knowledge stores.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements every store interface
// through a single database connection:
//
//   - SourceStore: Ingested source persistence
//   - ChunkStore: Chunk persistence
//   - KeywordStore: Keyword persistence
//   - JunctionStore: Chunk/keyword link persistence
//   - SummaryStore: Keyword summary cache
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Foreign keys cascade every row of a source when the source is deleted.
//
// # Data Location
//
// By default, the database is stored at ~/.synaptext/data/knowledge.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
