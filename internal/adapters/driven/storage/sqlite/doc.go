// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - FragmentStore: Fragment persistence with hydrated reads
//   - LinkStore: The typed, weighted link index
//   - DecisionStore: Extracted decision persistence
//   - AssumptionStore: Assumption persistence and validity updates
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Referential integrity is enforced in the schema: deleting a fragment cascades
// to its decisions, assumptions and links, and clears invalidated_by references
// pointing at it.
//
// # Data Location
//
// By default, the database is stored at ~/.provo/data/provenance.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
