// Package store provides SQLite-backed storage for health records.
//
// The store owns a single table:
//
//	records(id, name, code, details, status, timestamp)
//
// and exposes exactly the statements the form interface needs: insert,
// status update and name search. Rows are never deleted.
//
// # Invariants
//
//   - id is assigned by SQLite AUTOINCREMENT and never reused
//   - status is written as Active on insert; MarkCured is the only writer
//     that changes it afterwards
//   - timestamp is written once on insert from the store clock
//   - SearchByName orders by id DESC (most recent first)
//
// # Database Configuration
//
//   - WAL mode
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - one open connection (single writer, and keeps ":memory:" databases alive)
//
// The schema is identical to the one written by earlier versions of the
// tool, so an existing health_records.db opens unchanged.
package store
