// Package sqlite provides the SQLite-based implementation of driven.ExpenseStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// A single append-only relation:
//
//	expenses(id INTEGER PRIMARY KEY AUTOINCREMENT, date TEXT NOT NULL,
//	         amount REAL NOT NULL, category TEXT NOT NULL,
//	         subcategory TEXT DEFAULT '', note TEXT DEFAULT '')
//
// The schema is managed through versioned golang-migrate migrations embedded
// from the migrations/ directory. Migrations only run when Initialize is
// called; opening a store never changes the schema.
//
// # Data Location
//
// The database lives in a single file, by default expenses.db next to the
// running executable.
//
// # Concurrency
//
// The store holds no mutable state of its own. Each operation borrows a
// connection from the database/sql pool for exactly one statement.
// Concurrent writers, from this process or others, are serialised by SQLite's
// own locking in WAL mode. Every connection sets a 5 second busy timeout, so a
// writer waits for the lock instead of failing with SQLITE_BUSY. Initialize
// is serialised per file inside the process, begins its migration
// transactions IMMEDIATE, and retries while another process has the schema
// version marked dirty.
//
// # Down Migrations
//
// Every migration ships a down file for golang-migrate, but the application
// never runs them. Running 001_create_expenses.down.sql drops the expenses
// table and destroys every stored expense.
package sqlite
