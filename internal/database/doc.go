// Package database provides SQLite-based storage for blackholecalc.
//
// This package implements the RunDB, an index of saved runs that backs the
// history command. Each row carries the searchable parameters of a run
// (model class, mass, spin, charge, fingerprint) plus the complete run as
// JSON, so a run can be shown or compared without its run directory.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode lets one analyze save while another process reads history
package database
