// Package store persists compiled module definitions and ingest
// records in SQLite.
//
// The database serves two purposes: sharing a compiled catalog between
// runs without re-reading config directories, and detecting repeated
// loads of identical projects via the controller fingerprint. It is
// opened in WAL mode with a single writer connection; schema upgrades
// run through user_version migrations on open.
package store
