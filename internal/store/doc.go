// Package store persists the project collection in a SQLite database.
//
// The collection is stored as a single JSON document, rewritten in full on
// every save. An advisory file lock next to the database keeps a second
// flipbook process from opening the same data directory.
package store
