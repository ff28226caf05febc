// Package store persists (id, vector) entries in SQLite and rebuilds M-trees
// from them. It includes:
//   - Entry model and SQLiteStore: durable storage for indexed payloads
//   - Schema helpers to create the entries table
//   - Vector encoding (BLOB) shared with the engine SQL functions
//   - LoadTree and Collection: replaying rows into an in-memory M-tree
//
// Only the user's payload is persisted; tree structure never leaves memory.
package store
