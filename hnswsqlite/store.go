// Package hnswsqlite persists HNSW graph snapshots to a SQLite database. It
// adapts the teacher's JsonStructLocalStore/GobStructLocalStore pair
// (hnsw/store.go) into a third on-disk form backed by a real embedded
// database rather than a flat file, wiring the module's otherwise-unused
// github.com/mattn/go-sqlite3 dependency into a concrete component.
//
// This package is a thin convenience layer over Core.Serialize /
// hnsw.Deserialize; it has no opinion on graph semantics.
package hnswsqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store is a SQLite-backed table of named graph snapshots.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) a SQLite database at path and ensures its
// snapshot table exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("hnswsqlite: open %s: %w", path, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS hnsw_snapshot (
		name    TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("hnswsqlite: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Save writes payload (the output of Core.Serialize) under name, replacing
// any snapshot previously stored under the same name.
func (s *Store) Save(name string, payload []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO hnsw_snapshot(name, payload) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET payload = excluded.payload`,
		name, payload,
	)
	if err != nil {
		return fmt.Errorf("hnswsqlite: save %s: %w", name, err)
	}
	return nil
}

// Load returns the payload previously stored under name, suitable for
// passing to hnsw.Deserialize.
func (s *Store) Load(name string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM hnsw_snapshot WHERE name = ?`, name).Scan(&payload)
	if err != nil {
		return nil, fmt.Errorf("hnswsqlite: load %s: %w", name, err)
	}
	return payload, nil
}

// Names lists every snapshot name currently stored.
func (s *Store) Names() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM hnsw_snapshot ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("hnswsqlite: list names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("hnswsqlite: scan name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
