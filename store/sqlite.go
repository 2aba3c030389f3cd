/*
 * Copyright (c) 2016 Salle, Alexandre <alex@alexsalle.com>
 * Author: Salle, Alexandre <alex@alexsalle.com>
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy of
 * this software and associated documentation files (the "Software"), to deal in
 * the Software without restriction, including without limitation the rights to
 * use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
 * the Software, and to permit persons to whom the Software is furnished to do so,
 * subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
 * FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
 * COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
 * IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
 * CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
 */

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps document vectors in a single table. Every row records
// the id of the run that wrote it.
type SQLiteStore struct {
	db    *sql.DB
	runID string
}

// OpenSQLite opens or creates the database at path with a fresh run id.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open doc vector database: %w", err)
	}
	s := &SQLiteStore{db: db, runID: uuid.NewString()}
	if err := s.initDB(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize doc vector database: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initDB() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS doc_vectors (
			channel TEXT NOT NULL,
			id TEXT NOT NULL,
			dim INTEGER NOT NULL,
			vector BLOB NOT NULL,
			run_id TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (channel, id)
		);
		CREATE INDEX IF NOT EXISTS idx_doc_vectors_run ON doc_vectors(run_id);
	`)
	return err
}

// RunID identifies the rows written through this store.
func (s *SQLiteStore) RunID() string {
	return s.runID
}

func (s *SQLiteStore) PutDocs(channel string, vecs map[string][]float64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO doc_vectors (channel, id, dim, vector, run_id) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, id := range sortedIDs(vecs) {
		v := vecs[id]
		if _, err = stmt.Exec(channel, id, len(v), encodeVec(v), s.runID); err != nil {
			return fmt.Errorf("insert %s/%s: %w", channel, id, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetDoc(channel, id string) ([]float64, error) {
	var b []byte
	err := s.db.QueryRow(`SELECT vector FROM doc_vectors WHERE channel = ? AND id = ?`, channel, id).Scan(&b)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeVec(b)
}

func (s *SQLiteStore) Iterate(channel string, f func(id string, vec []float64) error) error {
	rows, err := s.db.Query(`SELECT id, vector FROM doc_vectors WHERE channel = ? ORDER BY id`, channel)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var b []byte
		if err = rows.Scan(&id, &b); err != nil {
			return err
		}
		v, err := decodeVec(b)
		if err != nil {
			return err
		}
		if err = f(id, v); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
