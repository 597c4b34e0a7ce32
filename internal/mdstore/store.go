// Package mdstore persists a session's accepted `let`/`type` definitions
// to a SQLite database, so a later run of pkg/mandalang can replay them
// and rebuild the same globals. There is no equivalent in the original
// engine, whose loader.hpp only reads a single file into memory and does
// not compile (see DESIGN.md); this is a fresh component exercising
// modernc.org/sqlite, the teacher's pure-Go database driver.
package mdstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite-backed database of retained fragments for one
// named session.
type Store struct {
	db *sql.DB
}

// Fragment is one row of retained source, in the order it was accepted.
type Fragment struct {
	ID        string
	Source    string
	Sequence  int
	CreatedAt time.Time
}

// Open opens (creating if necessary) the SQLite database at path and
// ensures its schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("mdstore: opening %s: %w", path, err)
	}
	store := &Store{db: db}
	if err := store.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS fragments (
	id         TEXT PRIMARY KEY,
	session    TEXT NOT NULL,
	sequence   INTEGER NOT NULL,
	source     TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS fragments_session_sequence ON fragments(session, sequence);
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("mdstore: migrating schema: %w", err)
	}
	return nil
}

// SaveFragment appends one accepted fragment to session, recording id and
// source along with the next sequence number in that session.
func (s *Store) SaveFragment(ctx context.Context, session, id, source string, createdAt time.Time) error {
	next, err := s.nextSequence(ctx, session)
	if err != nil {
		return err
	}
	const insert = `INSERT INTO fragments (id, session, sequence, source, created_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, insert, id, session, next, source, createdAt); err != nil {
		return fmt.Errorf("mdstore: saving fragment %s: %w", id, err)
	}
	return nil
}

func (s *Store) nextSequence(ctx context.Context, session string) (int, error) {
	var max sql.NullInt64
	const query = `SELECT MAX(sequence) FROM fragments WHERE session = ?`
	if err := s.db.QueryRowContext(ctx, query, session).Scan(&max); err != nil {
		return 0, fmt.Errorf("mdstore: reading sequence for %s: %w", session, err)
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64) + 1, nil
}

// LoadSession returns every fragment saved under session, ordered by the
// sequence it was originally accepted in.
func (s *Store) LoadSession(ctx context.Context, session string) ([]Fragment, error) {
	const query = `SELECT id, sequence, source, created_at FROM fragments WHERE session = ? ORDER BY sequence ASC`
	rows, err := s.db.QueryContext(ctx, query, session)
	if err != nil {
		return nil, fmt.Errorf("mdstore: loading session %s: %w", session, err)
	}
	defer rows.Close()

	var fragments []Fragment
	for rows.Next() {
		var f Fragment
		if err := rows.Scan(&f.ID, &f.Sequence, &f.Source, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("mdstore: scanning fragment row: %w", err)
		}
		fragments = append(fragments, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mdstore: reading session %s: %w", session, err)
	}
	return fragments, nil
}
