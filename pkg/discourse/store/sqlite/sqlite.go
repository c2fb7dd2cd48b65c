// Package sqlite persists the conversation caches in a single SQLite
// database, useful when several assistants on one machine share their
// caches or when the flat files grow unwieldy.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/cognicore/discourse/pkg/discourse/model"
	"github.com/cognicore/discourse/pkg/discourse/nlp"
	"github.com/cognicore/discourse/pkg/discourse/store"
	"github.com/cognicore/discourse/pkg/discourse/wordnet"
)

type sqliteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) a SQLite cache database with WAL mode
// enabled.
func Open(ctx context.Context, path string) (store.CacheStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS annotations (
	text TEXT PRIMARY KEY,
	tokens TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS equivalences (
	w1 TEXT NOT NULL,
	w2 TEXT NOT NULL,
	equal INTEGER NOT NULL,
	PRIMARY KEY(w1, w2)
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// LoadAnnotations reads every cached annotation.
func (s *sqliteStore) LoadAnnotations(ctx context.Context) ([]nlp.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT text, tokens FROM annotations ORDER BY text`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []nlp.Entry
	for rows.Next() {
		var (
			e          nlp.Entry
			tokensJSON string
		)
		if err := rows.Scan(&e.Text, &tokensJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(tokensJSON), &e.Tokens); err != nil {
			return nil, fmt.Errorf("annotation row %q: %w", e.Text, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SaveAnnotations replaces the annotation table contents in one transaction.
func (s *sqliteStore) SaveAnnotations(ctx context.Context, entries []nlp.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM annotations`); err != nil {
		return err
	}

	if len(entries) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO annotations (text, tokens) VALUES (?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, e := range entries {
			tokens := e.Tokens
			if tokens == nil {
				tokens = []model.Token{}
			}
			tokensJSON, err := json.Marshal(tokens)
			if err != nil {
				return err
			}
			if _, err := stmt.ExecContext(ctx, e.Text, string(tokensJSON)); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// LoadEquivalences reads every cached equivalence decision.
func (s *sqliteStore) LoadEquivalences(ctx context.Context) ([]wordnet.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT w1, w2, equal FROM equivalences ORDER BY w1, w2`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []wordnet.Entry
	for rows.Next() {
		var e wordnet.Entry
		if err := rows.Scan(&e.W1, &e.W2, &e.Equal); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SaveEquivalences replaces the equivalence table contents in one
// transaction.
func (s *sqliteStore) SaveEquivalences(ctx context.Context, entries []wordnet.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM equivalences`); err != nil {
		return err
	}

	if len(entries) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO equivalences (w1, w2, equal) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, e := range entries {
			if _, err := stmt.ExecContext(ctx, e.W1, e.W2, e.Equal); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}
