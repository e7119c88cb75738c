package kv

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/edunova/colegio/core"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS slots (
	key        TEXT PRIMARY KEY,
	doc        BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// SQLite stores documents in a single-file database, one row per slot.
type SQLite struct {
	db *sqlx.DB
}

var _ core.KVStore = (*SQLite)(nil)

func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to sqlite")
	}
	if _, err = db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating slots table")
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(key string) ([]byte, bool, error) {
	var doc []byte
	err := s.db.Get(&doc, `SELECT doc FROM slots WHERE key = ?`, key)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, "reading %q", key)
	}
	return doc, true, nil
}

func (s *SQLite) Set(key string, doc []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO slots (key, doc, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (key) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		key, doc, time.Now().UTC(),
	)
	return errors.Wrapf(err, "writing %q", key)
}

func (s *SQLite) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM slots WHERE key = ?`, key)
	return errors.Wrapf(err, "deleting %q", key)
}

func (s *SQLite) Close() error { return s.db.Close() }
