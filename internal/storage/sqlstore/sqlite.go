// Package sqlstore implements the key-value contract on top of an embedded
// document table, with sqlite and postgres drivers sharing one schema.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/mlebedeva/tastebook/internal/common"
	"github.com/mlebedeva/tastebook/internal/dbx"
	"github.com/mlebedeva/tastebook/internal/storage/sqlstore/migrations"
)

type SQLiteStore struct {
	db dbx.DBTX
}

func NewSQLiteStore(db dbx.DBTX) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// OpenSQLite opens (or creates) an embedded sqlite database at dsn and runs
// the schema migrations.
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		log.Fatal("failed to set goose dialect:", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, err
	}
	return db, nil
}

func (s *SQLiteStore) Write(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write documents[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Read(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM documents WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read documents[%s]: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete documents[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents`)
	if err != nil {
		return fmt.Errorf("failed to clear documents: %w", err)
	}
	return nil
}
