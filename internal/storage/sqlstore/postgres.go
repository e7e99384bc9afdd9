package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mlebedeva/tastebook/internal/common"
	"github.com/mlebedeva/tastebook/internal/dbx"
	"github.com/mlebedeva/tastebook/internal/storage/sqlstore/migrations"
)

type PostgresStore struct {
	db dbx.DBTX
}

func NewPostgresStore(db dbx.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgres connects to the database at dsn and runs the schema migrations.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("failed to set goose dialect:", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, err
	}
	return db, nil
}

func (s *PostgresStore) Write(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (key, value) VALUES ($1, $2)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write documents[%s]: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Read(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM documents WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read documents[%s]: %w", key, err)
	}
	return value, nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete documents[%s]: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents`)
	if err != nil {
		return fmt.Errorf("failed to clear documents: %w", err)
	}
	return nil
}
