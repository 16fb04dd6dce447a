package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// SQLiteStore keeps records in a single table of a sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

const sqliteSchema = `create table if not exists record (
	key        text primary key,
	data       blob not null,
	updated_at timestamp not null default current_timestamp
)`

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite store: open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite store: enable WAL: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite store: create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, key Key, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`insert into record (key, data) values (?, ?)
		 on conflict(key) do update set data=excluded.data, updated_at=current_timestamp`,
		key.String(), data)
	return err
}

func (s *SQLiteStore) Load(ctx context.Context, key Key) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		"select data from record where key=?", key.String()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(key)
	}
	return data, err
}

func (s *SQLiteStore) Delete(ctx context.Context, key Key) error {
	_, err := s.db.ExecContext(ctx, "delete from record where key=?", key.String())
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
