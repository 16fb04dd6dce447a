package store

import (
	"context"
	"errors"

	"github.com/mpapenbr/ghostlap-go/pkg/repository"
	"github.com/mpapenbr/ghostlap-go/pkg/repository/record"
)

// PostgresStore keeps records in the table "record" (see pkg/db/migrate).
type PostgresStore struct {
	conn repository.Querier
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(conn repository.Querier) *PostgresStore {
	return &PostgresStore{conn: conn}
}

func (s *PostgresStore) Save(ctx context.Context, key Key, data []byte) error {
	return record.Upsert(ctx, s.conn, &record.DbRecord{
		Key:      key.String(),
		Kind:     string(key.Kind),
		Scope:    key.Scope,
		LapCount: key.LapCount,
		Data:     data,
	})
}

func (s *PostgresStore) Load(ctx context.Context, key Key) ([]byte, error) {
	rec, err := record.LoadByKey(ctx, s.conn, key.String())
	if errors.Is(err, repository.ErrNoData) {
		return nil, notFound(key)
	}
	if err != nil {
		return nil, err
	}
	return rec.Data, nil
}

func (s *PostgresStore) Delete(ctx context.Context, key Key) error {
	_, err := record.DeleteByKey(ctx, s.conn, key.String())
	return err
}

// Close is a no-op, the pool is owned by the caller.
func (s *PostgresStore) Close() error {
	return nil
}
