//nolint:whitespace // can't make both editor and linter happy
package record

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mpapenbr/ghostlap-go/pkg/repository"
)

// DbRecord is a row of the record table.
type DbRecord struct {
	Key       string
	Kind      string
	Scope     string
	LapCount  int
	Data      []byte
	UpdatedAt time.Time
}

var selector = `select r.key, r.kind, r.scope, r.lap_count, r.data, r.updated_at
	from record r`

// Upsert stores the record, replacing the data of an existing key.
func Upsert(ctx context.Context, conn repository.Querier, rec *DbRecord) error {
	_, err := conn.Exec(ctx, `
	insert into record (
		key, kind, scope, lap_count, data
	) values ($1,$2,$3,$4,$5)
	on conflict (key) do update set data=excluded.data, updated_at=now()
		`,
		rec.Key, rec.Kind, rec.Scope, rec.LapCount, rec.Data,
	)
	return err
}

// LoadByKey returns repository.ErrNoData if there is no such record.
func LoadByKey(ctx context.Context, conn repository.Querier, key string) (
	*DbRecord, error,
) {
	row := conn.QueryRow(ctx, fmt.Sprintf("%s where r.key=$1", selector), key)
	ret, err := readData(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNoData
	}
	return ret, err
}

func LoadByScope(ctx context.Context, conn repository.Querier, scope string) (
	[]*DbRecord, error,
) {
	rows, err := conn.Query(ctx,
		fmt.Sprintf("%s where r.scope=$1 order by r.key asc", selector), scope)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]*DbRecord, 0)
	for rows.Next() {
		item, err := readData(rows)
		if err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}

// deletes an entry from the database, returns number of rows deleted.
func DeleteByKey(ctx context.Context, conn repository.Querier, key string) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from record where key=$1", key)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func readData(row pgx.Row) (*DbRecord, error) {
	var item DbRecord
	if err := row.Scan(
		&item.Key,
		&item.Kind,
		&item.Scope,
		&item.LapCount,
		&item.Data,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}
