package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/ghostlap-go/pkg/model"
)

var recordColumns = []string{"key", "kind", "scope", "lap_count", "data", "updated_at"}

func TestPostgresStoreSave(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	key := BestRaceKey("Monza", 3)
	mock.ExpectExec("insert into record").
		WithArgs("Monza_BestRace_3laps", "best-race", "Monza", 3, []byte("data")).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	s := NewPostgresStore(mock)
	require.NoError(t, s.Save(context.Background(), key, []byte("data")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreLoad(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	key := BestLapKey("Spa")
	mock.ExpectQuery("select r.key").
		WithArgs("Spa_BestLap").
		WillReturnRows(pgxmock.NewRows(recordColumns).
			AddRow("Spa_BestLap", "best-lap", "Spa", 0, []byte("lap"), time.Now()))
	mock.ExpectQuery("select r.key").
		WithArgs("Spa_BestLap").
		WillReturnError(pgx.ErrNoRows)

	s := NewPostgresStore(mock)
	got, err := s.Load(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "lap", string(got))

	_, err = s.Load(context.Background(), key)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreDelete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("delete from record").
		WithArgs("Spa_BestLap").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	s := NewPostgresStore(mock)
	require.NoError(t, s.Delete(context.Background(), BestLapKey("Spa")))
	assert.NoError(t, mock.ExpectationsWereMet())
}
