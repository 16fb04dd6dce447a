//nolint:funlen // ok for tests
package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/ghostlap-go/pkg/model"
)

// checkStore runs the behavior every backend has to provide.
func checkStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	raceKey := BestRaceKey("Monza", 3)
	lapKey := BestLapKey("Monza")

	_, err := s.Load(ctx, raceKey)
	assert.True(t, errors.Is(err, model.ErrNotFound), "expected ErrNotFound, got %v", err)

	require.NoError(t, s.Save(ctx, raceKey, []byte(`{"race":1}`)))
	require.NoError(t, s.Save(ctx, lapKey, []byte(`{"lap":1}`)))

	got, err := s.Load(ctx, raceKey)
	require.NoError(t, err)
	assert.Equal(t, `{"race":1}`, string(got))

	require.NoError(t, s.Save(ctx, raceKey, []byte(`{"race":2}`)))
	got, err = s.Load(ctx, raceKey)
	require.NoError(t, err)
	assert.Equal(t, `{"race":2}`, string(got))

	// other lap counts are separate records
	_, err = s.Load(ctx, BestRaceKey("Monza", 5))
	assert.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, s.Delete(ctx, raceKey))
	_, err = s.Load(ctx, raceKey)
	assert.ErrorIs(t, err, model.ErrNotFound)
	got, err = s.Load(ctx, lapKey)
	require.NoError(t, err)
	assert.Equal(t, `{"lap":1}`, string(got))

	// deleting a missing record is fine
	assert.NoError(t, s.Delete(ctx, raceKey))
}

func TestKey(t *testing.T) {
	tests := []struct {
		name      string
		key       Key
		wantFile  string
		wantToken string
	}{
		{
			name:      "race",
			key:       BestRaceKey("Monza", 3),
			wantFile:  "Monza_BestRace_3laps.json",
			wantToken: "Monza_BestRace_3laps",
		},
		{
			name:      "lap",
			key:       BestLapKey("Spa"),
			wantFile:  "Spa_BestLap.json",
			wantToken: "Spa_BestLap",
		},
		{
			name:      "escaped token",
			key:       BestLapKey("Le Mans.24h"),
			wantFile:  "Le Mans.24h_BestLap.json",
			wantToken: "Le=20Mans=2E24h_BestLap",
		},
		{
			name:      "escape char",
			key:       BestLapKey("a=b"),
			wantFile:  "a=b_BestLap.json",
			wantToken: "a=3Db_BestLap",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantFile, tt.key.FileName())
			assert.Equal(t, tt.wantToken, tt.key.Token())
		})
	}
}

func TestKeyTokenDistinct(t *testing.T) {
	a := BestLapKey("Spa Francorchamps").Token()
	b := BestLapKey("Spa_Francorchamps").Token()
	assert.NotEqual(t, a, b)
}

func TestKeyValidate(t *testing.T) {
	tests := []struct {
		name    string
		scope   string
		wantErr bool
	}{
		{name: "plain", scope: "Monza"},
		{name: "blank and dot", scope: "Le Mans.24h"},
		{name: "parent", scope: "../escaped", wantErr: true},
		{name: "slash", scope: "Spa/Francorchamps", wantErr: true},
		{name: "backslash", scope: `Spa\Francorchamps`, wantErr: true},
		{name: "dots only", scope: "..", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := BestLapKey(tt.scope).Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidKey)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
