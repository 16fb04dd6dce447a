package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	s := NewRedisStore(ConnectRedis(mr.Addr(), ""), "")
	defer s.Close()
	checkStore(t, s)
}

func TestRedisStorePrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	s := NewRedisStore(ConnectRedis(mr.Addr(), ""), "test:")
	defer s.Close()

	require.NoError(t, s.Save(context.Background(), BestLapKey("Spa"), []byte("x")))
	got, err := mr.Get("test:Spa_BestLap")
	require.NoError(t, err)
	assert.Equal(t, "x", got)
}
