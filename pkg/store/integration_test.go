//go:build integration

package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mpapenbr/ghostlap-go/testsupport/tcpostgres"
	"github.com/mpapenbr/ghostlap-go/testsupport/testdb"
)

func TestPostgresStoreIntegration(t *testing.T) {
	pool := testdb.InitTestDB()
	defer tcpostgres.ClearAllTables(pool)
	checkStore(t, NewPostgresStore(pool))
}

func TestNATSStoreIntegration(t *testing.T) {
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "nats:2.10",
				Cmd:          []string{"-js"},
				ExposedPorts: []string{"4222/tcp"},
				WaitingFor: wait.ForLog("Server is ready").
					WithStartupTimeout(30 * time.Second),
			},
			Started: true,
		})
	require.NoError(t, err)
	defer testcontainers.TerminateContainer(container)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "4222/tcp")
	require.NoError(t, err)

	nc, err := nats.Connect(fmt.Sprintf("nats://%s:%s", host, port.Port()))
	require.NoError(t, err)
	s, err := NewNATSStore(ctx, nc, "test_records")
	require.NoError(t, err)
	defer s.Close()
	checkStore(t, s)
}
