package store

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/mpapenbr/ghostlap-go/log"
	database "github.com/mpapenbr/ghostlap-go/pkg/db/postgres"
	"github.com/mpapenbr/ghostlap-go/pkg/utils"
)

// Type names a store backend.
type Type string

const (
	TypeFile     Type = "file"
	TypeBadger   Type = "badger"
	TypeRedis    Type = "redis"
	TypeSQLite   Type = "sqlite"
	TypePostgres Type = "postgres"
	TypeNATS     Type = "nats"
)

// Config selects and parametrizes a backend. Only the fields of the
// selected type are used.
type Config struct {
	Type            Type
	DataDir         string
	BadgerPath      string
	RedisAddr       string
	RedisPassword   string
	SQLitePath      string
	DB              string
	NatsURL         string
	NatsBucket      string
	WaitForServices time.Duration
}

// Open creates the backend selected by cfg.Type.
func Open(ctx context.Context, cfg *Config) (Store, error) {
	l := log.Default().Named("store")
	l.Debug("opening store", log.String("type", string(cfg.Type)))
	switch cfg.Type {
	case TypeFile, "":
		dir := cfg.DataDir
		if dir == "" {
			dir = DefaultDataDir()
		}
		return NewFileStore(dir)
	case TypeBadger:
		return NewBadgerStore(cfg.BadgerPath)
	case TypeSQLite:
		return NewSQLiteStore(cfg.SQLitePath)
	case TypeRedis:
		if err := waitFor(cfg, cfg.RedisAddr); err != nil {
			return nil, err
		}
		client := ConnectRedis(cfg.RedisAddr, cfg.RedisPassword)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return NewRedisStore(client, ""), nil
	case TypePostgres:
		if err := waitFor(cfg, utils.ExtractFromDBURL(cfg.DB)); err != nil {
			return nil, err
		}
		pool, err := database.InitWithURL(ctx, cfg.DB,
			database.WithTracer(log.Default().Named("sql")))
		if err != nil {
			return nil, err
		}
		return &poolStore{PostgresStore: NewPostgresStore(pool), close: pool.Close}, nil
	case TypeNATS:
		if err := waitFor(cfg, utils.ExtractFromNatsURL(cfg.NatsURL)); err != nil {
			return nil, err
		}
		nc, err := nats.Connect(cfg.NatsURL)
		if err != nil {
			return nil, err
		}
		s, err := NewNATSStore(ctx, nc, cfg.NatsBucket)
		if err != nil {
			nc.Close()
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store type %q", cfg.Type)
	}
}

func waitFor(cfg *Config, addr string) error {
	if cfg.WaitForServices <= 0 || addr == "" {
		return nil
	}
	return utils.WaitForTCP(addr, cfg.WaitForServices)
}

// poolStore owns the pool it was opened with.
type poolStore struct {
	*PostgresStore
	close func()
}

func (s *poolStore) Close() error {
	s.close()
	return nil
}
