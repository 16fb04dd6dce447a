// Package util contains helpers shared by the subcommands.
package util

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mpapenbr/ghostlap-go/log"
	"github.com/mpapenbr/ghostlap-go/pkg/config"
	"github.com/mpapenbr/ghostlap-go/pkg/service"
	"github.com/mpapenbr/ghostlap-go/pkg/store"
)

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

// SetupLogger replaces the default logger according to the log flags.
func SetupLogger() error {
	var logger *log.Logger
	switch config.LogFormat {
	case "json":
		logger = log.New(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	default:
		logger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	}
	if config.LogFilter != "" {
		var err error
		if logger, err = logger.WithFilter(config.LogFilter); err != nil {
			return fmt.Errorf("invalid log filter: %w", err)
		}
	}
	log.ResetDefault(logger)
	return nil
}

// WaitForServices returns the configured wait duration.
func WaitForServices() time.Duration {
	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		log.Warn("Invalid duration value. Setting default 60s", log.ErrorField(err))
		timeout = 60 * time.Second
	}
	return timeout
}

func StoreConfig() *store.Config {
	return &store.Config{
		Type:            store.Type(config.Store),
		DataDir:         config.DataDir,
		BadgerPath:      config.BadgerPath,
		RedisAddr:       config.RedisAddr,
		RedisPassword:   config.RedisPassword,
		SQLitePath:      config.SQLitePath,
		DB:              config.DB,
		NatsURL:         config.NatsURL,
		NatsBucket:      config.NatsBucket,
		WaitForServices: WaitForServices(),
	}
}

// OpenRecords opens the configured store and wraps it into the record
// service. The returned store has to be closed by the caller.
func OpenRecords(ctx context.Context) (*service.RecordService, *store.Layered, error) {
	user, err := store.Open(ctx, StoreConfig())
	if err != nil {
		return nil, nil, err
	}
	opts := []store.LayeredOption{}
	if config.BundledDir != "" {
		opts = append(opts, store.WithBundled(os.DirFS(config.BundledDir)))
	}
	if exp, err := time.ParseDuration(config.CacheExpiration); err == nil && exp > 0 {
		opts = append(opts, store.WithCache(exp))
	}
	layered := store.NewLayered(user, opts...)
	return service.NewRecordService(layered), layered, nil
}

// OpenInput opens path for reading, "-" or "" is stdin.
func OpenInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// WriteOutput writes data to path, "-" or "" is w.
func WriteOutput(path string, w io.Writer, data []byte) error {
	if path == "" || path == "-" {
		_, err := w.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
