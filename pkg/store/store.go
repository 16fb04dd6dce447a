package store

import (
	"context"
	"fmt"

	"github.com/mpapenbr/ghostlap-go/pkg/model"
)

// Store persists record payloads by key.
// Load returns an error wrapping model.ErrNotFound if there is no record.
type Store interface {
	Save(ctx context.Context, key Key, data []byte) error
	Load(ctx context.Context, key Key) ([]byte, error)
	Delete(ctx context.Context, key Key) error
	Close() error
}

func notFound(key Key) error {
	return fmt.Errorf("%s: %w", key, model.ErrNotFound)
}
