package store

import (
	"context"
	"errors"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const DefaultBucket = "ghostlap_records"

// NATSStore keeps records in a JetStream key-value bucket.
type NATSStore struct {
	nc *nats.Conn
	kv jetstream.KeyValue
}

var _ Store = (*NATSStore)(nil)

// NewNATSStore creates (or updates) the bucket on the given connection.
// The connection is closed by Close.
func NewNATSStore(ctx context.Context, nc *nats.Conn, bucket string) (*NATSStore, error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, err
	}
	if bucket == "" {
		bucket = DefaultBucket
	}
	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "best laps and races",
	})
	if err != nil {
		return nil, err
	}
	return &NATSStore{nc: nc, kv: kv}, nil
}

func (s *NATSStore) composeKey(key Key) string {
	return "record." + key.Token()
}

func (s *NATSStore) Save(ctx context.Context, key Key, data []byte) error {
	_, err := s.kv.Put(ctx, s.composeKey(key), data)
	return err
}

func (s *NATSStore) Load(ctx context.Context, key Key) ([]byte, error) {
	kve, err := s.kv.Get(ctx, s.composeKey(key))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, notFound(key)
		}
		return nil, err
	}
	return kve.Value(), nil
}

func (s *NATSStore) Delete(ctx context.Context, key Key) error {
	err := s.kv.Delete(ctx, s.composeKey(key))
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil
	}
	return err
}

func (s *NATSStore) Close() error {
	s.nc.Close()
	return nil
}
