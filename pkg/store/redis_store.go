package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "ghostlap:"

// RedisStore keeps records as plain redis strings.
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func ConnectRedis(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
}

func (s *RedisStore) redisKey(key Key) string {
	return s.prefix + key.String()
}

func (s *RedisStore) Save(ctx context.Context, key Key, data []byte) error {
	return s.client.Set(ctx, s.redisKey(key), data, 0).Err()
}

func (s *RedisStore) Load(ctx context.Context, key Key) ([]byte, error) {
	data, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, notFound(key)
	}
	return data, err
}

func (s *RedisStore) Delete(ctx context.Context, key Key) error {
	return s.client.Del(ctx, s.redisKey(key)).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
