package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	redis "github.com/redis/go-redis/v9"

	checkpoint "github.com/alexgridx/kinesis-checkpoint"
)

const localhost = "127.0.0.1:6379"

// New returns a store that uses Redis for underlying storage
func New(appName string, opts ...Option) (*Store, error) {
	if appName == "" {
		return nil, fmt.Errorf("must provide app name")
	}

	s := &Store{
		appName: appName,
	}

	// override defaults
	for _, opt := range opts {
		opt(s)
	}

	// default client if none provided
	if s.client == nil {
		addr := os.Getenv("REDIS_URL")
		if addr == "" {
			addr = localhost
		}

		client := redis.NewClient(&redis.Options{Addr: addr})
		s.client = client
	}

	// verify we can ping server
	_, err := s.client.Ping(context.Background()).Result()
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Store persists reader checkpoint snapshots in Redis, one key per stream.
type Store struct {
	appName string
	client  *redis.Client
}

// GetReaderCheckpoint fetches the persisted snapshot for a stream. A missing
// key yields an empty snapshot, not an error.
func (s *Store) GetReaderCheckpoint(ctx context.Context, streamName string) (checkpoint.ReaderCheckpoint, error) {
	payload, err := s.client.Get(ctx, s.key(streamName)).Result()
	if err == redis.Nil {
		return checkpoint.ReaderCheckpoint{}, nil
	}
	if err != nil {
		return checkpoint.ReaderCheckpoint{}, err
	}

	var cp checkpoint.ReaderCheckpoint
	if err := json.Unmarshal([]byte(payload), &cp); err != nil {
		return checkpoint.ReaderCheckpoint{}, err
	}
	return cp, nil
}

// SetReaderCheckpoint stores the snapshot for a stream. Upon failover,
// reading is resumed from the positions stored here.
func (s *Store) SetReaderCheckpoint(ctx context.Context, streamName string, cp checkpoint.ReaderCheckpoint) error {
	if streamName == "" {
		return fmt.Errorf("stream name should not be empty")
	}

	payload, err := json.Marshal(cp)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(streamName), payload, 0).Err()
}

// key generates a unique Redis key for storage of a snapshot.
func (s *Store) key(streamName string) string {
	return fmt.Sprintf("%v:checkpoint:%v", s.appName, streamName)
}
