// The memory store provides a store that can be used for testing and single-threaded applications.
// DO NOT USE this in a production application where persistence beyond a single application lifecycle is necessary
// or when there are multiple consumers.
package store

import (
	"context"
	"fmt"
	"sync"

	checkpoint "github.com/alexgridx/kinesis-checkpoint"
)

func New() *Store {
	return &Store{}
}

type Store struct {
	sync.Map
}

func (s *Store) SetReaderCheckpoint(_ context.Context, streamName string, cp checkpoint.ReaderCheckpoint) error {
	if streamName == "" {
		return fmt.Errorf("stream name should not be empty")
	}
	s.Store(streamName, cp)
	return nil
}

func (s *Store) GetReaderCheckpoint(_ context.Context, streamName string) (checkpoint.ReaderCheckpoint, error) {
	val, ok := s.Load(streamName)
	if !ok {
		return checkpoint.ReaderCheckpoint{}, nil
	}
	return val.(checkpoint.ReaderCheckpoint), nil
}
