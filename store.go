package checkpoint

import "context"

// Store interface used to persist reader checkpoints between runs
type Store interface {
	GetReaderCheckpoint(ctx context.Context, streamName string) (ReaderCheckpoint, error)
	SetReaderCheckpoint(ctx context.Context, streamName string, cp ReaderCheckpoint) error
}

// noopStore implements the storage interface with discard
type noopStore struct{}

func (n noopStore) GetReaderCheckpoint(context.Context, string) (ReaderCheckpoint, error) {
	return ReaderCheckpoint{}, nil
}

func (n noopStore) SetReaderCheckpoint(context.Context, string, ReaderCheckpoint) error {
	return nil
}
