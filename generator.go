package checkpoint

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Generator produces reader checkpoints for one stream. It is the only
// component exposed to the pipeline runner; topology resolution is delegated
// to the configured ShardsFinder.
type Generator struct {
	streamName    string
	startingPoint StartingPoint
	finder        ShardsFinder
	store         Store
	logger        *slog.Logger
}

// New creates a checkpoint generator for the stream with a no-op store and a
// discarding logger. Use Option to override any of the optional attributes.
func New(streamName string, sp StartingPoint, opts ...Option) (*Generator, error) {
	if streamName == "" {
		return nil, fmt.Errorf("must provide stream name")
	}

	g := &Generator{
		streamName:    streamName,
		startingPoint: sp,
		finder:        NewShardsFinder(),
		store:         noopStore{},
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Generate resolves the stream's current topology and wraps it into a reader
// checkpoint. The call is read only and adds no retry logic of its own;
// finder errors propagate unchanged and no partial snapshot is ever returned.
// Against an unchanged topology repeated calls yield set-equal snapshots.
func (g *Generator) Generate(ctx context.Context, client StreamClient) (ReaderCheckpoint, error) {
	shards, err := g.finder.FindShards(ctx, client, g.streamName, g.startingPoint)
	if err != nil {
		counterTopologyErrors.WithLabelValues(g.streamName).Inc()
		return ReaderCheckpoint{}, err
	}

	rc, err := NewReaderCheckpoint(shards...)
	if err != nil {
		return ReaderCheckpoint{}, err
	}

	counterCheckpointsGenerated.WithLabelValues(g.streamName).Inc()
	counterShardsResolved.WithLabelValues(g.streamName).Add(float64(rc.Size()))
	g.logger.Debug("generated reader checkpoint",
		slog.String("stream_name", g.streamName),
		slog.String("starting_point", g.startingPoint.String()),
		slog.Int("shards", rc.Size()))
	return rc, nil
}

// Resume rebuilds the read positions for a restarting consumer: the snapshot
// persisted in the store is reconciled against a freshly resolved topology.
// With no persisted snapshot the fresh topology is used as is.
func (g *Generator) Resume(ctx context.Context, client StreamClient) (ReaderCheckpoint, error) {
	persisted, err := g.store.GetReaderCheckpoint(ctx, g.streamName)
	if err != nil {
		return ReaderCheckpoint{}, fmt.Errorf("get reader checkpoint error: %w", err)
	}

	current, err := g.Generate(ctx, client)
	if err != nil {
		return ReaderCheckpoint{}, err
	}

	if persisted.Size() == 0 {
		return current, nil
	}
	return Reconcile(persisted, current), nil
}

// GenerateAll concurrently generates one reader checkpoint per stream, all
// from the same starting point. The first failure cancels the remaining
// streams and no partial result map is returned.
func GenerateAll(ctx context.Context, client StreamClient, sp StartingPoint, streamNames []string, opts ...Option) (map[string]ReaderCheckpoint, error) {
	grp, ctx := errgroup.WithContext(ctx)
	results := make([]ReaderCheckpoint, len(streamNames))

	for i, streamName := range streamNames {
		g, err := New(streamName, sp, opts...)
		if err != nil {
			return nil, err
		}
		i := i
		grp.Go(func() error {
			rc, err := g.Generate(ctx, client)
			if err != nil {
				return err
			}
			results[i] = rc
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]ReaderCheckpoint, len(streamNames))
	for i, streamName := range streamNames {
		out[streamName] = results[i]
	}
	return out, nil
}
