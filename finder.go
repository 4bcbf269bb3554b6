package checkpoint

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/kinesis/types"
)

// ShardsFinder resolves a starting point against the shard topology of a
// stream into the concrete set of shards that must be read.
type ShardsFinder interface {
	FindShards(ctx context.Context, client StreamClient, streamName string, sp StartingPoint) ([]ShardCheckpoint, error)
}

// NewShardsFinder returns the default finder.
func NewShardsFinder() ShardsFinder {
	return &topologyFinder{}
}

type topologyFinder struct{}

// FindShards maps the starting point to one checkpoint per shard to read.
//
// Latest, TrimHorizon and AtTimestamp all resolve against the currently open
// shards: no historical replay is requested for Latest, and for the other two
// each open shard's own retention already covers the data inherited from
// expired parents, so closed ancestry is never targeted individually. An
// AtTimestamp older than retention is clamped to the oldest retained record
// by the stream service when the cursor is resolved.
//
// AtSequence is a single-shard passthrough used for resumption and skips the
// topology scan entirely.
//
// A stream with zero open shards yields an empty result, not an error; the
// caller is expected to poll again later.
func (f *topologyFinder) FindShards(ctx context.Context, client StreamClient, streamName string, sp StartingPoint) ([]ShardCheckpoint, error) {
	switch sp.Position() {
	case types.ShardIteratorTypeAtSequenceNumber, types.ShardIteratorTypeAfterSequenceNumber:
		return []ShardCheckpoint{NewShardCheckpoint(streamName, sp.ShardID(), sp)}, nil
	}

	shards, err := client.ListShards(ctx, streamName)
	if err != nil {
		return nil, &TopologyUnavailableError{StreamName: streamName, Err: err}
	}

	// The client may report the same shard twice across paging retries.
	seen := make(map[string]bool, len(shards))
	var checkpoints []ShardCheckpoint
	for _, shard := range shards {
		if !isOpen(shard) {
			continue
		}
		id := *shard.ShardId
		if seen[id] {
			continue
		}
		seen[id] = true
		checkpoints = append(checkpoints, NewShardCheckpoint(streamName, id, sp))
	}
	return checkpoints, nil
}

// isOpen reports whether the shard still accepts writes. A closed shard has
// an ending sequence number; its data is inherited by open descendants.
func isOpen(shard types.Shard) bool {
	return shard.SequenceNumberRange == nil || shard.SequenceNumberRange.EndingSequenceNumber == nil
}
