package checkpoint

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/kinesis/types"
)

// ShardCheckpoint is a resumable read position for a single shard. It is an
// immutable value: progressing through the shard produces new checkpoints
// rather than mutating an existing one.
//
// The position is either a symbolic marker (LATEST, TRIM_HORIZON,
// AT_TIMESTAMP) or a concrete sequence number. AT_SEQUENCE_NUMBER re-delivers
// the boundary record, AFTER_SEQUENCE_NUMBER skips it; MoveAfter switches to
// the latter once a record has been consumed.
type ShardCheckpoint struct {
	StreamName     string                  `json:"stream_name"`
	ShardID        string                  `json:"shard_id"`
	Position       types.ShardIteratorType `json:"position"`
	SequenceNumber string                  `json:"sequence_number,omitempty"`
	Timestamp      time.Time               `json:"timestamp"`
}

// NewShardCheckpoint builds the checkpoint a shard starts from under the
// given starting point.
func NewShardCheckpoint(streamName, shardID string, sp StartingPoint) ShardCheckpoint {
	cp := ShardCheckpoint{
		StreamName: streamName,
		ShardID:    shardID,
		Position:   sp.Position(),
	}
	switch sp.Position() {
	case types.ShardIteratorTypeAtTimestamp:
		cp.Timestamp = sp.Timestamp()
	case types.ShardIteratorTypeAtSequenceNumber, types.ShardIteratorTypeAfterSequenceNumber:
		cp.SequenceNumber = sp.SequenceNumber()
	}
	return cp
}

// MoveAfter returns the checkpoint that resumes reading just past the record
// with the given sequence number.
func (c ShardCheckpoint) MoveAfter(sequenceNumber string) ShardCheckpoint {
	c.Position = types.ShardIteratorTypeAfterSequenceNumber
	c.SequenceNumber = sequenceNumber
	c.Timestamp = time.Time{}
	return c
}

// Equal reports whether both checkpoints describe the same position of the
// same shard. Timestamps are compared by instant, not by representation.
func (c ShardCheckpoint) Equal(other ShardCheckpoint) bool {
	return c.StreamName == other.StreamName &&
		c.ShardID == other.ShardID &&
		c.Position == other.Position &&
		c.SequenceNumber == other.SequenceNumber &&
		c.Timestamp.Equal(other.Timestamp)
}

func (c ShardCheckpoint) String() string {
	return fmt.Sprintf("Checkpoint(%s, %s, %s, %s)", c.StreamName, c.ShardID, c.Position, c.SequenceNumber)
}
