package checkpoint

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/kinesis/types"
)

// StartingPoint describes where a consumer begins reading a stream. Use one
// of the constructors below; the zero value is not a valid starting point.
type StartingPoint struct {
	position       types.ShardIteratorType
	shardID        string
	sequenceNumber string
	timestamp      time.Time
}

// Latest starts reading after the most recent record in each shard.
func Latest() StartingPoint {
	return StartingPoint{position: types.ShardIteratorTypeLatest}
}

// TrimHorizon starts reading at the oldest record still retained by the stream.
func TrimHorizon() StartingPoint {
	return StartingPoint{position: types.ShardIteratorTypeTrimHorizon}
}

// AtTimestamp starts reading at the first record with an arrival time at or
// after t. Resolution of t to a position inside each shard is delegated to
// the stream service when the cursor is requested.
func AtTimestamp(t time.Time) (StartingPoint, error) {
	if t.IsZero() {
		return StartingPoint{}, &InvalidStartingPointError{Reason: "timestamp must not be zero"}
	}
	return StartingPoint{
		position:  types.ShardIteratorTypeAtTimestamp,
		timestamp: t,
	}, nil
}

// AtSequence resumes a single shard from an explicit sequence number. It is
// used for resumption from a persisted checkpoint and never triggers a
// topology scan.
func AtSequence(shardID, sequenceNumber string) (StartingPoint, error) {
	if shardID == "" {
		return StartingPoint{}, &InvalidStartingPointError{Reason: "must provide shard ID"}
	}
	if sequenceNumber == "" {
		return StartingPoint{}, &InvalidStartingPointError{Reason: "must provide sequence number"}
	}
	return StartingPoint{
		position:       types.ShardIteratorTypeAtSequenceNumber,
		shardID:        shardID,
		sequenceNumber: sequenceNumber,
	}, nil
}

// Position returns the shard iterator type the starting point maps to.
func (sp StartingPoint) Position() types.ShardIteratorType {
	return sp.position
}

// Timestamp returns the timestamp of an AtTimestamp starting point. It is the
// zero time for every other variant.
func (sp StartingPoint) Timestamp() time.Time {
	return sp.timestamp
}

// ShardID returns the shard of an AtSequence starting point.
func (sp StartingPoint) ShardID() string {
	return sp.shardID
}

// SequenceNumber returns the sequence number of an AtSequence starting point.
func (sp StartingPoint) SequenceNumber() string {
	return sp.sequenceNumber
}

func (sp StartingPoint) String() string {
	switch sp.position {
	case types.ShardIteratorTypeAtTimestamp:
		return fmt.Sprintf("Position: %s, timestamp: %s", sp.position, sp.timestamp.Format(time.RFC3339))
	case types.ShardIteratorTypeAtSequenceNumber, types.ShardIteratorTypeAfterSequenceNumber:
		return fmt.Sprintf("Position: %s, shard: %s, sequence number: %s", sp.position, sp.shardID, sp.sequenceNumber)
	default:
		return fmt.Sprintf("Position: %s", sp.position)
	}
}
