package checkpoint

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/kinesis/types"
)

func TestNewShardCheckpoint(t *testing.T) {
	cp := NewShardCheckpoint("myStreamName", "shard-01", Latest())
	if cp.Position != types.ShardIteratorTypeLatest || cp.SequenceNumber != "" {
		t.Errorf("latest checkpoint should carry only the marker, got %v", cp)
	}

	timestamp := time.Date(2024, 4, 2, 11, 30, 0, 0, time.UTC)
	sp, err := AtTimestamp(timestamp)
	if err != nil {
		t.Fatalf("starting point error: %v", err)
	}
	cp = NewShardCheckpoint("myStreamName", "shard-01", sp)
	if !cp.Timestamp.Equal(timestamp) {
		t.Errorf("timestamp expected %s, got %s", timestamp, cp.Timestamp)
	}

	sp, err = AtSequence("shard-01", "testSeqNum")
	if err != nil {
		t.Fatalf("starting point error: %v", err)
	}
	cp = NewShardCheckpoint("myStreamName", "shard-01", sp)
	if cp.Position != types.ShardIteratorTypeAtSequenceNumber || cp.SequenceNumber != "testSeqNum" {
		t.Errorf("at-sequence checkpoint should carry the sequence number, got %v", cp)
	}
}

func TestShardCheckpoint_MoveAfter(t *testing.T) {
	cp := NewShardCheckpoint("myStreamName", "shard-01", TrimHorizon())

	moved := cp.MoveAfter("testSeqNum")

	if moved.Position != types.ShardIteratorTypeAfterSequenceNumber || moved.SequenceNumber != "testSeqNum" {
		t.Errorf("moved checkpoint should skip the boundary record, got %v", moved)
	}
	// the original value is untouched
	if cp.Position != types.ShardIteratorTypeTrimHorizon || cp.SequenceNumber != "" {
		t.Errorf("original checkpoint mutated: %v", cp)
	}
}

func TestShardCheckpoint_Equal(t *testing.T) {
	a := NewShardCheckpoint("myStreamName", "shard-01", Latest())
	b := NewShardCheckpoint("myStreamName", "shard-01", Latest())
	if !a.Equal(b) {
		t.Errorf("identical values should be equal")
	}

	if a.Equal(a.MoveAfter("testSeqNum")) {
		t.Errorf("same shard at a different position is a distinct value")
	}
	if a.Equal(NewShardCheckpoint("otherStream", "shard-01", Latest())) {
		t.Errorf("stream name participates in equality")
	}
}
