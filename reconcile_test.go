package checkpoint

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/kinesis/types"
)

func TestReconcile(t *testing.T) {
	persisted, err := NewReaderCheckpoint(
		NewShardCheckpoint("myStreamName", "shard-01", Latest()).MoveAfter("seqNum1"),
		NewShardCheckpoint("myStreamName", "shard-02", Latest()).MoveAfter("seqNum2"),
	)
	if err != nil {
		t.Fatalf("new reader checkpoint error: %v", err)
	}
	current, err := NewReaderCheckpoint(
		NewShardCheckpoint("myStreamName", "shard-02", Latest()),
		NewShardCheckpoint("myStreamName", "shard-03", Latest()),
		NewShardCheckpoint("myStreamName", "shard-04", Latest()),
	)
	if err != nil {
		t.Fatalf("new reader checkpoint error: %v", err)
	}

	merged := Reconcile(persisted, current)

	kept := 0
	added := 0
	for _, cp := range merged.Checkpoints() {
		if _, ok := persisted.Shard(cp.ShardID); ok {
			kept++
			if !cp.Equal(NewShardCheckpoint("myStreamName", cp.ShardID, Latest()).MoveAfter("seqNum2")) {
				t.Errorf("kept shard must preserve its persisted position exactly, got %v", cp)
			}
			continue
		}
		added++
		if cp.Position != types.ShardIteratorTypeTrimHorizon {
			t.Errorf("added shard must start at the trim horizon, got %v", cp)
		}
		if cp.SequenceNumber != "" || !cp.Timestamp.IsZero() {
			t.Errorf("added shard must carry no stale position data, got %v", cp)
		}
	}

	if kept != 1 || added != 2 {
		t.Errorf("partition expected kept=1 added=2, got kept=%d added=%d", kept, added)
	}
	if merged.Size() != kept+added {
		t.Errorf("size expected %d, got %d", kept+added, merged.Size())
	}
	if _, ok := merged.Shard("shard-01"); ok {
		t.Errorf("removed shard must be absent from the result")
	}
}

func TestReconcile_EmptyPersisted(t *testing.T) {
	current, err := NewReaderCheckpoint(
		NewShardCheckpoint("myStreamName", "shard-01", Latest()),
	)
	if err != nil {
		t.Fatalf("new reader checkpoint error: %v", err)
	}

	merged := Reconcile(ReaderCheckpoint{}, current)

	if merged.Size() != 1 {
		t.Fatalf("size expected %d, got %d", 1, merged.Size())
	}
	cp, _ := merged.Shard("shard-01")
	if cp.Position != types.ShardIteratorTypeTrimHorizon {
		t.Errorf("unknown shard starts at the trim horizon, got %v", cp)
	}
}

func TestReconcile_EmptyCurrent(t *testing.T) {
	persisted, err := NewReaderCheckpoint(
		NewShardCheckpoint("myStreamName", "shard-01", Latest()).MoveAfter("seqNum1"),
	)
	if err != nil {
		t.Fatalf("new reader checkpoint error: %v", err)
	}

	merged := Reconcile(persisted, ReaderCheckpoint{})

	if merged.Size() != 0 {
		t.Errorf("size expected %d, got %d", 0, merged.Size())
	}
}
