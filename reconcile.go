package checkpoint

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/service/kinesis/types"
)

// Reconcile merges a persisted snapshot with a freshly resolved topology
// after a restart. Shards present in both resume from their persisted
// position. Shards that only exist in the new topology, e.g. created by a
// split, start at the trim horizon so no data introduced by the split is
// skipped. Shards that disappeared, e.g. merged away, are dropped; their data
// has been redistributed to descendants already present in current.
func Reconcile(persisted, current ReaderCheckpoint) ReaderCheckpoint {
	merged := make([]ShardCheckpoint, 0, current.Size())
	for _, cp := range current.Checkpoints() {
		if prev, ok := persisted.Shard(cp.ShardID); ok {
			merged = append(merged, prev)
			continue
		}
		cp.Position = types.ShardIteratorTypeTrimHorizon
		cp.SequenceNumber = ""
		cp.Timestamp = time.Time{}
		merged = append(merged, cp)
	}

	// Shard IDs are unique within current, so this cannot fail.
	rc, _ := NewReaderCheckpoint(merged...)
	return rc
}
