package checkpoint

import (
	"encoding/json"
	"sort"
)

// ReaderCheckpoint is the full set of shard checkpoints for one stream at a
// point in time. It is an immutable set keyed by shard ID; iteration order is
// unspecified. A new snapshot is produced per generation, existing snapshots
// are never mutated.
type ReaderCheckpoint struct {
	shards map[string]ShardCheckpoint
}

// NewReaderCheckpoint builds a snapshot from the given shard checkpoints.
// Repeated shard IDs indicate inconsistent collaborator input and fail with
// DuplicateShardCheckpointError.
func NewReaderCheckpoint(checkpoints ...ShardCheckpoint) (ReaderCheckpoint, error) {
	shards := make(map[string]ShardCheckpoint, len(checkpoints))
	for _, cp := range checkpoints {
		if _, ok := shards[cp.ShardID]; ok {
			return ReaderCheckpoint{}, &DuplicateShardCheckpointError{
				StreamName: cp.StreamName,
				ShardID:    cp.ShardID,
			}
		}
		shards[cp.ShardID] = cp
	}
	return ReaderCheckpoint{shards: shards}, nil
}

// Size returns the number of shard checkpoints in the snapshot.
func (rc ReaderCheckpoint) Size() int {
	return len(rc.shards)
}

// Contains reports whether the snapshot holds exactly the given checkpoint,
// position included.
func (rc ReaderCheckpoint) Contains(cp ShardCheckpoint) bool {
	got, ok := rc.shards[cp.ShardID]
	return ok && got.Equal(cp)
}

// Shard returns the checkpoint for the given shard ID, if present.
func (rc ReaderCheckpoint) Shard(shardID string) (ShardCheckpoint, bool) {
	cp, ok := rc.shards[shardID]
	return cp, ok
}

// Checkpoints returns the shard checkpoints in unspecified order.
func (rc ReaderCheckpoint) Checkpoints() []ShardCheckpoint {
	out := make([]ShardCheckpoint, 0, len(rc.shards))
	for _, cp := range rc.shards {
		out = append(out, cp)
	}
	return out
}

// Diff returns the checkpoints whose shards are present in rc but absent from
// other. Positions are not compared, only shard membership.
func (rc ReaderCheckpoint) Diff(other ReaderCheckpoint) []ShardCheckpoint {
	var out []ShardCheckpoint
	for id, cp := range rc.shards {
		if _, ok := other.shards[id]; !ok {
			out = append(out, cp)
		}
	}
	return out
}

// Equal reports whether both snapshots contain the same set of checkpoints.
func (rc ReaderCheckpoint) Equal(other ReaderCheckpoint) bool {
	if len(rc.shards) != len(other.shards) {
		return false
	}
	for _, cp := range rc.shards {
		if !other.Contains(cp) {
			return false
		}
	}
	return true
}

// MarshalJSON serializes the snapshot as an array of shard checkpoints,
// sorted by shard ID so persisted payloads are stable.
func (rc ReaderCheckpoint) MarshalJSON() ([]byte, error) {
	out := rc.Checkpoints()
	sort.Slice(out, func(i, j int) bool { return out[i].ShardID < out[j].ShardID })
	return json.Marshal(out)
}

// UnmarshalJSON rebuilds a snapshot from its serialized form, enforcing the
// same uniqueness invariant as NewReaderCheckpoint.
func (rc *ReaderCheckpoint) UnmarshalJSON(data []byte) error {
	var checkpoints []ShardCheckpoint
	if err := json.Unmarshal(data, &checkpoints); err != nil {
		return err
	}
	restored, err := NewReaderCheckpoint(checkpoints...)
	if err != nil {
		return err
	}
	*rc = restored
	return nil
}
