package checkpoint

import (
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/kinesis/types"
)

func TestStartingPoint_Variants(t *testing.T) {
	if got := Latest().Position(); got != types.ShardIteratorTypeLatest {
		t.Errorf("position expected %s, got %s", types.ShardIteratorTypeLatest, got)
	}
	if got := TrimHorizon().Position(); got != types.ShardIteratorTypeTrimHorizon {
		t.Errorf("position expected %s, got %s", types.ShardIteratorTypeTrimHorizon, got)
	}

	timestamp := time.Date(2024, 4, 2, 11, 30, 0, 0, time.UTC)
	sp, err := AtTimestamp(timestamp)
	if err != nil {
		t.Fatalf("starting point error: %v", err)
	}
	if sp.Position() != types.ShardIteratorTypeAtTimestamp || !sp.Timestamp().Equal(timestamp) {
		t.Errorf("at-timestamp variant should carry the timestamp, got %v", sp)
	}

	sp, err = AtSequence("shard-01", "testSeqNum")
	if err != nil {
		t.Fatalf("starting point error: %v", err)
	}
	if sp.ShardID() != "shard-01" || sp.SequenceNumber() != "testSeqNum" {
		t.Errorf("at-sequence variant should carry shard and sequence number, got %v", sp)
	}
}

func TestAtTimestamp_ZeroTime(t *testing.T) {
	_, err := AtTimestamp(time.Time{})

	var invalidErr *InvalidStartingPointError
	if !errors.As(err, &invalidErr) {
		t.Fatalf("expected InvalidStartingPointError, got %v", err)
	}
}

func TestAtSequence_MissingInput(t *testing.T) {
	var invalidErr *InvalidStartingPointError

	if _, err := AtSequence("", "testSeqNum"); !errors.As(err, &invalidErr) {
		t.Errorf("expected InvalidStartingPointError for missing shard, got %v", err)
	}
	if _, err := AtSequence("shard-01", ""); !errors.As(err, &invalidErr) {
		t.Errorf("expected InvalidStartingPointError for missing sequence number, got %v", err)
	}
}
