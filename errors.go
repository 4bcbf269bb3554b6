package checkpoint

import (
	"errors"
	"fmt"
	"net"
	"net/url"

	"github.com/aws/smithy-go"
)

// TopologyUnavailableError indicates the stream service could not enumerate
// shards. The condition is transient; callers should retry with backoff.
type TopologyUnavailableError struct {
	StreamName string
	Err        error
}

func (e *TopologyUnavailableError) Error() string {
	return fmt.Sprintf("shard topology unavailable for stream %s: %v", e.StreamName, e.Err)
}

func (e *TopologyUnavailableError) Unwrap() error {
	return e.Err
}

// InvalidStartingPointError indicates a starting point that cannot be
// constructed from the given input. The input must be fixed; retrying does
// not help.
type InvalidStartingPointError struct {
	Reason string
}

func (e *InvalidStartingPointError) Error() string {
	return fmt.Sprintf("invalid starting point: %s", e.Reason)
}

// DuplicateShardCheckpointError indicates a reader checkpoint was built from
// input containing the same shard twice, which points at a collaborator bug.
type DuplicateShardCheckpointError struct {
	StreamName string
	ShardID    string
}

func (e *DuplicateShardCheckpointError) Error() string {
	return fmt.Sprintf("duplicate checkpoint for shard %s of stream %s", e.ShardID, e.StreamName)
}

var recoverableAPICodes = map[string]bool{
	"InternalFailure":                        true,
	"LimitExceededException":                 true,
	"ProvisionedThroughputExceededException": true,
	"RequestError":                           true,
	"ServiceUnavailable":                     true,
	"Throttling":                             true,
}

// IsRecoverable determines whether the error is a transient service or
// network condition worth retrying.
func IsRecoverable(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && recoverableAPICodes[apiErr.ErrorCode()] {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Err.Error() == "connection reset by peer" {
		return true
	}

	return false
}
