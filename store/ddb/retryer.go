package ddb

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Retryer interface contains one method that decides whether to retry based on error
type Retryer interface {
	ShouldRetry(error) bool
}

// DefaultRetryer retries on throughput exhaustion only
type DefaultRetryer struct{}

// ShouldRetry when error occured
func (r *DefaultRetryer) ShouldRetry(err error) bool {
	var throughputErr *types.ProvisionedThroughputExceededException
	return errors.As(err, &throughputErr)
}
