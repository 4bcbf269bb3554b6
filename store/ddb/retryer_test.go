package ddb

import (
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func TestDefaultRetryer(t *testing.T) {
	retryableError := &types.ProvisionedThroughputExceededException{Message: aws.String("throughput exceeded")}
	r := &DefaultRetryer{}
	if r.ShouldRetry(retryableError) != true {
		t.Errorf("expected ShouldRetry returns %v. got %v", true, r.ShouldRetry(retryableError))
	}

	wrapped := fmt.Errorf("put item: %w", retryableError)
	if r.ShouldRetry(wrapped) != true {
		t.Errorf("expected ShouldRetry to look through wrapped errors")
	}

	nonRetryableError := &types.BackupInUseException{Message: aws.String("error not retryable")}
	if shouldRetry := r.ShouldRetry(nonRetryableError); shouldRetry != false {
		t.Errorf("expected ShouldRetry returns %v. got %v", false, shouldRetry)
	}
}
