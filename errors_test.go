package checkpoint

import (
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/aws/smithy-go"
)

func TestIsRecoverable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "throttling",
			err:  &smithy.GenericAPIError{Code: "Throttling", Message: "rate exceeded"},
			want: true,
		},
		{
			name: "limit exceeded",
			err:  &smithy.GenericAPIError{Code: "LimitExceededException", Message: "too many requests"},
			want: true,
		},
		{
			name: "wrapped service unavailable",
			err:  fmt.Errorf("list shards: %w", &smithy.GenericAPIError{Code: "ServiceUnavailable"}),
			want: true,
		},
		{
			name: "url error",
			err:  &url.Error{Op: "Post", URL: "https://kinesis.us-west-2.amazonaws.com", Err: fmt.Errorf("EOF")},
			want: true,
		},
		{
			name: "validation error",
			err:  &smithy.GenericAPIError{Code: "ValidationException", Message: "invalid stream name"},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRecoverable(tt.err); got != tt.want {
				t.Errorf("IsRecoverable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestTopologyUnavailableError_Unwrap(t *testing.T) {
	cause := &smithy.GenericAPIError{Code: "ServiceUnavailable"}
	err := &TopologyUnavailableError{StreamName: "myStreamName", Err: cause}

	if !IsRecoverable(err) {
		t.Errorf("recoverability must look through the topology error")
	}

	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		t.Errorf("unwrap should expose the underlying API error")
	}
}
