package checkpoint

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/aws/aws-sdk-go-v2/service/kinesis/types"
)

// StreamClient is the capability the generator needs from the stream service:
// enumerating shards and lazily resolving a checkpoint to a read cursor.
// Implementations are injected, never looked up globally, so tests can swap
// in a fake without a running stream service.
type StreamClient interface {
	ListShards(ctx context.Context, streamName string) ([]types.Shard, error)
	ResolveCursor(ctx context.Context, cp ShardCheckpoint) (string, error)
}

// kinesisAPI is the subset of the Kinesis API used by Client.
type kinesisAPI interface {
	ListShards(ctx context.Context, params *kinesis.ListShardsInput, optFns ...func(*kinesis.Options)) (*kinesis.ListShardsOutput, error)
	GetShardIterator(ctx context.Context, params *kinesis.GetShardIteratorInput, optFns ...func(*kinesis.Options)) (*kinesis.GetShardIteratorOutput, error)
}

// Client implements StreamClient on top of the Kinesis API.
type Client struct {
	api kinesisAPI
}

// NewClient returns a client backed by the given Kinesis API, e.g. a
// *kinesis.Client from aws-sdk-go-v2.
func NewClient(api kinesisAPI) *Client {
	return &Client{api: api}
}

// ListShards pulls the full list of shards for the stream, following
// NextToken until the listing is exhausted. All pages are merged before
// returning; a paging failure returns no partial result.
func (c *Client) ListShards(ctx context.Context, streamName string) ([]types.Shard, error) {
	var ss []types.Shard
	var listShardsInput = &kinesis.ListShardsInput{
		StreamName: aws.String(streamName),
	}

	for {
		resp, err := c.api.ListShards(ctx, listShardsInput)
		if err != nil {
			return nil, fmt.Errorf("ListShards error: %w", err)
		}
		ss = append(ss, resp.Shards...)

		if resp.NextToken == nil {
			return ss, nil
		}

		// Once a NextToken is set the stream name must be omitted.
		listShardsInput = &kinesis.ListShardsInput{
			NextToken: resp.NextToken,
		}
	}
}

// ResolveCursor asks the stream service for the shard iterator matching the
// checkpoint's position. Timestamp and sequence positions are resolved here,
// server side, rather than during topology resolution.
func (c *Client) ResolveCursor(ctx context.Context, cp ShardCheckpoint) (string, error) {
	params := &kinesis.GetShardIteratorInput{
		StreamName:        aws.String(cp.StreamName),
		ShardId:           aws.String(cp.ShardID),
		ShardIteratorType: cp.Position,
	}

	switch cp.Position {
	case types.ShardIteratorTypeAtSequenceNumber, types.ShardIteratorTypeAfterSequenceNumber:
		params.StartingSequenceNumber = aws.String(cp.SequenceNumber)
	case types.ShardIteratorTypeAtTimestamp:
		params.Timestamp = aws.Time(cp.Timestamp)
	}

	resp, err := c.api.GetShardIterator(ctx, params)
	if err != nil {
		return "", fmt.Errorf("get shard iterator error: %w", err)
	}
	return aws.ToString(resp.ShardIterator), nil
}
