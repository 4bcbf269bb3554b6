package ddb

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	checkpoint "github.com/alexgridx/kinesis-checkpoint"
)

// Option is used to override defaults when creating a new Store
type Option func(*Store)

// WithDynamoClient sets the dynamoDb client
func WithDynamoClient(svc *dynamodb.Client) Option {
	return func(s *Store) {
		s.client = svc
	}
}

// WithRetryer sets the retryer
func WithRetryer(r Retryer) Option {
	return func(s *Store) {
		s.retryer = r
	}
}

// New returns a store that uses DynamoDB for underlying storage
func New(appName, tableName string, opts ...Option) (*Store, error) {
	s := &Store{
		tableName: tableName,
		appName:   appName,
		retryer:   &DefaultRetryer{},
	}

	for _, opt := range opts {
		opt(s)
	}

	// default client
	if s.client == nil {
		cfg, err := config.LoadDefaultConfig(context.TODO())
		if err != nil {
			log.Fatalf("unable to load SDK config, %v", err)
		}
		s.client = dynamodb.NewFromConfig(cfg)
	}

	return s, nil
}

// Store persists reader checkpoint snapshots in a DynamoDB table keyed by
// (namespace, stream_name).
type Store struct {
	tableName string
	appName   string
	client    *dynamodb.Client
	retryer   Retryer
}

type item struct {
	Namespace  string `dynamodbav:"namespace"`
	StreamName string `dynamodbav:"stream_name"`
	Snapshot   string `dynamodbav:"snapshot"`
}

// GetReaderCheckpoint fetches the persisted snapshot for a stream. A missing
// item yields an empty snapshot, not an error.
func (s *Store) GetReaderCheckpoint(ctx context.Context, streamName string) (checkpoint.ReaderCheckpoint, error) {
	params := &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableName),
		ConsistentRead: aws.Bool(true),
		Key: map[string]types.AttributeValue{
			"namespace": &types.AttributeValueMemberS{
				Value: s.appName,
			},
			"stream_name": &types.AttributeValueMemberS{
				Value: streamName,
			},
		},
	}

	resp, err := s.client.GetItem(ctx, params)
	if err != nil {
		if s.retryer.ShouldRetry(err) {
			return s.GetReaderCheckpoint(ctx, streamName)
		}
		return checkpoint.ReaderCheckpoint{}, err
	}
	if resp.Item == nil {
		return checkpoint.ReaderCheckpoint{}, nil
	}

	var i item
	if err := attributevalue.UnmarshalMap(resp.Item, &i); err != nil {
		return checkpoint.ReaderCheckpoint{}, err
	}

	var cp checkpoint.ReaderCheckpoint
	if err := json.Unmarshal([]byte(i.Snapshot), &cp); err != nil {
		return checkpoint.ReaderCheckpoint{}, err
	}
	return cp, nil
}

// SetReaderCheckpoint stores the snapshot for a stream. Upon failover,
// reading is resumed from the positions stored here.
func (s *Store) SetReaderCheckpoint(ctx context.Context, streamName string, cp checkpoint.ReaderCheckpoint) error {
	if streamName == "" {
		return fmt.Errorf("stream name should not be empty")
	}

	payload, err := json.Marshal(cp)
	if err != nil {
		return err
	}

	av, err := attributevalue.MarshalMap(item{
		Namespace:  s.appName,
		StreamName: streamName,
		Snapshot:   string(payload),
	})
	if err != nil {
		return err
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	if err != nil && s.retryer.ShouldRetry(err) {
		return s.SetReaderCheckpoint(ctx, streamName, cp)
	}
	return err
}
