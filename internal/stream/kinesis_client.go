package stream

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"

	"cdk-samples/internal/domain"
)

// kinesisAPI is the minimal Kinesis interface required by Client.
// *kinesis.Client from aws-sdk-go-v2 satisfies this interface.
type kinesisAPI interface {
	PutRecord(ctx context.Context, in *kinesis.PutRecordInput, optFns ...func(*kinesis.Options)) (*kinesis.PutRecordOutput, error)
}

// Client writes records to one Kinesis data stream.
type Client struct {
	api        kinesisAPI
	streamName string
}

// New creates a Client bound to streamName.
func New(api kinesisAPI, streamName string) (*Client, error) {
	if api == nil {
		return nil, errors.New("stream: api must not be nil")
	}
	if strings.TrimSpace(streamName) == "" {
		return nil, errors.New("stream: stream name must not be empty")
	}
	return &Client{api: api, streamName: streamName}, nil
}

// PutRecord appends data to the stream under partitionKey.
func (c *Client) PutRecord(ctx context.Context, partitionKey string, data []byte) (domain.RecordReceipt, error) {
	if partitionKey == "" {
		return domain.RecordReceipt{}, errors.New("stream: PutRecord: partition key is required")
	}

	out, err := c.api.PutRecord(ctx, &kinesis.PutRecordInput{
		StreamName:   aws.String(c.streamName),
		PartitionKey: aws.String(partitionKey),
		Data:         data,
	})
	if err != nil {
		return domain.RecordReceipt{}, fmt.Errorf("stream: PutRecord: %w", err)
	}
	if out == nil {
		return domain.RecordReceipt{}, nil
	}
	return domain.RecordReceipt{
		ShardID:        aws.ToString(out.ShardId),
		SequenceNumber: aws.ToString(out.SequenceNumber),
	}, nil
}
