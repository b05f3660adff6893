package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"cdk-samples/internal/domain"
)

// maxPartitionKeyLen is the Kinesis limit on partition key length.
const maxPartitionKeyLen = 256

type Publisher interface {
	PutRecord(ctx context.Context, partitionKey string, data []byte) (domain.RecordReceipt, error)
}

type IngestService struct {
	publisher Publisher
}

type IngestOutput struct {
	PartitionKey string
	Timestamp    string
	Receipt      domain.RecordReceipt
}

func NewIngestService(p Publisher) (*IngestService, error) {
	if p == nil {
		return nil, errors.New("usecase: publisher must not be nil")
	}
	return &IngestService{publisher: p}, nil
}

// Ingest forwards the event to the stream keyed by its "user" field. The
// event must be a JSON object with a string "user" and some "timestamp";
// nothing else about it is inspected.
//
// The body is decoded once and the decoded value is what gets forwarded, so
// when a key repeats, the last occurrence is both the partition key and the
// value consumers see.
func (s *IngestService) Ingest(ctx context.Context, body []byte) (IngestOutput, error) {
	if !gjson.ValidBytes(body) {
		return IngestOutput{}, InvalidInput("malformed_json")
	}
	if !gjson.ParseBytes(body).IsObject() {
		return IngestOutput{}, InvalidInput("event_not_object")
	}

	var event map[string]any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&event); err != nil {
		return IngestOutput{}, InvalidInput("malformed_json")
	}

	rawUser, ok := event["user"]
	if !ok {
		return IngestOutput{}, InvalidInput("missing_user")
	}
	user, ok := rawUser.(string)
	if !ok || user == "" {
		return IngestOutput{}, InvalidInput("invalid_user")
	}
	if utf8.RuneCountInString(user) > maxPartitionKeyLen {
		return IngestOutput{}, InvalidInput("user_too_long")
	}
	timestamp, ok := event["timestamp"]
	if !ok {
		return IngestOutput{}, InvalidInput("missing_timestamp")
	}

	data, err := encodeEvent(event)
	if err != nil {
		return IngestOutput{}, newError(ErrorInternal, "event_encode_error", err)
	}
	rawTimestamp, err := encodeEvent(timestamp)
	if err != nil {
		return IngestOutput{}, newError(ErrorInternal, "event_encode_error", err)
	}

	receipt, err := s.publisher.PutRecord(ctx, user, data)
	if err != nil {
		return IngestOutput{}, newError(ErrorUpstream, "kinesis_put_error", err)
	}
	return IngestOutput{
		PartitionKey: user,
		Timestamp:    string(rawTimestamp),
		Receipt:      receipt,
	}, nil
}

// encodeEvent writes v as compact JSON without HTML escaping.
func encodeEvent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
