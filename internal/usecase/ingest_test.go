package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"cdk-samples/internal/domain"
)

type fakePublisher struct {
	receipt domain.RecordReceipt
	err     error
	keys    []string
	data    [][]byte
}

func (f *fakePublisher) PutRecord(_ context.Context, partitionKey string, data []byte) (domain.RecordReceipt, error) {
	f.keys = append(f.keys, partitionKey)
	f.data = append(f.data, data)
	return f.receipt, f.err
}

func TestIngest_ForwardsPayloadUnchanged(t *testing.T) {
	pub := &fakePublisher{receipt: domain.RecordReceipt{ShardID: "shardId-0", SequenceNumber: "1"}}
	svc, err := NewIngestService(pub)
	require.NoError(t, err)

	out, err := svc.Ingest(context.Background(), []byte(`{"user":"alice","timestamp":123}`))
	require.NoError(t, err)
	require.Equal(t, "alice", out.PartitionKey)
	require.Equal(t, "123", out.Timestamp)
	require.Equal(t, "shardId-0", out.Receipt.ShardID)

	require.Equal(t, []string{"alice"}, pub.keys)
	var got map[string]any
	require.NoError(t, json.Unmarshal(pub.data[0], &got))
	require.Equal(t, map[string]any{"user": "alice", "timestamp": float64(123)}, got)
}

func TestIngest_KeepsExtraFieldsAndCompacts(t *testing.T) {
	pub := &fakePublisher{}
	svc, err := NewIngestService(pub)
	require.NoError(t, err)

	body := "{\n  \"user\": \"bob\",\n  \"timestamp\": \"2024-05-01T10:00:00Z\",\n  \"answers\": [1, 2, {\"q\": \"x y\"}],\n  \"big\": 12345678901234567890\n}"
	_, err = svc.Ingest(context.Background(), []byte(body))
	require.NoError(t, err)
	require.Equal(t, `{"answers":[1,2,{"q":"x y"}],"big":12345678901234567890,"timestamp":"2024-05-01T10:00:00Z","user":"bob"}`, string(pub.data[0]))
}

func TestIngest_RepeatedKeysLastValueWins(t *testing.T) {
	pub := &fakePublisher{}
	svc, err := NewIngestService(pub)
	require.NoError(t, err)

	out, err := svc.Ingest(context.Background(), []byte(`{"user":"alice","user":"mallory","timestamp":1,"timestamp":2}`))
	require.NoError(t, err)
	require.Equal(t, "mallory", out.PartitionKey)
	require.Equal(t, "2", out.Timestamp)
	require.Equal(t, []string{"mallory"}, pub.keys)
	require.Equal(t, `{"timestamp":2,"user":"mallory"}`, string(pub.data[0]))

	var forwarded map[string]any
	require.NoError(t, json.Unmarshal(pub.data[0], &forwarded))
	require.Equal(t, pub.keys[0], forwarded["user"])
}

func TestIngest_RepeatedUserMustStillBeString(t *testing.T) {
	pub := &fakePublisher{}
	svc, err := NewIngestService(pub)
	require.NoError(t, err)

	_, err = svc.Ingest(context.Background(), []byte(`{"user":"alice","user":7,"timestamp":1}`))
	requireCode(t, err, ErrorInvalidInput, "invalid_user")
	require.Empty(t, pub.keys)
}

func TestIngest_KeepsHTMLCharacters(t *testing.T) {
	pub := &fakePublisher{}
	svc, err := NewIngestService(pub)
	require.NoError(t, err)

	_, err = svc.Ingest(context.Background(), []byte(`{"user":"a&b","timestamp":1,"note":"<b>"}`))
	require.NoError(t, err)
	require.Equal(t, `{"note":"<b>","timestamp":1,"user":"a&b"}`, string(pub.data[0]))
}

func TestIngest_RejectsBeforePublishing(t *testing.T) {
	cases := []struct {
		body   string
		reason string
	}{
		{`not-json`, "malformed_json"},
		{``, "malformed_json"},
		{`["alice", 1]`, "event_not_object"},
		{`"alice"`, "event_not_object"},
		{`{"timestamp":1}`, "missing_user"},
		{`{"user":42,"timestamp":1}`, "invalid_user"},
		{`{"user":"","timestamp":1}`, "invalid_user"},
		{`{"user":"` + strings.Repeat("u", 257) + `","timestamp":1}`, "user_too_long"},
		{`{"user":"alice"}`, "missing_timestamp"},
	}
	for _, tc := range cases {
		t.Run(tc.reason, func(t *testing.T) {
			pub := &fakePublisher{}
			svc, err := NewIngestService(pub)
			require.NoError(t, err)

			_, err = svc.Ingest(context.Background(), []byte(tc.body))
			requireCode(t, err, ErrorInvalidInput, tc.reason)
			require.Empty(t, pub.keys)
		})
	}
}

func TestIngest_NullTimestampCountsAsPresent(t *testing.T) {
	pub := &fakePublisher{}
	svc, err := NewIngestService(pub)
	require.NoError(t, err)

	_, err = svc.Ingest(context.Background(), []byte(`{"user":"alice","timestamp":null}`))
	require.NoError(t, err)
}

func TestIngest_PartitionKeyAtLimit(t *testing.T) {
	pub := &fakePublisher{}
	svc, err := NewIngestService(pub)
	require.NoError(t, err)

	user := strings.Repeat("é", 256)
	_, err = svc.Ingest(context.Background(), []byte(`{"user":"`+user+`","timestamp":1}`))
	require.NoError(t, err)
	require.Equal(t, []string{user}, pub.keys)
}

func TestIngest_PublisherError(t *testing.T) {
	svc, err := NewIngestService(&fakePublisher{err: errors.New("ResourceNotFoundException")})
	require.NoError(t, err)

	_, err = svc.Ingest(context.Background(), []byte(`{"user":"alice","timestamp":1}`))
	requireCode(t, err, ErrorUpstream, "kinesis_put_error")
}

func TestNewIngestService_ValidatesDependency(t *testing.T) {
	_, err := NewIngestService(nil)
	require.Error(t, err)
}
