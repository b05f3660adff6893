package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"cdk-samples/internal/usecase"
)

type IngestUseCase interface {
	Ingest(ctx context.Context, body []byte) (usecase.IngestOutput, error)
}

type statusResponse struct {
	Status string `json:"status"`
}

// IngestHandler serves POST /responses, forwarding each event to the stream.
type IngestHandler struct {
	ingest IngestUseCase
	log    *slog.Logger
}

func NewIngestHandler(ingest IngestUseCase, log *slog.Logger) (*IngestHandler, error) {
	if ingest == nil {
		return nil, errors.New("handler: ingest use case must not be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &IngestHandler{ingest: ingest, log: log}, nil
}

func (h *IngestHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	corrID := correlationID(req)
	log := h.log.With("handler", "post-responses", "correlation_id", corrID)

	body, err := requestBody(req)
	if err != nil {
		return failure(ctx, log, corrID, err), nil
	}
	log.DebugContext(ctx, "event received", "body", body)

	out, err := h.ingest.Ingest(ctx, []byte(body))
	if err != nil {
		return failure(ctx, log, corrID, err), nil
	}

	log.InfoContext(ctx, "event forwarded",
		"partition_key", out.PartitionKey,
		"timestamp", out.Timestamp,
		"shard_id", out.Receipt.ShardID,
		"sequence_number", out.Receipt.SequenceNumber,
	)
	return jsonResponse(http.StatusOK, corrID, statusResponse{Status: "OK"}), nil
}
