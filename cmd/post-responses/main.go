package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awskinesis "github.com/aws/aws-sdk-go-v2/service/kinesis"

	"cdk-samples/handler"
	"cdk-samples/internal/config"
	"cdk-samples/internal/logging"
	"cdk-samples/internal/stream"
	"cdk-samples/internal/usecase"
)

func main() {
	ctx := context.Background()
	logger := logging.New(logging.FromEnv())
	slog.SetDefault(logger)

	// ---- AWS SDK config ----
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		fatal("failed to load AWS config", err)
	}

	// ---- Configuration (read only here) ----
	resolver, err := config.FromEnvironment(awsCfg)
	if err != nil {
		fatal("failed to create config resolver", err)
	}
	streamName, err := resolver.Resolve(ctx, config.KeyStreamName)
	if err != nil {
		fatal("failed to resolve data stream name", err)
	}

	// ---- Clients ----
	publisher, err := stream.New(awskinesis.NewFromConfig(awsCfg), streamName)
	if err != nil {
		fatal("failed to create stream client", err)
	}

	// ---- Handler ----
	svc, err := usecase.NewIngestService(publisher)
	if err != nil {
		fatal("failed to create ingest service", err)
	}
	h, err := handler.NewIngestHandler(svc, logger)
	if err != nil {
		fatal("failed to create handler", err)
	}

	lambda.Start(h.Handle)
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}
