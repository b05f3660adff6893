package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"cdk-samples/handler"
	"cdk-samples/internal/config"
	"cdk-samples/internal/logging"
	"cdk-samples/internal/repository"
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
	decksTable, err := resolver.Resolve(ctx, config.KeyDecksTable)
	if err != nil {
		fatal("failed to resolve decks table", err)
	}

	// ---- Clients ----
	decks, err := repository.New(awsdynamodb.NewFromConfig(awsCfg), decksTable)
	if err != nil {
		fatal("failed to create decks repository", err)
	}

	// ---- Handler ----
	svc, err := usecase.NewDeckService(decks)
	if err != nil {
		fatal("failed to create deck service", err)
	}
	h, err := handler.NewDecksHandler(svc, logger)
	if err != nil {
		fatal("failed to create handler", err)
	}

	lambda.Start(h.HandleCreate)
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}
