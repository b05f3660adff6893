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
	cardsTable, err := resolver.Resolve(ctx, config.KeyCardsTable)
	if err != nil {
		fatal("failed to resolve cards table", err)
	}

	// ---- Clients ----
	cards, err := repository.New(awsdynamodb.NewFromConfig(awsCfg), cardsTable)
	if err != nil {
		fatal("failed to create cards repository", err)
	}

	// ---- Handler ----
	svc, err := usecase.NewCardService(cards)
	if err != nil {
		fatal("failed to create card service", err)
	}
	h, err := handler.NewCardsHandler(svc, logger)
	if err != nil {
		fatal("failed to create handler", err)
	}

	lambda.Start(h.HandleCreate)
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}
