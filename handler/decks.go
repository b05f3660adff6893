package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"cdk-samples/internal/domain"
	"cdk-samples/internal/usecase"
)

type DeckUseCase interface {
	ListDecks(ctx context.Context, username string) (domain.DeckPage, error)
	CreateDeck(ctx context.Context, in usecase.CreateDeckInput) (domain.Deck, error)
}

type listDecksResponse struct {
	Decks domain.DeckPage `json:"decks"`
}

type createDeckResponse struct {
	Deck domain.Deck `json:"deck"`
}

// DecksHandler serves GET /decks and POST /decks.
type DecksHandler struct {
	decks DeckUseCase
	log   *slog.Logger
}

func NewDecksHandler(decks DeckUseCase, log *slog.Logger) (*DecksHandler, error) {
	if decks == nil {
		return nil, errors.New("handler: deck use case must not be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &DecksHandler{decks: decks, log: log}, nil
}

func (h *DecksHandler) HandleList(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	corrID := correlationID(req)
	log := h.log.With("handler", "get-decks", "correlation_id", corrID)

	page, err := h.decks.ListDecks(ctx, callerIdentity(req))
	if err != nil {
		return failure(ctx, log, corrID, err), nil
	}

	log.InfoContext(ctx, "decks listed", "count", len(page.Items))
	return jsonResponse(http.StatusOK, corrID, listDecksResponse{Decks: page}), nil
}

func (h *DecksHandler) HandleCreate(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	corrID := correlationID(req)
	log := h.log.With("handler", "post-decks", "correlation_id", corrID)

	form, err := formBody(req)
	if err != nil {
		return failure(ctx, log, corrID, err), nil
	}

	deck, err := h.decks.CreateDeck(ctx, usecase.CreateDeckInput{
		Username: callerIdentity(req),
		Name:     formValue(form, "name"),
	})
	if err != nil {
		return failure(ctx, log, corrID, err), nil
	}

	log.InfoContext(ctx, "deck created", "uid", deck.UID)
	return jsonResponse(http.StatusOK, corrID, createDeckResponse{Deck: deck}), nil
}

// failure logs err at a level matching its class and renders the error body.
func failure(ctx context.Context, log *slog.Logger, corrID string, err error) events.APIGatewayProxyResponse {
	status, body := classify(err)
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	log.Log(ctx, level, "request failed", "status", status, "code", body.Error, "reason", body.Reason, "err", err)
	return jsonResponse(status, corrID, body)
}
