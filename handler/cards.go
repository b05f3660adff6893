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

type CardUseCase interface {
	CreateCard(ctx context.Context, in usecase.CreateCardInput) (domain.Card, error)
}

// createdCard echoes only the key of the new card.
type createdCard struct {
	Deck string `json:"deck"`
	UID  string `json:"uid"`
}

type createCardResponse struct {
	Card createdCard `json:"card"`
}

// CardsHandler serves POST /cards.
type CardsHandler struct {
	cards CardUseCase
	log   *slog.Logger
}

func NewCardsHandler(cards CardUseCase, log *slog.Logger) (*CardsHandler, error) {
	if cards == nil {
		return nil, errors.New("handler: card use case must not be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &CardsHandler{cards: cards, log: log}, nil
}

func (h *CardsHandler) HandleCreate(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	corrID := correlationID(req)
	log := h.log.With("handler", "post-cards", "correlation_id", corrID)

	form, err := formBody(req)
	if err != nil {
		return failure(ctx, log, corrID, err), nil
	}

	card, err := h.cards.CreateCard(ctx, usecase.CreateCardInput{
		Deck: domain.DeckRef{
			Username: formValue(form, "deck_pk"),
			UID:      formValue(form, "deck_sk"),
		},
		Front: formValue(form, "card_front"),
		Back:  formValue(form, "card_back"),
	})
	if err != nil {
		return failure(ctx, log, corrID, err), nil
	}

	log.InfoContext(ctx, "card created", "deck", card.Deck, "uid", card.UID)
	return jsonResponse(http.StatusOK, corrID, createCardResponse{Card: createdCard{Deck: card.Deck, UID: card.UID}}), nil
}
