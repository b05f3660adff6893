package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"cdk-samples/internal/domain"
)

type CardStore interface {
	PutCard(ctx context.Context, card domain.Card) error
}

type CardService struct {
	store CardStore
	newID func() string
}

type CreateCardInput struct {
	Deck  domain.DeckRef
	Front string
	Back  string
}

func NewCardService(store CardStore) (*CardService, error) {
	if store == nil {
		return nil, errors.New("usecase: card store must not be nil")
	}
	return &CardService{store: store, newID: uuid.NewString}, nil
}

// CreateCard stores a new card under in.Deck. The parent deck is not looked
// up; the caller is trusted to reference one that exists.
func (s *CardService) CreateCard(ctx context.Context, in CreateCardInput) (domain.Card, error) {
	switch {
	case in.Deck.Username == "":
		return domain.Card{}, InvalidInput("missing_deck_pk")
	case in.Deck.UID == "":
		return domain.Card{}, InvalidInput("missing_deck_sk")
	case in.Front == "":
		return domain.Card{}, InvalidInput("missing_card_front")
	case in.Back == "":
		return domain.Card{}, InvalidInput("missing_card_back")
	}

	card := domain.NewCard(in.Deck, s.newID(), in.Front, in.Back)
	if err := s.store.PutCard(ctx, card); err != nil {
		return domain.Card{}, newError(ErrorUpstream, "dynamodb_write_error", err)
	}
	return card, nil
}
