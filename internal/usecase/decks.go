package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"cdk-samples/internal/domain"
)

type DeckStore interface {
	QueryDecks(ctx context.Context, username string) (domain.DeckPage, error)
	PutDeck(ctx context.Context, deck domain.Deck) error
}

type DeckService struct {
	store DeckStore
	newID func() string
}

type CreateDeckInput struct {
	Username string
	Name     string
}

func NewDeckService(store DeckStore) (*DeckService, error) {
	if store == nil {
		return nil, errors.New("usecase: deck store must not be nil")
	}
	return &DeckService{store: store, newID: uuid.NewString}, nil
}

// ListDecks returns the decks owned by username. username must come from the
// authorizer, never from the request body.
func (s *DeckService) ListDecks(ctx context.Context, username string) (domain.DeckPage, error) {
	if username == "" {
		return domain.DeckPage{}, newError(ErrorUnauthorized, "missing_identity", nil)
	}
	page, err := s.store.QueryDecks(ctx, username)
	if err != nil {
		return domain.DeckPage{}, newError(ErrorUpstream, "dynamodb_query_error", err)
	}
	return page, nil
}

func (s *DeckService) CreateDeck(ctx context.Context, in CreateDeckInput) (domain.Deck, error) {
	if in.Username == "" {
		return domain.Deck{}, newError(ErrorUnauthorized, "missing_identity", nil)
	}
	if in.Name == "" {
		return domain.Deck{}, InvalidInput("missing_name")
	}

	deck := domain.Deck{
		Username: in.Username,
		UID:      s.newID(),
		Name:     in.Name,
	}
	if err := s.store.PutDeck(ctx, deck); err != nil {
		return domain.Deck{}, newError(ErrorUpstream, "dynamodb_write_error", err)
	}
	return deck, nil
}
