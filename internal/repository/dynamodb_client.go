package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"cdk-samples/internal/domain"
)

// dynamodbAPI is the minimal DynamoDB interface required by Client.
// Defined here for testability.
type dynamodbAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Client wraps a single DynamoDB table. The decks and cards tables each get
// their own Client.
type Client struct {
	api       dynamodbAPI
	tableName string
}

// New creates a new repository Client.
func New(api dynamodbAPI, tableName string) (*Client, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &Client{api: api, tableName: tableName}, nil
}

// QueryDecks returns every deck whose partition key equals username. Only the
// first result page is read; the table is expected to hold a handful of decks
// per owner.
func (c *Client) QueryDecks(ctx context.Context, username string) (domain.DeckPage, error) {
	if username == "" {
		return domain.DeckPage{}, errors.New("repository: QueryDecks: username is required")
	}

	out, err := c.api.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(c.tableName),
		KeyConditionExpression: aws.String("#username = :username"),
		ExpressionAttributeNames: map[string]string{
			"#username": "username",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":username": &types.AttributeValueMemberS{Value: username},
		},
	})
	if err != nil {
		return domain.DeckPage{}, fmt.Errorf("repository: QueryDecks query: %w", err)
	}

	page := domain.DeckPage{Items: []domain.Deck{}}
	if out == nil {
		return page, nil
	}
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &page.Items); err != nil {
		return domain.DeckPage{}, fmt.Errorf("repository: QueryDecks unmarshal: %w", err)
	}
	if page.Items == nil {
		page.Items = []domain.Deck{}
	}
	page.Count = out.Count
	page.ScannedCount = out.ScannedCount
	return page, nil
}

// PutDeck writes a deck, replacing any item with the same key.
func (c *Client) PutDeck(ctx context.Context, deck domain.Deck) error {
	if deck.Username == "" || deck.UID == "" {
		return errors.New("repository: PutDeck: username and uid are required")
	}
	item, err := attributevalue.MarshalMap(deck)
	if err != nil {
		return fmt.Errorf("repository: PutDeck marshal: %w", err)
	}
	if err := c.put(ctx, item); err != nil {
		return fmt.Errorf("repository: PutDeck: %w", err)
	}
	return nil
}

// PutCard writes a card, replacing any item with the same key.
func (c *Client) PutCard(ctx context.Context, card domain.Card) error {
	if card.Deck == "" || card.UID == "" {
		return errors.New("repository: PutCard: deck and uid are required")
	}
	item, err := attributevalue.MarshalMap(card)
	if err != nil {
		return fmt.Errorf("repository: PutCard marshal: %w", err)
	}
	if err := c.put(ctx, item); err != nil {
		return fmt.Errorf("repository: PutCard: %w", err)
	}
	return nil
}

func (c *Client) put(ctx context.Context, item map[string]types.AttributeValue) error {
	_, err := c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item:      item,
	})
	return err
}
