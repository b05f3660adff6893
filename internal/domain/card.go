package domain

// Card is a child record of a deck carrying its own usage counters.
type Card struct {
	Deck        string  `dynamodbav:"deck"`
	UID         string  `dynamodbav:"uid"`
	Front       string  `dynamodbav:"card_front"`
	Back        string  `dynamodbav:"card_back"`
	NumAttempts int     `dynamodbav:"num_attempts"`
	NumCorrect  int     `dynamodbav:"num_correct"`
	CorrectRate float64 `dynamodbav:"correct_rate"`
}

// NewCard returns a card under ref with all counters at zero.
func NewCard(ref DeckRef, uid, front, back string) Card {
	return Card{
		Deck:  ref.String(),
		UID:   uid,
		Front: front,
		Back:  back,
	}
}
