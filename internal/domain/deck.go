package domain

// Deck is a top-level record owned by a single caller identity.
type Deck struct {
	Username string `dynamodbav:"username" json:"username"`
	UID      string `dynamodbav:"uid" json:"uid"`
	Name     string `dynamodbav:"deck_name" json:"deck_name"`
}

// DeckPage is the result of one owner lookup. Field names follow the table
// query result so API clients see the same shape the table returns.
type DeckPage struct {
	Items        []Deck `json:"Items"`
	Count        int32  `json:"Count"`
	ScannedCount int32  `json:"ScannedCount"`
}
