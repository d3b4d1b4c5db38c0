package chat

// ExchangeState tracks one submission from dispatch to resolution.
type ExchangeState string

const (
	ExchangeAwaiting  ExchangeState = "awaiting"
	ExchangeResolved  ExchangeState = "resolved"
	ExchangeFailed    ExchangeState = "failed"
	ExchangeCancelled ExchangeState = "cancelled"
)

// ExchangeInfo is a snapshot of a user submission paired with its placeholder.
type ExchangeInfo struct {
	ID            string        `json:"id"`
	Question      string        `json:"question"`
	QuestionID    string        `json:"questionId"`
	PlaceholderID string        `json:"placeholderId"`
	State         ExchangeState `json:"state"`
}
