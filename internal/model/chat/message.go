package chat

import "time"

// Sender identifies who authored a log entry.
type Sender string

const (
	SenderUser Sender = "You"
	SenderBot  Sender = "Bot"
)

// Fixed strings shown by the widget.
const (
	PlaceholderText = "Thinking..."
	FallbackAnswer  = "Sorry, I couldn't find an answer."
	FailureText     = "An error occurred. Please try again."
)

// Message is one rendered entry of the conversation log. It is never persisted.
type Message struct {
	ID         string    `json:"id"`
	ExchangeID string    `json:"exchangeId,omitempty"`
	Sender     Sender    `json:"sender"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Line renders the message the way the log displays it.
func (m Message) Line() string {
	return string(m.Sender) + ": " + m.Text
}
