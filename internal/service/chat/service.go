package chat

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zhouzirui/z-tavern/chatwidget/internal/model/chat"
)

var (
	ErrSenderRequired  = errors.New("sender is required")
	ErrMessageNotFound = errors.New("message not found")
)

// Log is the ordered, in-memory conversation history. Entries are only ever
// appended; existing entries may have their text replaced.
type Log struct {
	mu       sync.RWMutex
	messages []chat.Message
	index    map[string]int
	now      func() time.Time
}

// NewLog returns an empty conversation log.
func NewLog() *Log {
	return &Log{
		messages: make([]chat.Message, 0, 16),
		index:    make(map[string]int),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Append adds a message at the end of the log and returns the stored copy.
func (l *Log) Append(sender chat.Sender, text, exchangeID string) (chat.Message, error) {
	if sender == "" {
		return chat.Message{}, ErrSenderRequired
	}

	message := chat.Message{
		ID:         uuid.NewString(),
		ExchangeID: exchangeID,
		Sender:     sender,
		Text:       text,
		CreatedAt:  l.now(),
	}

	l.mu.Lock()
	l.index[message.ID] = len(l.messages)
	l.messages = append(l.messages, message)
	l.mu.Unlock()

	return message, nil
}

// Replace sets the sender and text of the message with the given id.
func (l *Log) Replace(id string, sender chat.Sender, text string) (chat.Message, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	pos, ok := l.index[id]
	if !ok {
		return chat.Message{}, ErrMessageNotFound
	}
	l.messages[pos].Sender = sender
	l.messages[pos].Text = text
	return l.messages[pos], nil
}

// ReplaceLast rewrites whichever message is currently last. It reports false
// when the log is empty.
func (l *Log) ReplaceLast(sender chat.Sender, text string) (chat.Message, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.messages) == 0 {
		return chat.Message{}, false
	}
	last := &l.messages[len(l.messages)-1]
	last.Sender = sender
	last.Text = text
	return *last, true
}

// Len reports how many messages the log holds.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}

// Messages returns a copy of the log in render order.
func (l *Log) Messages() []chat.Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	copied := make([]chat.Message, len(l.messages))
	copy(copied, l.messages)
	return copied
}

// Lines renders every message as "Sender: text".
func (l *Log) Lines() []string {
	messages := l.Messages()
	lines := make([]string, len(messages))
	for i, m := range messages {
		lines[i] = m.Line()
	}
	return lines
}
