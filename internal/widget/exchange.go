package widget

import (
	"context"
	"sync"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/model/chat"
)

// Exchange is one submission in flight. It is resolved exactly once.
type Exchange struct {
	id            string
	question      string
	questionID    string
	placeholderID string

	cancel context.CancelFunc
	done   chan struct{}

	mu    sync.Mutex
	state chat.ExchangeState
	err   error
}

// ID returns the exchange identifier.
func (e *Exchange) ID() string { return e.id }

// Question returns the trimmed text that was submitted.
func (e *Exchange) Question() string { return e.question }

// Done is closed once the placeholder has been resolved.
func (e *Exchange) Done() <-chan struct{} { return e.done }

// Cancel aborts the request. The placeholder resolves with the failure text.
func (e *Exchange) Cancel() { e.cancel() }

// Wait blocks until the exchange resolves or ctx ends.
func (e *Exchange) Wait(ctx context.Context) error {
	select {
	case <-e.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err is the request failure, if any.
func (e *Exchange) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// Info returns a snapshot of the exchange.
func (e *Exchange) Info() chat.ExchangeInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return chat.ExchangeInfo{
		ID:            e.id,
		Question:      e.question,
		QuestionID:    e.questionID,
		PlaceholderID: e.placeholderID,
		State:         e.state,
	}
}

func (e *Exchange) finish(state chat.ExchangeState, err error) {
	e.mu.Lock()
	e.state = state
	e.err = err
	e.mu.Unlock()
	close(e.done)
}
