// Package widget implements the chat widget controller: it turns a form
// submission into a You/Bot pair on the conversation log and resolves the
// Bot placeholder once the answer endpoint responds.
package widget

import (
	"context"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/model/chat"
)

// Form is the input side of the widget.
type Form interface {
	Value() string
	Clear()
}

// Surface renders log entries. Replace receives the full updated entry; the
// surface locates it by ID.
type Surface interface {
	Append(msg chat.Message)
	Replace(msg chat.Message)
}

// Asker sends a question to the answer endpoint.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// AskerFunc adapts a function to Asker.
type AskerFunc func(ctx context.Context, question string) (string, error)

func (f AskerFunc) Ask(ctx context.Context, question string) (string, error) {
	return f(ctx, question)
}

// ResolveMode selects how an answer finds the entry it replaces.
type ResolveMode string

const (
	// ResolveLast replaces whichever entry is last when the answer arrives,
	// so overlapping exchanges can overwrite each other's placeholders.
	ResolveLast ResolveMode = "last"
	// ResolveByID replaces the placeholder created by the same exchange.
	ResolveByID ResolveMode = "id"
)

// ParseResolveMode validates a mode name. Empty selects ResolveLast.
func ParseResolveMode(raw string) (ResolveMode, bool) {
	switch ResolveMode(raw) {
	case "", ResolveLast:
		return ResolveLast, true
	case ResolveByID:
		return ResolveByID, true
	default:
		return "", false
	}
}

type nopSurface struct{}

func (nopSurface) Append(chat.Message)  {}
func (nopSurface) Replace(chat.Message) {}
