// Package dom binds the chat widget to a browser page through syscall/js.
// The binding itself only builds for js/wasm; markup helpers build everywhere.
package dom

import (
	"html"
	"strings"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/model/chat"
)

// Element ids and class the page must provide.
const (
	FormID       = "chat-form"
	InputID      = "user-input"
	LogID        = "chat-log"
	MessageClass = "message"

	// Attribute keys read from and written to the page.
	EndpointAttr  = "data-endpoint"
	ResolveAttr   = "data-resolve"
	MessageIDAttr = "data-message-id"
)

// Markup renders an entry as "<strong>Sender:</strong> text". Text is escaped
// so answers cannot inject markup into the page.
func Markup(msg chat.Message) string {
	var sb strings.Builder
	sb.WriteString("<strong>")
	sb.WriteString(html.EscapeString(string(msg.Sender)))
	sb.WriteString(":</strong> ")
	sb.WriteString(html.EscapeString(msg.Text))
	return sb.String()
}

// Selector matches the entry element carrying the message id.
func Selector(id string) string {
	return "[" + MessageIDAttr + `="` + strings.ReplaceAll(id, `"`, `\"`) + `"]`
}
