package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/model/chat"
)

func TestMarkup(t *testing.T) {
	got := Markup(chat.Message{Sender: chat.SenderBot, Text: "42"})
	assert.Equal(t, "<strong>Bot:</strong> 42", got)
}

func TestMarkupEscapesText(t *testing.T) {
	got := Markup(chat.Message{Sender: chat.SenderUser, Text: `<img src=x onerror="alert(1)">`})
	assert.Equal(t, "<strong>You:</strong> &lt;img src=x onerror=&#34;alert(1)&#34;&gt;", got)
}

func TestSelector(t *testing.T) {
	assert.Equal(t, `[data-message-id="abc"]`, Selector("abc"))
	assert.Equal(t, `[data-message-id="a\"b"]`, Selector(`a"b`))
}
