package term

import (
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/model/chat"
)

// entryChangedMsg tells the model the log needs redrawing.
type entryChangedMsg struct {
	msg chat.Message
}

// Surface forwards log changes into a running bubbletea program. Entries are
// read back from the controller's log on redraw, so the surface keeps no copy.
type Surface struct {
	mu     sync.Mutex
	notify func(tea.Msg)
}

// NewSurface returns a surface that drops notifications until Attach.
func NewSurface() *Surface {
	return &Surface{}
}

// Attach routes notifications to send, typically (*tea.Program).Send.
func (s *Surface) Attach(send func(tea.Msg)) {
	s.mu.Lock()
	s.notify = send
	s.mu.Unlock()
}

// Append is called from inside Update, which redraws on its own.
func (s *Surface) Append(chat.Message) {}

// Replace is called from exchange goroutines once an answer arrives.
func (s *Surface) Replace(msg chat.Message) {
	s.mu.Lock()
	send := s.notify
	s.mu.Unlock()
	if send == nil {
		return
	}
	// Program.Send blocks until the event loop reads it; never hold the
	// controller's lock while waiting.
	go send(entryChangedMsg{msg: msg})
}

// inputForm exposes the text input to the controller.
type inputForm struct {
	input *textinput.Model
}

func (f inputForm) Value() string { return f.input.Value() }
func (f inputForm) Clear()        { f.input.Reset() }
