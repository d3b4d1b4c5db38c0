// Package term renders the chat widget in a terminal with bubbletea.
package term

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/model/chat"
	"github.com/zhouzirui/z-tavern/chatwidget/internal/widget"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// input line, border and help line
	chromeHeight = 4
)

// Model is the bubbletea model for the terminal widget.
type Model struct {
	ctrl     *widget.Controller
	input    textinput.Model
	viewport viewport.Model
	styles   styles
	logger   zerolog.Logger

	width  int
	height int
	err    error
}

// NewModel builds a focused terminal widget driving ctrl.
func NewModel(ctrl *widget.Controller, logger zerolog.Logger) Model {
	input := textinput.New()
	input.Placeholder = "Ask a question..."
	input.Prompt = "> "
	input.CharLimit = 0
	input.Focus()

	m := Model{
		ctrl:     ctrl,
		input:    input,
		viewport: viewport.New(defaultWidth, defaultHeight-chromeHeight),
		styles:   defaultStyles(),
		logger:   logger,
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m.submit()
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case entryChangedMsg:
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Border.Width(m.width).Render(m.input.View()))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Help.Render(m.helpLine()))
	return sb.String()
}

// submit mirrors the browser form's submit handler.
func (m *Model) submit() {
	ex, err := m.ctrl.HandleSubmit(inputForm{input: &m.input})
	m.err = err
	if err != nil {
		m.logger.Warn().Err(err).Msg("[term] submit rejected")
	} else if ex != nil {
		m.logger.Debug().Str("exchange", ex.ID()).Msg("[term] submitted")
	}
	m.refresh()
}

func (m *Model) resize(width, height int) {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= chromeHeight {
		height = chromeHeight + 1
	}
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - chromeHeight
	m.input.Width = width - lipgloss.Width(m.input.Prompt) - 1
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderLog())
	m.viewport.GotoBottom()
}

func (m Model) renderLog() string {
	messages := m.ctrl.Log().Messages()
	lines := make([]string, 0, len(messages))
	wrap := lipgloss.NewStyle().Width(m.width)
	for _, msg := range messages {
		lines = append(lines, wrap.Render(m.renderMessage(msg)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderMessage(msg chat.Message) string {
	label := m.styles.Bot
	if msg.Sender == chat.SenderUser {
		label = m.styles.User
	}

	text := msg.Text
	switch {
	case msg.Sender == chat.SenderBot && text == chat.PlaceholderText:
		text = m.styles.Placeholder.Render(text)
	case msg.Sender == chat.SenderBot && text == chat.FailureText:
		text = m.styles.Failure.Render(text)
	}
	return label.Render(string(msg.Sender)+":") + " " + text
}

func (m Model) helpLine() string {
	help := "enter send • pgup/pgdn scroll • esc quit"
	if pending := len(m.ctrl.Pending()); pending > 0 {
		help = fmt.Sprintf("%d awaiting • %s", pending, help)
	}
	if m.err != nil {
		help = m.err.Error() + " • " + help
	}
	return help
}
