package term

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/widget"
)

// Run drives the terminal widget until the user quits or ctx ends. Outstanding
// exchanges are cancelled on exit.
func Run(ctx context.Context, asker widget.Asker, opts widget.Options, logger zerolog.Logger) error {
	surface := NewSurface()
	ctrl := widget.New(ctx, asker, surface, opts)
	defer ctrl.Close()

	program := tea.NewProgram(
		NewModel(ctrl, logger),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)
	surface.Attach(program.Send)

	logger.Info().Str("resolve", string(ctrl.Mode())).Msg("[term] widget started")
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run terminal widget: %w", err)
	}
	logger.Info().Int("messages", ctrl.Log().Len()).Msg("[term] widget stopped")
	return nil
}
