package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ametelin/localtodo/internal/logger"
	"github.com/ametelin/localtodo/internal/service"
)

// TUI is the interactive terminal frontend over the client services.
type TUI struct {
	services *service.ClientServices
}

func New(services *service.ClientServices, _ *logger.Logger) *TUI {
	return &TUI{services: services}
}

// Run blocks until the user quits.
func (t *TUI) Run(ctx context.Context) error {
	model := newAppModel(ctx, t.services)
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
