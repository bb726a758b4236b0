package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/ports"
)

// Run starts the interactive questionnaire and blocks until the user quits
func Run(ctx context.Context, catalog []domain.Plant, searcher ports.ProductSearcher, delay time.Duration, baseURL string) error {
	// Log lines would tear through the alternate screen
	prev := log.Logger
	log.Logger = log.Output(io.Discard)
	defer func() { log.Logger = prev }()

	session := ports.NewLookupSession(ports.NewProductLookup(searcher, delay))
	defer session.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(NewModel(ctx, catalog, session, baseURL), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
