// Package tui renders the progress of a sync attempt in the terminal.
//
// The view is a pure consumer of the engine's event stream: it never calls
// back into the sync engine except through the cancel function it is given.
package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-history-sync/internal/logger"
	"github.com/MKhiriev/go-history-sync/models"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrNoTerminalEvent is returned by RunSync when the event stream closed
// without a terminal event.
var ErrNoTerminalEvent = errors.New("sync stream closed without a terminal event")

type TUI struct {
	buildInfo models.AppBuildInfo
	logger    *logger.Logger

	options []tea.ProgramOption
}

func New(buildInfo models.AppBuildInfo, logger *logger.Logger, options ...tea.ProgramOption) *TUI {
	return &TUI{buildInfo: buildInfo, logger: logger, options: options}
}

// RunSync shows the attempt of projectID until events is closed and returns
// its terminal event. Quitting the view calls cancel and keeps draining the
// stream, so the attempt always reaches its terminal stage.
func (t *TUI) RunSync(ctx context.Context, projectID string, events <-chan models.SyncEvent, cancel context.CancelFunc) (models.SyncEvent, error) {
	model := newSyncModel(projectID, events, cancel)

	options := append([]tea.ProgramOption{tea.WithContext(ctx)}, t.options...)
	finalModel, err := tea.NewProgram(model, options...).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return models.SyncEvent{}, err
	}

	result, ok := finalModel.(syncModel)
	if !ok || !result.last.Terminal() {
		// program killed by ctx: drain so the attempt can release its project
		last := drain(events)
		if !last.Terminal() {
			return last, ErrNoTerminalEvent
		}
		return last, nil
	}

	t.logger.Debug().
		Str("func", "TUI.RunSync").
		Str("session_id", result.last.SessionID).
		Str("stage", result.last.Stage.String()).
		Msg("sync view closed")

	return result.last, nil
}

// BuildInfo renders the build information window.
func (t *TUI) BuildInfo() string {
	return renderBuildInfoWindow(t.buildInfo)
}

func drain(events <-chan models.SyncEvent) models.SyncEvent {
	var last models.SyncEvent
	for ev := range events {
		last = ev
	}
	return last
}
