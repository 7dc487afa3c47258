package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-history-sync/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	maxBarWidth  = 60
	maxTitleText = 40
)

var stageLabels = map[models.SyncStage]string{
	models.StageIdle:         "Подготовка",
	models.StageFetchHistory: "Загрузка удалённой истории",
	models.StageMerge:        "Слияние историй",
	models.StageSync:         "Отправка объединённой истории",
}

type syncModel struct {
	projectID string
	events    <-chan models.SyncEvent
	cancel    context.CancelFunc

	spinner  spinner.Model
	progress progress.Model

	last       models.SyncEvent
	done       bool
	cancelling bool
}

func newSyncModel(projectID string, events <-chan models.SyncEvent, cancel context.CancelFunc) syncModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return syncModel{
		projectID: projectID,
		events:    events,
		cancel:    cancel,
		spinner:   s,
		progress:  progress.New(progress.WithDefaultGradient(), progress.WithWidth(maxBarWidth)),
		last:      models.SyncEvent{Stage: models.StageIdle, Total: -1},
	}
}

// waitForEvent reads the next event of the attempt.
func waitForEvent(events <-chan models.SyncEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return syncClosedMsg{}
		}
		return syncEventMsg{event: ev}
	}
}

func (m syncModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForEvent(m.events))
}

func (m syncModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKeys(msg)

	case tea.WindowSizeMsg:
		m.progress.Width = min(max(msg.Width-8, 10), maxBarWidth)
		return m, nil

	case syncEventMsg:
		m.last = msg.event
		return m, waitForEvent(m.events)

	case syncClosedMsg:
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m syncModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.done {
		if key.Matches(msg, keys.quit, keys.enter, keys.esc) {
			return m, tea.Quit
		}
		return m, nil
	}

	// the attempt finishes on its own after cancellation, keep draining
	if key.Matches(msg, keys.quit) && !m.cancelling {
		m.cancelling = true
		if m.cancel != nil {
			m.cancel()
		}
	}
	return m, nil
}

func (m syncModel) View() string {
	title := "СИНХРОНИЗАЦИЯ " + fitText(m.projectID, maxTitleText)

	if m.last.Terminal() {
		hotKeys := "enter: закрыть"
		if m.last.Stage.IsError() {
			hotKeys = ""
		}
		return appStyle.Render(renderPage(title, m.summaryView(), hotKeys))
	}

	var b strings.Builder
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(stageLabel(m.last.Stage))

	if bar := m.transferView(); bar != "" {
		b.WriteString("\n\n")
		b.WriteString(bar)
	}

	hotKeys := "q: отменить"
	if m.cancelling {
		hotKeys = "отмена..."
	}
	return appStyle.Render(renderPage(title, b.String(), hotKeys))
}

// transferView renders byte progress of the current fetch or push.
func (m syncModel) transferView() string {
	ev := m.last
	if ev.Stage != models.StageFetchHistory && ev.Stage != models.StageSync {
		return ""
	}
	if ev.Transferred == 0 && ev.Total <= 0 {
		return ""
	}

	if ev.Total <= 0 {
		return formatBytes(ev.Transferred)
	}

	ratio := float64(ev.Transferred) / float64(ev.Total)
	return fmt.Sprintf("%s\n%s / %s",
		m.progress.ViewAs(min(ratio, 1)),
		formatBytes(ev.Transferred),
		formatBytes(ev.Total),
	)
}

func (m syncModel) summaryView() string {
	message := summarize(m.last)
	if m.last.Stage.IsError() {
		return errorOverlayModel{message: message}.View()
	}
	return successStyle.Render(message)
}

func stageLabel(stage models.SyncStage) string {
	if label, ok := stageLabels[stage]; ok {
		return label
	}
	return stage.String()
}
