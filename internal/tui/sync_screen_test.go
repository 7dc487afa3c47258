package tui

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/MKhiriev/go-history-sync/internal/logger"
	"github.com/MKhiriev/go-history-sync/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func feed(events ...models.SyncEvent) <-chan models.SyncEvent {
	ch := make(chan models.SyncEvent, len(events))
	for _, ev := range events {
		ch <- ev
	}
	close(ch)
	return ch
}

func apply(t *testing.T, m syncModel, msg tea.Msg) syncModel {
	t.Helper()

	updated, _ := m.Update(msg)
	next, ok := updated.(syncModel)
	require.True(t, ok)
	return next
}

func headless() []tea.ProgramOption {
	return []tea.ProgramOption{tea.WithInput(nil), tea.WithOutput(io.Discard), tea.WithoutRenderer()}
}

// ── syncModel ────────────────────────────────────────────────────────────────

func TestSyncModel_ShowsStageLabels(t *testing.T) {
	m := newSyncModel("project-1", feed(), nil)

	for stage, label := range stageLabels {
		t.Run(stage.String(), func(t *testing.T) {
			next := apply(t, m, syncEventMsg{event: models.SyncEvent{Stage: stage, Total: -1}})
			assert.Contains(t, next.View(), label)
		})
	}
}

func TestSyncModel_ShowsByteProgress(t *testing.T) {
	m := newSyncModel("project-1", feed(), nil)

	m = apply(t, m, syncEventMsg{event: models.SyncEvent{Stage: models.StageSync, Transferred: 1024, Total: 4096}})
	view := m.View()
	assert.Contains(t, view, "1.0 KiB / 4.0 KiB")

	m = apply(t, m, syncEventMsg{event: models.SyncEvent{Stage: models.StageFetchHistory, Transferred: 300, Total: -1}})
	assert.Contains(t, m.View(), "300 B")
}

func TestSyncModel_NoProgressOutsideTransfers(t *testing.T) {
	m := newSyncModel("project-1", feed(), nil)
	m = apply(t, m, syncEventMsg{event: models.SyncEvent{Stage: models.StageMerge, Transferred: 10, Total: 20}})

	assert.Empty(t, m.transferView())
}

func TestSyncModel_TerminalSummaries(t *testing.T) {
	tests := []struct {
		name  string
		event models.SyncEvent
		want  string
	}{
		{"all done", models.SyncEvent{Stage: models.StageAllDone}, "История синхронизирована"},
		{"up to date", models.SyncEvent{Stage: models.StageUpToDate}, "актуальна"},
		{"cancelled", models.SyncEvent{Stage: models.StageCancelled}, "отменена"},
		{"forbidden", models.SyncEvent{Stage: models.StageForbiddenError, Err: errors.New("403")}, "запрещена"},
		{"network", models.SyncEvent{Stage: models.StageFetchHistoryError, Err: errors.New("dial tcp: connection refused")}, "Сервер недоступен"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := apply(t, newSyncModel("project-1", feed(), nil), syncEventMsg{event: tt.event})
			assert.Contains(t, m.View(), tt.want)
		})
	}
}

func TestSyncModel_QuitCancelsOnce(t *testing.T) {
	calls := 0
	m := newSyncModel("project-1", feed(), func() { calls++ })

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	assert.Equal(t, 1, calls)
	assert.True(t, m.cancelling)
	assert.False(t, m.done, "view keeps draining until the stream closes")
	assert.Contains(t, m.View(), "отмена")
}

func TestSyncModel_ClosedStreamQuits(t *testing.T) {
	m := newSyncModel("project-1", feed(), nil)

	updated, cmd := m.Update(syncClosedMsg{})
	require.NotNil(t, cmd)
	assert.True(t, updated.(syncModel).done)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestWaitForEvent(t *testing.T) {
	ev := models.SyncEvent{Stage: models.StageMerge}
	events := feed(ev)

	assert.Equal(t, syncEventMsg{event: ev}, waitForEvent(events)())
	assert.Equal(t, syncClosedMsg{}, waitForEvent(events)())
}

// ── RunSync ──────────────────────────────────────────────────────────────────

func TestRunSync_ReturnsTerminalEvent(t *testing.T) {
	ui := New(models.NewAppBuildInfo("1.0.0", "N/A", "N/A"), logger.Nop(), headless()...)

	events := feed(
		models.SyncEvent{SessionID: "s1", Stage: models.StageIdle},
		models.SyncEvent{SessionID: "s1", Stage: models.StageFetchHistory, Total: -1},
		models.SyncEvent{SessionID: "s1", Stage: models.StageUpToDate},
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	last, err := ui.RunSync(ctx, "project-1", events, cancel)
	require.NoError(t, err)
	assert.Equal(t, models.StageUpToDate, last.Stage)
	assert.Equal(t, "s1", last.SessionID)
}

func TestRunSync_StreamWithoutTerminalEvent(t *testing.T) {
	ui := New(models.NewAppBuildInfo("1.0.0", "N/A", "N/A"), logger.Nop(), headless()...)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := ui.RunSync(ctx, "project-1", feed(models.SyncEvent{Stage: models.StageMerge}), cancel)
	assert.ErrorIs(t, err, ErrNoTerminalEvent)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatBytes(tt.in))
	}
}

func TestBuildInfo(t *testing.T) {
	ui := New(models.NewAppBuildInfo("1.2.3", "", "abc"), logger.Nop())

	view := ui.BuildInfo()
	assert.Contains(t, view, "1.2.3")
	assert.Contains(t, view, "abc")
	assert.Contains(t, view, "go-history-sync")
}

func TestBuildInfo_ZeroValue(t *testing.T) {
	view := New(models.AppBuildInfo{}, logger.Nop()).BuildInfo()

	assert.Contains(t, view, models.NotAvailable)
	assert.Contains(t, view, "ИНФОРМАЦИЯ О ПРОГРАММЕ")
}
