// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-history-sync/internal/adapter"
	"github.com/MKhiriev/go-history-sync/internal/config"
	"github.com/MKhiriev/go-history-sync/internal/crypto"
	"github.com/MKhiriev/go-history-sync/internal/history"
	"github.com/MKhiriev/go-history-sync/internal/logger"
	"github.com/MKhiriev/go-history-sync/internal/mock"
	"github.com/MKhiriev/go-history-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testURL = "https://history.example.com/api/projects/abc/history"

var (
	sealedRemote = []byte("sealed-remote")
	sealedMerged = []byte("sealed-merged")
)

// newTestSyncSvc: хелпер для создания clientSyncService с моками
func newTestSyncSvc(
	t *testing.T,
	ctrl *gomock.Controller,
) (
	*clientSyncService,
	*mock.MockTransport,
	*mock.MockSnapshotCipher,
	*mock.MockHistoryInstaller,
) {
	t.Helper()
	transport := mock.NewMockTransport(ctrl)
	cipher := mock.NewMockSnapshotCipher(ctrl)
	installer := mock.NewMockHistoryInstaller(ctrl)

	svc := NewClientSyncService(transport, cipher, installer, config.ClientWorkers{}, logger.Nop()).(*clientSyncService)
	svc.now = func() time.Time { return fixedTime }

	return svc, transport, cipher, installer
}

func newRequest(t *testing.T, local *history.Store) models.SyncRequest {
	t.Helper()
	return models.SyncRequest{
		ProjectID:     local.RootKey(),
		URL:           testURL,
		Secret:        testSecret,
		LocalSnapshot: snapshotOf(t, local),
	}
}

// expectRemote makes the transport serve remote as an encrypted snapshot.
func expectRemote(t *testing.T, transport *mock.MockTransport, cipher *mock.MockSnapshotCipher, remote *history.Store) {
	t.Helper()
	transport.EXPECT().
		Fetch(gomock.Any(), testURL, gomock.Any()).
		Return(adapter.Response{StatusCode: http.StatusOK, Body: sealedRemote}, nil)
	cipher.EXPECT().
		Decrypt(sealedRemote, testSecret, testProjectID).
		Return(snapshotOf(t, remote), nil)
}

func runAttempt(t *testing.T, svc *clientSyncService, ctx context.Context, req models.SyncRequest) []models.SyncEvent {
	t.Helper()
	events, err := svc.Start(ctx, req)
	require.NoError(t, err)
	return collectEvents(t, events)
}

// ── Scenarios ────────────────────────────────────────────────────────────────

func TestClientSyncService_FirstPush(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, transport, cipher, installer := newTestSyncSvc(t, ctrl)

	local := buildStore(t, testProjectID, 0, 1, 2, 3)

	// удалённой истории ещё нет
	transport.EXPECT().
		Fetch(gomock.Any(), testURL, gomock.Any()).
		Return(adapter.Response{StatusCode: http.StatusNotFound}, nil)

	cipher.EXPECT().
		Encrypt(gomock.Any(), testSecret, testProjectID).
		DoAndReturn(func(plain, _ []byte, projectID string) ([]byte, error) {
			merged, err := history.Unmarshal(plain, projectID)
			if !assert.NoError(t, err) {
				return nil, err
			}
			assert.Equal(t, int64(1), merged.Version())
			assert.Equal(t, 3, merged.Len())
			assert.Equal(t, local.CalculateHash(), merged.CalculateHash())
			return sealedMerged, nil
		})

	transport.EXPECT().
		Push(gomock.Any(), testURL, sealedMerged, "", gomock.Any()).
		Return(adapter.Response{StatusCode: http.StatusOK}, nil)

	installer.EXPECT().
		Install(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, merged *history.Store) error {
			assert.Equal(t, int64(1), merged.Version())
			assert.Equal(t, 3, merged.Len())
			return nil
		})

	events := runAttempt(t, svc, context.Background(), newRequest(t, local))

	assert.Equal(t, []models.SyncStage{
		models.StageIdle,
		models.StageFetchHistory,
		models.StageMerge,
		models.StageSync,
		models.StageAllDone,
	}, stageSequence(events))

	last := lastEvent(t, events)
	assert.True(t, last.Terminal())
	assert.NoError(t, last.Err)
}

func TestClientSyncService_UpToDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, transport, cipher, _ := newTestSyncSvc(t, ctrl)

	local := buildStore(t, testProjectID, 5, 1, 2)
	remote := buildStore(t, testProjectID, 5, 1, 2)

	expectRemote(t, transport, cipher, remote)
	// Push, Encrypt и Install не ожидаются: gomock упадёт при вызове

	events := runAttempt(t, svc, context.Background(), newRequest(t, local))

	assert.Equal(t, []models.SyncStage{
		models.StageIdle,
		models.StageFetchHistory,
		models.StageMerge,
		models.StageUpToDate,
	}, stageSequence(events))
	assert.NoError(t, lastEvent(t, events).Err)
}

func TestClientSyncService_WrongKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mock.NewMockTransport(ctrl)
	installer := mock.NewMockHistoryInstaller(ctrl)

	// real cipher: the remote was sealed under another secret
	cipher := crypto.NewSnapshotCipher()
	svc := NewClientSyncService(transport, cipher, installer, config.ClientWorkers{}, logger.Nop())

	remote := buildStore(t, testProjectID, 3, 1)
	sealed, err := cipher.Encrypt(snapshotOf(t, remote), []byte("someone else's secret"), testProjectID)
	require.NoError(t, err)

	transport.EXPECT().
		Fetch(gomock.Any(), testURL, gomock.Any()).
		Return(adapter.Response{StatusCode: http.StatusOK, Body: sealed}, nil)

	local := buildStore(t, testProjectID, 0, 1, 2)
	events, err := svc.Start(context.Background(), newRequest(t, local))
	require.NoError(t, err)
	got := collectEvents(t, events)

	last := lastEvent(t, got)
	assert.Equal(t, models.StageFetchHistoryError, last.Stage)
	assert.ErrorIs(t, last.Err, crypto.ErrDecrypt)
}

func TestClientSyncService_RejectedDivergence(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, transport, cipher, _ := newTestSyncSvc(t, ctrl)

	local := buildStore(t, testProjectID, 2, 1, 2)
	remote := buildStore(t, testProjectID, 4, 1, 3)
	before := snapshotOf(t, local)

	expectRemote(t, transport, cipher, remote)

	req := newRequest(t, local)
	events := runAttempt(t, svc, context.Background(), req)

	last := lastEvent(t, events)
	assert.Equal(t, models.StageMergeError, last.Stage)
	assert.ErrorIs(t, last.Err, history.ErrMergeRejected)

	// локальная история не изменилась
	assert.Equal(t, before, req.LocalSnapshot)
	assert.Equal(t, before, snapshotOf(t, local))
}

func TestClientSyncService_ForbiddenPushLeavesLocalUnchanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, transport, cipher, installer := newTestSyncSvc(t, ctrl)

	local := buildStore(t, testProjectID, 3, 1, 2, 4)
	remote := buildStore(t, testProjectID, 2, 1, 2)

	expectRemote(t, transport, cipher, remote)
	cipher.EXPECT().Encrypt(gomock.Any(), testSecret, testProjectID).Return(sealedMerged, nil)
	transport.EXPECT().
		Push(gomock.Any(), testURL, sealedMerged, models.BlobETag(sealedRemote), gomock.Any()).
		Return(adapter.Response{StatusCode: http.StatusForbidden}, nil)
	installer.EXPECT().Install(gomock.Any(), gomock.Any()).Times(0)

	events := runAttempt(t, svc, context.Background(), newRequest(t, local))

	last := lastEvent(t, events)
	assert.Equal(t, models.StageForbiddenError, last.Stage)
	assert.ErrorIs(t, last.Err, adapter.ErrForbidden)
	assert.Equal(t, []models.SyncStage{
		models.StageIdle,
		models.StageFetchHistory,
		models.StageMerge,
		models.StageSync,
		models.StageForbiddenError,
	}, stageSequence(events))
}

func TestClientSyncService_RemoteChangedSinceFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, transport, cipher, installer := newTestSyncSvc(t, ctrl)

	local := buildStore(t, testProjectID, 3, 1, 2, 4)
	remote := buildStore(t, testProjectID, 2, 1, 2)
	req := newRequest(t, local)
	before := snapshotOf(t, local)

	expectRemote(t, transport, cipher, remote)
	cipher.EXPECT().Encrypt(gomock.Any(), testSecret, testProjectID).Return(sealedMerged, nil)
	// другой клиент успел запушить между fetch и push
	transport.EXPECT().
		Push(gomock.Any(), testURL, sealedMerged, models.BlobETag(sealedRemote), gomock.Any()).
		Return(adapter.Response{StatusCode: http.StatusPreconditionFailed}, nil)
	installer.EXPECT().Install(gomock.Any(), gomock.Any()).Times(0)

	events := runAttempt(t, svc, context.Background(), req)

	last := lastEvent(t, events)
	assert.Equal(t, models.StageSyncError, last.Stage)
	assert.ErrorIs(t, last.Err, adapter.ErrHistoryChanged)
	assert.Equal(t, before, snapshotOf(t, local))
}

// ── Push outcomes ────────────────────────────────────────────────────────────

func TestClientSyncService_PushOutcomes(t *testing.T) {
	tests := []struct {
		name      string
		resp      adapter.Response
		pushErr   error
		install   bool
		installEr error
		wantStage models.SyncStage
		wantErr   error
	}{
		{
			name:      "200 installs and finishes",
			resp:      adapter.Response{StatusCode: http.StatusOK},
			install:   true,
			wantStage: models.StageAllDone,
		},
		{
			name:      "401 is unauthorized",
			resp:      adapter.Response{StatusCode: http.StatusUnauthorized},
			wantStage: models.StageUnauthorizedError,
			wantErr:   adapter.ErrUnauthorized,
		},
		{
			name:      "413 is a generic sync error",
			resp:      adapter.Response{StatusCode: http.StatusRequestEntityTooLarge},
			wantStage: models.StageSyncError,
			wantErr:   adapter.ErrPayloadTooLarge,
		},
		{
			name:      "500 is a generic sync error",
			resp:      adapter.Response{StatusCode: http.StatusInternalServerError},
			wantStage: models.StageSyncError,
			wantErr:   adapter.ErrUnexpectedStatus,
		},
		{
			name:      "204 is not a success",
			resp:      adapter.Response{StatusCode: http.StatusNoContent},
			wantStage: models.StageSyncError,
			wantErr:   adapter.ErrUnexpectedStatus,
		},
		{
			name:      "unreachable remote",
			pushErr:   adapter.ErrTransport,
			wantStage: models.StageSyncError,
			wantErr:   adapter.ErrTransport,
		},
		{
			name:      "install failure after push",
			resp:      adapter.Response{StatusCode: http.StatusOK},
			install:   true,
			installEr: errors.New("disk full"),
			wantStage: models.StageSyncError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, transport, cipher, installer := newTestSyncSvc(t, ctrl)

			local := buildStore(t, testProjectID, 1, 1, 2)

			transport.EXPECT().
				Fetch(gomock.Any(), testURL, gomock.Any()).
				Return(adapter.Response{StatusCode: http.StatusNotFound}, nil)
			cipher.EXPECT().Encrypt(gomock.Any(), testSecret, testProjectID).Return(sealedMerged, nil)
			transport.EXPECT().
				Push(gomock.Any(), testURL, sealedMerged, "", gomock.Any()).
				Return(tt.resp, tt.pushErr)
			if tt.install {
				installer.EXPECT().Install(gomock.Any(), gomock.Any()).Return(tt.installEr)
			}

			events := runAttempt(t, svc, context.Background(), newRequest(t, local))

			last := lastEvent(t, events)
			assert.Equal(t, tt.wantStage, last.Stage)
			if tt.wantStage == models.StageAllDone {
				assert.NoError(t, last.Err)
				return
			}
			require.Error(t, last.Err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, last.Err, tt.wantErr)
			}
		})
	}
}

func TestClientSyncService_EncryptFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, transport, cipher, _ := newTestSyncSvc(t, ctrl)

	local := buildStore(t, testProjectID, 0, 1)

	transport.EXPECT().
		Fetch(gomock.Any(), testURL, gomock.Any()).
		Return(adapter.Response{StatusCode: http.StatusNotFound}, nil)
	cipher.EXPECT().Encrypt(gomock.Any(), testSecret, testProjectID).Return(nil, crypto.ErrEmptySecret)

	events := runAttempt(t, svc, context.Background(), newRequest(t, local))

	last := lastEvent(t, events)
	assert.Equal(t, models.StageSyncError, last.Stage)
	assert.ErrorIs(t, last.Err, crypto.ErrEmptySecret)
}

// ── Accepted push that was not installed ────────────────────────────────────

// expectFirstPush serves a missing remote and accepts the push.
func expectFirstPush(transport *mock.MockTransport, cipher *mock.MockSnapshotCipher) {
	transport.EXPECT().
		Fetch(gomock.Any(), testURL, gomock.Any()).
		Return(adapter.Response{StatusCode: http.StatusNotFound}, nil)
	cipher.EXPECT().Encrypt(gomock.Any(), testSecret, testProjectID).Return(sealedMerged, nil)
	transport.EXPECT().
		Push(gomock.Any(), testURL, sealedMerged, "", gomock.Any()).
		Return(adapter.Response{StatusCode: http.StatusOK}, nil)
}

func TestClientSyncService_NextAttemptInstallsAcceptedHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, transport, cipher, installer := newTestSyncSvc(t, ctrl)

	local := buildStore(t, testProjectID, 0, 1, 2)
	req := newRequest(t, local)

	expectFirstPush(transport, cipher)
	installer.EXPECT().Install(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	first := runAttempt(t, svc, context.Background(), req)
	require.Equal(t, models.StageSyncError, lastEvent(t, first).Stage)

	// удалённая сторона уже на версии 1, а локальная осталась на 0
	installer.EXPECT().
		Install(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, merged *history.Store) error {
			assert.Equal(t, int64(1), merged.Version())
			assert.Equal(t, local.CalculateHash(), merged.CalculateHash())
			return nil
		})
	expectRemote(t, transport, cipher, buildStore(t, testProjectID, 1, 1, 2))

	// the caller still holds the stale version 0 snapshot
	second := runAttempt(t, svc, context.Background(), req)

	assert.Equal(t, []models.SyncStage{
		models.StageIdle,
		models.StageFetchHistory,
		models.StageMerge,
		models.StageUpToDate,
	}, stageSequence(second))
	assert.NoError(t, lastEvent(t, second).Err)
}

func TestClientSyncService_AcceptedHistoryKeptUntilInstalled(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, transport, cipher, installer := newTestSyncSvc(t, ctrl)

	req := newRequest(t, buildStore(t, testProjectID, 0, 1))

	expectFirstPush(transport, cipher)
	installer.EXPECT().Install(gomock.Any(), gomock.Any()).Return(errors.New("disk full")).Times(2)

	runAttempt(t, svc, context.Background(), req)

	// повторная установка тоже падает: до fetch дело не доходит
	second := runAttempt(t, svc, context.Background(), req)
	assert.Equal(t, []models.SyncStage{models.StageIdle, models.StageSyncError}, stageSequence(second))

	installer.EXPECT().Install(gomock.Any(), gomock.Any()).Return(nil)
	expectRemote(t, transport, cipher, buildStore(t, testProjectID, 1, 1))

	third := runAttempt(t, svc, context.Background(), req)
	assert.Equal(t, models.StageUpToDate, lastEvent(t, third).Stage)
}

// ── Fetch outcomes ───────────────────────────────────────────────────────────

func TestClientSyncService_FetchFailures(t *testing.T) {
	otherProject := buildStore(t, "another-project", 1, 1)
	corrupt := []byte(`{"history":{"project_id":"project-1","version":1,"revisions":[{"payload":"eA==","hash":"00"}]}}`)

	tests := []struct {
		name       string
		resp       adapter.Response
		fetchErr   error
		decrypted  []byte
		decryptErr error
		wantErr    error
	}{
		{
			name:     "unreachable remote",
			fetchErr: adapter.ErrTransport,
			wantErr:  adapter.ErrTransport,
		},
		{
			name:    "server error",
			resp:    adapter.Response{StatusCode: http.StatusInternalServerError},
			wantErr: adapter.ErrUnexpectedStatus,
		},
		{
			name:    "unauthorized fetch",
			resp:    adapter.Response{StatusCode: http.StatusUnauthorized},
			wantErr: adapter.ErrUnauthorized,
		},
		{
			name:       "decrypt failure",
			resp:       adapter.Response{StatusCode: http.StatusOK, Body: sealedRemote},
			decryptErr: crypto.ErrDecrypt,
			wantErr:    crypto.ErrDecrypt,
		},
		{
			name:      "snapshot of another project",
			resp:      adapter.Response{StatusCode: http.StatusOK, Body: sealedRemote},
			decrypted: snapshotOf(t, otherProject),
			wantErr:   history.ErrSchemaMismatch,
		},
		{
			name:      "corrupt snapshot",
			resp:      adapter.Response{StatusCode: http.StatusOK, Body: sealedRemote},
			decrypted: corrupt,
			wantErr:   history.ErrCorruptHistory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, transport, cipher, _ := newTestSyncSvc(t, ctrl)

			transport.EXPECT().
				Fetch(gomock.Any(), testURL, gomock.Any()).
				Return(tt.resp, tt.fetchErr)
			if tt.decrypted != nil || tt.decryptErr != nil {
				cipher.EXPECT().
					Decrypt(sealedRemote, testSecret, testProjectID).
					Return(tt.decrypted, tt.decryptErr)
			}

			local := buildStore(t, testProjectID, 1, 1)
			events := runAttempt(t, svc, context.Background(), newRequest(t, local))

			last := lastEvent(t, events)
			assert.Equal(t, models.StageFetchHistoryError, last.Stage)
			assert.ErrorIs(t, last.Err, tt.wantErr)
		})
	}
}

func TestClientSyncService_EmptyBodyIsFirstPush(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, transport, cipher, installer := newTestSyncSvc(t, ctrl)

	local := buildStore(t, testProjectID, 0, 1)

	transport.EXPECT().
		Fetch(gomock.Any(), testURL, gomock.Any()).
		Return(adapter.Response{StatusCode: http.StatusOK}, nil)
	cipher.EXPECT().Encrypt(gomock.Any(), testSecret, testProjectID).Return(sealedMerged, nil)
	transport.EXPECT().
		Push(gomock.Any(), testURL, sealedMerged, models.BlobETag(nil), gomock.Any()).
		Return(adapter.Response{StatusCode: http.StatusOK}, nil)
	installer.EXPECT().Install(gomock.Any(), gomock.Any()).Return(nil)

	events := runAttempt(t, svc, context.Background(), newRequest(t, local))

	assert.Equal(t, models.StageAllDone, lastEvent(t, events).Stage)
}

// ── Progress and events ──────────────────────────────────────────────────────

func TestClientSyncService_ReportsByteProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, transport, cipher, installer := newTestSyncSvc(t, ctrl)

	local := buildStore(t, testProjectID, 0, 1)

	transport.EXPECT().
		Fetch(gomock.Any(), testURL, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, progress adapter.ProgressFunc) (adapter.Response, error) {
			progress(4, 8)
			progress(8, 8)
			return adapter.Response{StatusCode: http.StatusNotFound}, nil
		})
	cipher.EXPECT().Encrypt(gomock.Any(), testSecret, testProjectID).Return(sealedMerged, nil)
	transport.EXPECT().
		Push(gomock.Any(), testURL, sealedMerged, "", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, body []byte, _ string, progress adapter.ProgressFunc) (adapter.Response, error) {
			progress(int64(len(body)), int64(len(body)))
			return adapter.Response{StatusCode: http.StatusOK}, nil
		})
	installer.EXPECT().Install(gomock.Any(), gomock.Any()).Return(nil)

	events := runAttempt(t, svc, context.Background(), newRequest(t, local))

	var fetchProgress, pushProgress []models.SyncEvent
	for _, ev := range events {
		if ev.Total == 0 {
			continue
		}
		switch ev.Stage {
		case models.StageFetchHistory:
			fetchProgress = append(fetchProgress, ev)
		case models.StageSync:
			pushProgress = append(pushProgress, ev)
		}
	}

	require.Len(t, fetchProgress, 2)
	assert.Equal(t, int64(4), fetchProgress[0].Transferred)
	assert.Equal(t, int64(8), fetchProgress[1].Transferred)
	require.Len(t, pushProgress, 1)
	assert.Equal(t, int64(len(sealedMerged)), pushProgress[0].Total)
}

func TestClientSyncService_ProgressNeverStarvesStageEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, transport, _, _ := newTestSyncSvc(t, ctrl)

	transport.EXPECT().
		Fetch(gomock.Any(), testURL, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, progress adapter.ProgressFunc) (adapter.Response, error) {
			for i := int64(1); i <= 1000; i++ {
				progress(i, 1000)
			}
			return adapter.Response{StatusCode: http.StatusBadGateway}, nil
		})

	local := buildStore(t, testProjectID, 0, 1)
	events, err := svc.Start(context.Background(), newRequest(t, local))
	require.NoError(t, err)

	// nobody reads until the attempt has finished
	require.Eventually(t, func() bool {
		return !svc.isRunning(testProjectID)
	}, 5*time.Second, 5*time.Millisecond)

	got := collectEvents(t, events)
	assert.LessOrEqual(t, len(got), eventBuffer)
	assert.Equal(t, models.StageFetchHistoryError, lastEvent(t, got).Stage)
}

func TestClientSyncService_EventsShareSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, transport, cipher, _ := newTestSyncSvc(t, ctrl)

	local := buildStore(t, testProjectID, 5, 1)
	expectRemote(t, transport, cipher, buildStore(t, testProjectID, 5, 1))

	events := runAttempt(t, svc, context.Background(), newRequest(t, local))

	sessionID := events[0].SessionID
	require.NotEmpty(t, sessionID)

	terminal := 0
	for _, ev := range events {
		assert.Equal(t, sessionID, ev.SessionID)
		assert.Equal(t, fixedTime, ev.At)
		if ev.Terminal() {
			terminal++
		}
	}
	assert.Equal(t, 1, terminal, "exactly one terminal event")
}

// ── Cancellation ─────────────────────────────────────────────────────────────

func TestClientSyncService_CancelledBeforeFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _, _ := newTestSyncSvc(t, ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	local := buildStore(t, testProjectID, 0, 1)
	events := runAttempt(t, svc, ctx, newRequest(t, local))

	assert.Equal(t, []models.SyncStage{models.StageIdle, models.StageCancelled}, stageSequence(events))
	assert.ErrorIs(t, lastEvent(t, events).Err, context.Canceled)
}

func TestClientSyncService_CancelDuringFetchSkipsPush(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, transport, _, installer := newTestSyncSvc(t, ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	transport.EXPECT().
		Fetch(gomock.Any(), testURL, gomock.Any()).
		DoAndReturn(func(fetchCtx context.Context, _ string, _ adapter.ProgressFunc) (adapter.Response, error) {
			cancel()
			// the running transfer is not interrupted
			assert.NoError(t, fetchCtx.Err())
			return adapter.Response{StatusCode: http.StatusNotFound}, nil
		})
	installer.EXPECT().Install(gomock.Any(), gomock.Any()).Times(0)

	local := buildStore(t, testProjectID, 0, 1)
	events := runAttempt(t, svc, ctx, newRequest(t, local))

	assert.Equal(t, []models.SyncStage{
		models.StageIdle,
		models.StageFetchHistory,
		models.StageCancelled,
	}, stageSequence(events))
}

func TestClientSyncService_CancelDuringSettleDelay(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, transport, _, _ := newTestSyncSvc(t, ctrl)
	svc.settleDelay = time.Hour

	transport.EXPECT().
		Fetch(gomock.Any(), testURL, gomock.Any()).
		Return(adapter.Response{StatusCode: http.StatusNotFound}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	local := buildStore(t, testProjectID, 0, 1)
	events, err := svc.Start(ctx, newRequest(t, local))
	require.NoError(t, err)

	for ev := range events {
		if ev.Stage == models.StageFetchHistory {
			cancel()
			break
		}
	}

	rest := collectEvents(t, events)
	assert.Equal(t, models.StageCancelled, lastEvent(t, rest).Stage)
}

// ── Start ────────────────────────────────────────────────────────────────────

func TestClientSyncService_Start_InvalidRequest(t *testing.T) {
	valid := models.SyncRequest{
		ProjectID:     testProjectID,
		URL:           testURL,
		Secret:        testSecret,
		LocalSnapshot: snapshotOf(t, buildStore(t, testProjectID, 0, 1)),
	}

	tests := []struct {
		name    string
		mutate  func(r *models.SyncRequest)
		wantErr error
	}{
		{"empty project id", func(r *models.SyncRequest) { r.ProjectID = "" }, ErrInvalidSyncRequest},
		{"empty url", func(r *models.SyncRequest) { r.URL = "" }, ErrInvalidSyncRequest},
		{"empty secret", func(r *models.SyncRequest) { r.Secret = nil }, ErrInvalidSyncRequest},
		{"empty snapshot", func(r *models.SyncRequest) { r.LocalSnapshot = nil }, ErrInvalidSyncRequest},
		{"garbage snapshot", func(r *models.SyncRequest) { r.LocalSnapshot = []byte("{not json") }, history.ErrSchemaMismatch},
		{"snapshot of another project", func(r *models.SyncRequest) { r.ProjectID = "other" }, history.ErrSchemaMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, _, _, _ := newTestSyncSvc(t, ctrl)

			req := valid
			tt.mutate(&req)

			events, err := svc.Start(context.Background(), req)
			assert.Nil(t, events)
			assert.ErrorIs(t, err, ErrInvalidSyncRequest)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, svc.isRunning(req.ProjectID))
		})
	}
}

func TestClientSyncService_Start_OneAttemptPerProject(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, transport, _, _ := newTestSyncSvc(t, ctrl)

	release := make(chan struct{})
	transport.EXPECT().
		Fetch(gomock.Any(), testURL, gomock.Any()).
		DoAndReturn(func(context.Context, string, adapter.ProgressFunc) (adapter.Response, error) {
			<-release
			return adapter.Response{StatusCode: http.StatusServiceUnavailable}, nil
		})

	req := newRequest(t, buildStore(t, testProjectID, 0, 1))

	first, err := svc.Start(context.Background(), req)
	require.NoError(t, err)

	second, err := svc.Start(context.Background(), req)
	assert.Nil(t, second)
	assert.ErrorIs(t, err, ErrSyncInProgress)

	// другой проект не блокируется
	otherCtx, cancel := context.WithCancel(context.Background())
	cancel()
	other, err := svc.Start(otherCtx, newRequest(t, buildStore(t, "project-2", 0, 1)))
	require.NoError(t, err)
	assert.Equal(t, models.StageCancelled, lastEvent(t, collectEvents(t, other)).Stage)

	close(release)
	assert.Equal(t, models.StageFetchHistoryError, lastEvent(t, collectEvents(t, first)).Stage)

	// после терминального события проект снова свободен
	again, err := svc.Start(otherCtx, req)
	require.NoError(t, err)
	assert.Equal(t, models.StageCancelled, lastEvent(t, collectEvents(t, again)).Stage)
}

func TestNewSyncRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	project := mock.NewMockClientProjectService(ctrl)

	snapshot := snapshotOf(t, buildStore(t, testProjectID, 0, 1))
	project.EXPECT().Snapshot().Return(snapshot, nil)
	project.EXPECT().ProjectID().Return(testProjectID).AnyTimes()

	req, err := NewSyncRequest(project, "https://history.example.com", testSecret)
	require.NoError(t, err)

	assert.Equal(t, testProjectID, req.ProjectID)
	assert.Equal(t, snapshot, req.LocalSnapshot)
	assert.Equal(t, testSecret, req.Secret)
	assert.Equal(t,
		"https://history.example.com/api/projects/"+crypto.RemoteID(testProjectID)+"/history",
		req.URL)
}

func TestNewSyncRequest_SnapshotFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	project := mock.NewMockClientProjectService(ctrl)

	project.EXPECT().Snapshot().Return(nil, errors.New("boom"))

	_, err := NewSyncRequest(project, "https://history.example.com", testSecret)
	require.Error(t, err)
}
