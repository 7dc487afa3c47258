// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/go-history-sync/internal/adapter"
	"github.com/MKhiriev/go-history-sync/internal/config"
	"github.com/MKhiriev/go-history-sync/internal/crypto"
	"github.com/MKhiriev/go-history-sync/internal/history"
	"github.com/MKhiriev/go-history-sync/internal/logger"
	"github.com/MKhiriev/go-history-sync/internal/utils"
	"github.com/MKhiriev/go-history-sync/models"
)

const (
	// eventBuffer is the capacity of an attempt's event channel.
	eventBuffer = 32

	// stageReserve slots of the event buffer are never taken by progress
	// events, so stage events of one attempt never block on a slow consumer.
	stageReserve = 8
)

type idGenerator interface {
	Generate() string
}

type clientSyncService struct {
	transport adapter.Transport
	cipher    crypto.SnapshotCipher
	installer HistoryInstaller

	settleDelay time.Duration

	ids    idGenerator
	now    func() time.Time
	logger *logger.Logger

	mu      sync.Mutex
	running map[string]struct{}

	// pending holds merged histories the remote accepted but that could not
	// be installed locally. The next attempt of the project installs them
	// before anything else.
	pending map[string]*history.Store
}

// NewClientSyncService creates the sync orchestrator. Fetched snapshots are
// decrypted with cipher, pushes go through transport and a merged history is
// handed to installer after the push was accepted.
func NewClientSyncService(
	transport adapter.Transport,
	cipher crypto.SnapshotCipher,
	installer HistoryInstaller,
	cfg config.ClientWorkers,
	logger *logger.Logger,
) ClientSyncService {
	return &clientSyncService{
		transport:   transport,
		cipher:      cipher,
		installer:   installer,
		settleDelay: cfg.SettleDelay,
		ids:         utils.NewUUIDGenerator(),
		now:         time.Now,
		logger:      logger,
		running:     make(map[string]struct{}),
		pending:     make(map[string]*history.Store),
	}
}

// NewSyncRequest builds a request for the current state of project. The
// remote URL is derived from address and the project's remote id.
func NewSyncRequest(project ClientProjectService, address string, secret []byte) (models.SyncRequest, error) {
	snapshot, err := project.Snapshot()
	if err != nil {
		return models.SyncRequest{}, fmt.Errorf("snapshot local history: %w", err)
	}

	url, err := adapter.ResolveHistoryURL(address, crypto.RemoteID(project.ProjectID()))
	if err != nil {
		return models.SyncRequest{}, fmt.Errorf("%w: %w", ErrInvalidSyncRequest, err)
	}

	return models.SyncRequest{
		ProjectID:     project.ProjectID(),
		URL:           url,
		Secret:        secret,
		LocalSnapshot: snapshot,
	}, nil
}

func (s *clientSyncService) Start(ctx context.Context, req models.SyncRequest) (<-chan models.SyncEvent, error) {
	if err := validateSyncRequest(req); err != nil {
		return nil, err
	}

	local, err := history.Unmarshal(req.LocalSnapshot, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("%w: local snapshot: %w", ErrInvalidSyncRequest, err)
	}

	if !s.acquire(req.ProjectID) {
		return nil, ErrSyncInProgress
	}

	sessionID := s.ids.Generate()
	events := make(chan models.SyncEvent, eventBuffer)

	a := &syncAttempt{
		service:   s,
		req:       req,
		local:     local,
		sessionID: sessionID,
		events:    events,
		log:       s.logger.WithSession(sessionID, req.ProjectID),
	}

	go func() {
		defer a.close()
		defer s.release(req.ProjectID)

		a.run(ctx)
	}()

	return events, nil
}

func (s *clientSyncService) acquire(projectID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.running[projectID]; busy {
		return false
	}
	s.running[projectID] = struct{}{}
	return true
}

func (s *clientSyncService) isRunning(projectID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, busy := s.running[projectID]
	return busy
}

func (s *clientSyncService) release(projectID string) {
	s.mu.Lock()
	delete(s.running, projectID)
	s.mu.Unlock()
}

func (s *clientSyncService) keepPending(projectID string, merged *history.Store) {
	s.mu.Lock()
	s.pending[projectID] = merged
	s.mu.Unlock()
}

func (s *clientSyncService) takePending(projectID string) *history.Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := s.pending[projectID]
	delete(s.pending, projectID)
	return merged
}

func validateSyncRequest(req models.SyncRequest) error {
	switch {
	case req.ProjectID == "":
		return fmt.Errorf("%w: empty project id", ErrInvalidSyncRequest)
	case req.URL == "":
		return fmt.Errorf("%w: empty url", ErrInvalidSyncRequest)
	case len(req.Secret) == 0:
		return fmt.Errorf("%w: empty secret", ErrInvalidSyncRequest)
	case len(req.LocalSnapshot) == 0:
		return fmt.Errorf("%w: empty local snapshot", ErrInvalidSyncRequest)
	}
	return nil
}

// syncAttempt is the state of one attempt. It is owned by the attempt's
// goroutine, except for progress callbacks which a transport may invoke from
// its own goroutines; mu serializes every send against close.
type syncAttempt struct {
	service *clientSyncService

	req       models.SyncRequest
	local     *history.Store
	sessionID string

	// remoteETag identifies the fetched snapshot; "" when none was stored.
	remoteETag string

	log    *logger.Logger
	mu     sync.Mutex
	closed bool
	events chan models.SyncEvent
}

func (a *syncAttempt) run(ctx context.Context) {
	a.emit(models.StageIdle)

	if a.cancelled(ctx) {
		return
	}

	if err := a.installPending(ctx); err != nil {
		a.fail(models.StageSyncError, err)
		return
	}

	a.emit(models.StageFetchHistory)
	remote, err := a.fetchRemote(ctx, a.progressFor(models.StageFetchHistory))
	if err != nil {
		a.fail(models.StageFetchHistoryError, err)
		return
	}

	if a.cancelled(ctx) || !a.settle(ctx) {
		return
	}

	a.emit(models.StageMerge)
	merged, err := a.merge(remote)
	if err != nil {
		a.fail(models.StageMergeError, err)
		return
	}
	if merged == nil {
		a.finish(models.StageUpToDate)
		return
	}

	if a.cancelled(ctx) {
		return
	}

	a.emit(models.StageSync)
	if stage, err := a.push(ctx, merged, a.progressFor(models.StageSync)); err != nil {
		a.fail(stage, err)
		return
	}

	a.finish(models.StageAllDone)
}

// fetchRemote downloads and decodes the remote snapshot. A missing or empty
// remote is the empty history at version 0.
func (a *syncAttempt) fetchRemote(ctx context.Context, progress adapter.ProgressFunc) (*history.Store, error) {
	resp, err := a.service.transport.Fetch(context.WithoutCancel(ctx), a.req.URL, progress)
	if err != nil {
		return nil, fmt.Errorf("fetch remote history: %w", err)
	}

	a.remoteETag = ""
	if resp.StatusCode == http.StatusOK {
		a.remoteETag = models.BlobETag(resp.Body)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound,
		resp.StatusCode == http.StatusOK && len(resp.Body) == 0:
		a.log.Info().
			Str("func", "syncAttempt.fetchRemote").
			Int("status", resp.StatusCode).
			Msg("no remote history yet, starting from an empty one")
		remote := history.NewStore(a.req.ProjectID)
		remote.Reset()
		return remote, nil
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetch remote history: %w", statusFailure(resp.StatusCode))
	}

	plain, err := a.service.cipher.Decrypt(resp.Body, a.req.Secret, a.req.ProjectID)
	if err != nil {
		a.log.Err(err).
			Str("func", "syncAttempt.fetchRemote").
			Int("blob_size", len(resp.Body)).
			Msg("remote history could not be decrypted with the local key")
		return nil, fmt.Errorf("decrypt remote history: %w", err)
	}

	remote, err := history.Unmarshal(plain, a.req.ProjectID)
	if err != nil {
		a.log.Err(err).
			Str("func", "syncAttempt.fetchRemote").
			Int64("local_version", a.local.Version()).
			Str("local_hash", a.local.CalculateHash().String()).
			Msg("remote history could not be decoded")
		return nil, fmt.Errorf("decode remote history: %w", err)
	}

	return remote, nil
}

// merge compares both sides and returns the merged history, or nil when the
// local history is already up to date.
func (a *syncAttempt) merge(remote *history.Store) (*history.Store, error) {
	outcome := history.Compare(a.local, remote)

	a.log.Debug().
		Str("func", "syncAttempt.merge").
		Str("outcome", outcome.String()).
		Int64("local_version", a.local.Version()).
		Str("local_hash", a.local.CalculateHash().String()).
		Int("local_len", a.local.Len()).
		Int64("remote_version", remote.Version()).
		Str("remote_hash", remote.CalculateHash().String()).
		Int("remote_len", remote.Len()).
		Msg("compared local and remote history")

	if outcome == history.UpToDate {
		return nil, nil
	}

	merged, err := history.Merge(a.local, remote)
	if err != nil {
		a.log.Err(err).
			Str("func", "syncAttempt.merge").
			Int64("local_version", a.local.Version()).
			Int64("remote_version", remote.Version()).
			Msg("merge rejected")
		return nil, err
	}

	a.log.Debug().
		Str("func", "syncAttempt.merge").
		Int64("merged_version", merged.Version()).
		Int("merged_len", merged.Len()).
		Msg("merged history is ready for push")

	return merged, nil
}

// push uploads merged and installs it once the remote accepted it. The
// returned stage classifies the failure.
func (a *syncAttempt) push(ctx context.Context, merged *history.Store, progress adapter.ProgressFunc) (models.SyncStage, error) {
	plain, err := history.Marshal(merged)
	if err != nil {
		return models.StageSyncError, err
	}

	blob, err := a.service.cipher.Encrypt(plain, a.req.Secret, a.req.ProjectID)
	if err != nil {
		return models.StageSyncError, fmt.Errorf("encrypt merged history: %w", err)
	}

	resp, err := a.service.transport.Push(context.WithoutCancel(ctx), a.req.URL, blob, a.remoteETag, progress)
	if err != nil {
		return models.StageSyncError, fmt.Errorf("push merged history: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return models.StageUnauthorizedError, fmt.Errorf("push merged history: %w", adapter.ErrUnauthorized)
	case http.StatusForbidden:
		return models.StageForbiddenError, fmt.Errorf("push merged history: %w", adapter.ErrForbidden)
	case http.StatusPreconditionFailed:
		a.log.Warn().
			Str("func", "syncAttempt.push").
			Str("base_etag", a.remoteETag).
			Int64("merged_version", merged.Version()).
			Msg("remote history changed since fetch, push refused")
		return models.StageSyncError, fmt.Errorf("push merged history: %w", statusFailure(resp.StatusCode))
	default:
		return models.StageSyncError, fmt.Errorf("push merged history: %w", statusFailure(resp.StatusCode))
	}

	if err = a.service.installer.Install(context.WithoutCancel(ctx), merged); err != nil {
		a.log.Err(err).
			Str("func", "syncAttempt.push").
			Int64("local_version", a.local.Version()).
			Int64("remote_version", merged.Version()).
			Msg("remote accepted the push but the merged history was not installed, the next attempt installs it first")
		a.service.keepPending(a.req.ProjectID, merged)
		return models.StageSyncError, fmt.Errorf("install merged history: %w", err)
	}

	return "", nil
}

// installPending installs a merged history left over from an attempt whose
// push was accepted, and moves the local side of this attempt on top of it.
// Without it the remote would stay one version ahead forever.
func (a *syncAttempt) installPending(ctx context.Context) error {
	pending := a.service.takePending(a.req.ProjectID)
	if pending == nil {
		return nil
	}

	if err := a.service.installer.Install(context.WithoutCancel(ctx), pending); err != nil {
		a.service.keepPending(a.req.ProjectID, pending)
		return fmt.Errorf("install accepted history: %w", err)
	}

	a.log.Info().
		Str("func", "syncAttempt.installPending").
		Int64("local_version", a.local.Version()).
		Int64("installed_version", pending.Version()).
		Msg("installed history accepted by an earlier attempt")

	local := pending.Clone()
	local.MergeWith(a.local)
	a.local = local
	return nil
}

// settle waits the configured delay between fetch and merge. It reports
// false, after emitting the cancelled event, when ctx is done first.
func (a *syncAttempt) settle(ctx context.Context) bool {
	delay := a.service.settleDelay
	if delay <= 0 {
		return true
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		a.terminate(models.StageCancelled, ctx.Err())
		return false
	}
}

// cancelled emits the cancelled event when ctx is done.
func (a *syncAttempt) cancelled(ctx context.Context) bool {
	if err := ctx.Err(); err != nil {
		a.terminate(models.StageCancelled, err)
		return true
	}
	return false
}

func (a *syncAttempt) fail(stage models.SyncStage, err error) {
	a.log.Err(err).
		Str("func", "syncAttempt.run").
		Str("stage", stage.String()).
		Msg("sync attempt failed")
	a.terminate(stage, err)
}

func (a *syncAttempt) finish(stage models.SyncStage) {
	a.log.Info().
		Str("func", "syncAttempt.run").
		Str("stage", stage.String()).
		Msg("sync attempt finished")
	a.terminate(stage, nil)
}

func (a *syncAttempt) terminate(stage models.SyncStage, err error) {
	a.send(a.event(stage, 0, 0, err), true)
}

func (a *syncAttempt) emit(stage models.SyncStage) {
	a.log.Debug().Str("stage", stage.String()).Msg("sync stage changed")
	a.send(a.event(stage, 0, 0, nil), true)
}

// progressFor returns the byte-progress callback of one transfer. Progress
// events are dropped rather than delaying the transfer when the consumer
// falls behind.
func (a *syncAttempt) progressFor(stage models.SyncStage) adapter.ProgressFunc {
	return func(transferred, total int64) {
		a.send(a.event(stage, transferred, total, nil), false)
	}
}

// send delivers ev. Stage events always fit because progress events leave
// stageReserve slots free.
func (a *syncAttempt) send(ev models.SyncEvent, isStage bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}
	if !isStage && len(a.events) >= cap(a.events)-stageReserve {
		return
	}
	a.events <- ev
}

func (a *syncAttempt) close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.closed = true
	close(a.events)
}

func (a *syncAttempt) event(stage models.SyncStage, transferred, total int64, err error) models.SyncEvent {
	return models.SyncEvent{
		SessionID:   a.sessionID,
		Stage:       stage,
		Transferred: transferred,
		Total:       total,
		Err:         err,
		At:          a.service.now(),
	}
}

// statusFailure classifies a non-success status code.
func statusFailure(code int) error {
	if err := adapter.StatusError(code); err != nil {
		return fmt.Errorf("%w: %w", adapter.ErrTransport, err)
	}
	return fmt.Errorf("%w: %w: status %d", adapter.ErrTransport, adapter.ErrUnexpectedStatus, code)
}
